package seeds

import (
	"context"
)

// SeedDataStatus representa o estado dos dados de semeadura
type SeedDataStatus struct {
	PerfilSistemaExist bool `json:"perfil_sistema_exist"`
	SuperadminExist    bool `json:"superadmin_exist"`
	AllDataExists      bool `json:"all_data_exists"`
}

// SeedingService gerencia a semeadura dos dados iniciais:
// o perfil de sistema com a matriz completa do catálogo e o superadmin
type SeedingService interface {
	CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error)
	ValidateRequiredTables(ctx context.Context) error

	SeedPerfilSistema(ctx context.Context) error
	SeedSuperadmin(ctx context.Context) error
}

// IsComplete verifica se a semeadura está completa
func (s *SeedDataStatus) IsComplete() bool {
	return s.PerfilSistemaExist && s.SuperadminExist
}

// GetMissingSeeds retorna a lista de seeds faltantes
func (s *SeedDataStatus) GetMissingSeeds() []string {
	var missing []string

	if !s.PerfilSistemaExist {
		missing = append(missing, "perfil_sistema")
	}
	if !s.SuperadminExist {
		missing = append(missing, "superadmin")
	}

	return missing
}
