package bootstrap

import (
	"context"
	"fmt"

	"gestor-igrejas-core/internal/app/config"
	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	"gestor-igrejas-core/internal/infrastructure/database/seeds"
)

// SeedingManager orquestra a semeadura dos dados iniciais.
// O catálogo de módulos é compilado no binário — a semeadura materializa
// somente o perfil de sistema e o superadmin.
type SeedingManager struct {
	pgClient    *postgres.Client
	config      *config.Config
	seedService seeds.SeedingService
}

// NewSeedingManager cria uma nova instância do gerenciador de semeadura
func NewSeedingManager(pgClient *postgres.Client, cfg *config.Config) *SeedingManager {
	return &SeedingManager{
		pgClient:    pgClient,
		config:      cfg,
		seedService: seeds.NewSeedingService(pgClient, cfg),
	}
}

// CheckSeedDataExists verifica quais dados de semeadura já existem
func (sm *SeedingManager) CheckSeedDataExists(ctx context.Context) (*seeds.SeedDataStatus, error) {
	fmt.Printf("[SEEDING] Verificação de dados existentes\n")

	status, err := sm.seedService.CheckSeedDataExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro na verificação de dados de semeadura: %w", err)
	}

	fmt.Printf("[SEEDING] Estado: perfil_sistema=%t, superadmin=%t\n",
		status.PerfilSistemaExist, status.SuperadminExist)

	return status, nil
}

// ApplySeeding aplica a semeadura conforme os dados faltantes
func (sm *SeedingManager) ApplySeeding(ctx context.Context, status *seeds.SeedDataStatus) error {
	if status.AllDataExists {
		fmt.Printf("[SEEDING] ✅ Todos os dados iniciais já estão presentes\n")
		return nil
	}

	if err := sm.seedService.ValidateRequiredTables(ctx); err != nil {
		return fmt.Errorf("tabelas requeridas ausentes: %w", err)
	}

	fmt.Printf("[SEEDING] 🌱 Aplicação da semeadura: %v\n", status.GetMissingSeeds())

	if !status.PerfilSistemaExist {
		if err := sm.seedService.SeedPerfilSistema(ctx); err != nil {
			return fmt.Errorf("falha na semeadura do perfil de sistema: %w", err)
		}
	}

	if !status.SuperadminExist {
		if err := sm.seedService.SeedSuperadmin(ctx); err != nil {
			return fmt.Errorf("falha na semeadura do superadmin: %w", err)
		}
	}

	fmt.Printf("[SEEDING] ✅ Semeadura concluída\n")
	return nil
}
