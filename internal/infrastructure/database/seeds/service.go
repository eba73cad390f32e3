package seeds

import (
	"context"
	"fmt"

	"gestor-igrejas-core/internal/app/config"
	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	"gestor-igrejas-core/internal/modules/catalogo"
	"gestor-igrejas-core/internal/shared/utils"
)

const nomePerfilSistema = "Administrador Geral"

// seedingService implementa SeedingService
type seedingService struct {
	pgClient *postgres.Client
	config   *config.Config
}

// NewSeedingService cria um novo serviço de semeadura
func NewSeedingService(pgClient *postgres.Client, cfg *config.Config) SeedingService {
	return &seedingService{
		pgClient: pgClient,
		config:   cfg,
	}
}

// CheckSeedDataExists verifica quais dados de semeadura já existem
func (s *seedingService) CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error) {
	status := &SeedDataStatus{}

	perfilExist, err := s.checkPerfilSistemaExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro na verificação do perfil de sistema: %w", err)
	}
	status.PerfilSistemaExist = perfilExist

	superadminExist, err := s.checkSuperadminExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro na verificação do superadmin: %w", err)
	}
	status.SuperadminExist = superadminExist

	status.AllDataExists = status.PerfilSistemaExist && status.SuperadminExist

	return status, nil
}

// ValidateRequiredTables valida que todas as tabelas requeridas existem
func (s *seedingService) ValidateRequiredTables(ctx context.Context) error {
	requiredTables := []string{
		"auth_perfil",
		"auth_perfil_permissao",
		"auth_usuario",
		"auth_usuario_perfil",
	}

	for _, table := range requiredTables {
		exists, err := s.checkTableExists(ctx, table)
		if err != nil {
			return fmt.Errorf("erro na verificação da tabela %s: %w", table, err)
		}
		if !exists {
			return ErrTableNotExists(table)
		}
	}

	return nil
}

// SeedPerfilSistema cria o perfil de sistema com a matriz completa do
// catálogo: toda ação aplicável em todo caminho vira uma tupla concedida
func (s *seedingService) SeedPerfilSistema(ctx context.Context) error {
	var perfilID string
	err := s.pgClient.QueryRow(ctx, `
		INSERT INTO auth_perfil (id, tenant_id, nome, descricao, sistema, ativo, created_at, updated_at)
		VALUES (gen_random_uuid(), NULL, $1, 'Perfil de sistema com acesso completo', TRUE, TRUE, NOW(), NOW())
		RETURNING id
	`, nomePerfilSistema).Scan(&perfilID)
	if err != nil {
		return ErrDatabaseOperation("criação do perfil de sistema", err)
	}

	for _, tupla := range expandirCatalogo() {
		err := s.pgClient.Exec(ctx, `
			INSERT INTO auth_perfil_permissao (perfil_id, modulo, submodulo, sub_submodulo, acao)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT DO NOTHING
		`, perfilID, tupla.modulo, tupla.submodulo, tupla.subSubmodulo, tupla.acao)
		if err != nil {
			return ErrDatabaseOperation("inserção da matriz do perfil de sistema", err)
		}
	}

	fmt.Printf("[SEEDING] ✅ Perfil de sistema %q criado com a matriz completa\n", nomePerfilSistema)
	return nil
}

// SeedSuperadmin cria o usuário superadmin com as credenciais do ambiente
// e atribui o perfil de sistema
func (s *seedingService) SeedSuperadmin(ctx context.Context) error {
	email := s.config.Sistema.SuperadminEmail
	senha := s.config.Sistema.SuperadminPassword
	if email == "" || senha == "" {
		return ErrValidation("credenciais do superadmin ausentes no ambiente")
	}

	senhaHash, err := utils.HashPassword(senha)
	if err != nil {
		return ErrDatabaseOperation("hash da senha do superadmin", err)
	}

	var userID string
	err = s.pgClient.QueryRow(ctx, `
		INSERT INTO auth_usuario (id, email, senha_hash, papel, ativo, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, 'superadmin', TRUE, NOW(), NOW())
		RETURNING id
	`, email, senhaHash).Scan(&userID)
	if err != nil {
		return ErrDatabaseOperation("criação do superadmin", err)
	}

	err = s.pgClient.Exec(ctx, `
		INSERT INTO auth_usuario_perfil (usuario_id, perfil_id, ativo, created_at)
		SELECT $1, p.id, TRUE, NOW()
		FROM auth_perfil p
		WHERE p.sistema = TRUE AND p.nome = $2
		ON CONFLICT (usuario_id, perfil_id) DO NOTHING
	`, userID, nomePerfilSistema)
	if err != nil {
		return ErrDatabaseOperation("atribuição do perfil de sistema", err)
	}

	fmt.Printf("[SEEDING] ✅ Superadmin %s criado\n", email)
	return nil
}

// tupla de permissão como persistida (segmentos ausentes = '')
type tuplaCatalogo struct {
	modulo       string
	submodulo    string
	subSubmodulo string
	acao         string
}

// expandirCatalogo percorre o catálogo inteiro e materializa todas as
// tuplas (caminho, ação) concedíveis
func expandirCatalogo() []tuplaCatalogo {
	var tuplas []tuplaCatalogo

	for _, m := range catalogo.ListarModulos() {
		for _, acao := range m.Acoes {
			tuplas = append(tuplas, tuplaCatalogo{modulo: m.Chave, acao: string(acao)})
		}
		for _, sub := range m.Submodulos {
			for _, acao := range sub.Acoes {
				tuplas = append(tuplas, tuplaCatalogo{
					modulo:    m.Chave,
					submodulo: sub.Chave,
					acao:      string(acao),
				})
			}
			for _, subsub := range sub.Submodulos {
				for _, acao := range subsub.Acoes {
					tuplas = append(tuplas, tuplaCatalogo{
						modulo:       m.Chave,
						submodulo:    sub.Chave,
						subSubmodulo: subsub.Chave,
						acao:         string(acao),
					})
				}
			}
		}
	}

	return tuplas
}

func (s *seedingService) checkPerfilSistemaExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.pgClient.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM auth_perfil WHERE sistema = TRUE AND ativo = TRUE)
	`).Scan(&exists)
	return exists, err
}

func (s *seedingService) checkSuperadminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.pgClient.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM auth_usuario WHERE papel = 'superadmin' AND ativo = TRUE)
	`).Scan(&exists)
	return exists, err
}

func (s *seedingService) checkTableExists(ctx context.Context, tableName string) (bool, error) {
	var exists bool
	err := s.pgClient.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`, tableName).Scan(&exists)
	return exists, err
}
