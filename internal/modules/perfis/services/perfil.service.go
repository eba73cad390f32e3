package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	autzservices "gestor-igrejas-core/internal/modules/autorizacao/services"
	"gestor-igrejas-core/internal/modules/catalogo"
	"gestor-igrejas-core/internal/modules/perfis/dto"
	"gestor-igrejas-core/internal/modules/perfis/queries"
)

type PerfilService struct {
	db               *postgres.Client
	permissaoService *autzservices.PermissaoService
}

// NewPerfilService cria uma nova instância do serviço de perfis
func NewPerfilService(db *postgres.Client, permissaoService *autzservices.PermissaoService) *PerfilService {
	return &PerfilService{
		db:               db,
		permissaoService: permissaoService,
	}
}

// ListarPerfis lista os perfis ativos visíveis no contexto do tenant
func (s *PerfilService) ListarPerfis(ctx context.Context, tenant *autzdto.TenantContext) ([]dto.Perfil, error) {
	rows, err := s.db.Query(ctx, queries.PerfilQueries.ListPerfis, tenantID(tenant))
	if err != nil {
		return nil, fmt.Errorf("erro na listagem de perfis: %w", err)
	}
	defer rows.Close()

	var perfis []dto.Perfil
	for rows.Next() {
		var p dto.Perfil
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Nome, &p.Descricao, &p.Sistema,
			&p.Ativo, &p.CriadoEm, &p.AtualizadoEm); err != nil {
			return nil, err
		}
		perfis = append(perfis, p)
	}
	return perfis, rows.Err()
}

// BuscarPerfil recupera um perfil pelo identificador
func (s *PerfilService) BuscarPerfil(ctx context.Context, perfilID string) (*dto.Perfil, error) {
	var p dto.Perfil
	err := s.db.QueryRow(ctx, queries.PerfilQueries.GetPerfilPorID, perfilID).
		Scan(&p.ID, &p.TenantID, &p.Nome, &p.Descricao, &p.Sistema,
			&p.Ativo, &p.CriadoEm, &p.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, autzdto.NewNaoEncontrado("perfil não encontrado", map[string]interface{}{
				"perfil_id": perfilID,
			})
		}
		return nil, fmt.Errorf("erro na recuperação do perfil: %w", err)
	}
	return &p, nil
}

// CriarPerfil cria um perfil de tenant. Perfis de sistema nunca nascem por
// aqui — só pela semeadura da instalação.
func (s *PerfilService) CriarPerfil(ctx context.Context, tenant *autzdto.TenantContext, req dto.CriarPerfilRequest) (*dto.Perfil, error) {
	if err := s.validarNomeDisponivel(ctx, tenant, req.Nome, nil); err != nil {
		return nil, err
	}

	var p dto.Perfil
	err := s.db.QueryRow(ctx, queries.PerfilQueries.InsertPerfil, tenantID(tenant), req.Nome, req.Descricao).
		Scan(&p.ID, &p.TenantID, &p.Nome, &p.Descricao, &p.Sistema,
			&p.Ativo, &p.CriadoEm, &p.AtualizadoEm)
	if err != nil {
		return nil, fmt.Errorf("erro na criação do perfil: %w", err)
	}
	return &p, nil
}

// AtualizarPerfil altera nome e descrição. Perfis de sistema são imutáveis.
func (s *PerfilService) AtualizarPerfil(ctx context.Context, tenant *autzdto.TenantContext, perfilID string, req dto.AtualizarPerfilRequest) (*dto.Perfil, error) {
	perfil, err := s.BuscarPerfil(ctx, perfilID)
	if err != nil {
		return nil, err
	}
	if perfil.Sistema {
		return nil, autzdto.NewPolicyDenied("perfil de sistema não pode ser alterado", map[string]interface{}{
			"perfil_id": perfilID,
		})
	}

	if err := s.validarNomeDisponivel(ctx, tenant, req.Nome, &perfilID); err != nil {
		return nil, err
	}

	if err := s.db.Exec(ctx, queries.PerfilQueries.UpdatePerfil, perfilID, req.Nome, req.Descricao); err != nil {
		return nil, fmt.Errorf("erro na atualização do perfil: %w", err)
	}

	return s.BuscarPerfil(ctx, perfilID)
}

// InativarPerfil faz a inativação lógica do perfil. As atribuições
// permanecem registradas, mas o perfil deixa de contribuir para o conjunto
// efetivo de qualquer usuário.
func (s *PerfilService) InativarPerfil(ctx context.Context, tenant *autzdto.TenantContext, perfilID string) error {
	perfil, err := s.BuscarPerfil(ctx, perfilID)
	if err != nil {
		return err
	}
	if perfil.Sistema {
		return autzdto.NewPolicyDenied("perfil de sistema não pode ser inativado", map[string]interface{}{
			"perfil_id": perfilID,
		})
	}

	if err := s.db.Exec(ctx, queries.PerfilQueries.InativarPerfil, perfilID); err != nil {
		return fmt.Errorf("erro na inativação do perfil: %w", err)
	}

	s.permissaoService.InvalidarPermissoesPerfil(ctx, autzdto.CodigoCache(tenant), perfilID)
	return nil
}

// MatrizDoPerfil recupera as tuplas de permissão do perfil
func (s *PerfilService) MatrizDoPerfil(ctx context.Context, perfilID string) ([]autzdto.Permissao, error) {
	if _, err := s.BuscarPerfil(ctx, perfilID); err != nil {
		return nil, err
	}
	return s.permissaoService.PermissoesDoPerfil(ctx, perfilID)
}

// SalvarMatriz substitui integralmente a matriz de permissões do perfil.
// A expansão item -> tuplas acontece aqui; a validação contra o catálogo e
// a troca atômica ficam com o serviço de permissões.
func (s *PerfilService) SalvarMatriz(ctx context.Context, tenant *autzdto.TenantContext, perfilID string, req dto.SalvarMatrizRequest) error {
	perfil, err := s.BuscarPerfil(ctx, perfilID)
	if err != nil {
		return err
	}
	if perfil.Sistema {
		return autzdto.NewPolicyDenied("matriz de perfil de sistema não pode ser alterada", map[string]interface{}{
			"perfil_id": perfilID,
		})
	}

	permissoes, err := ExpandirMatriz(perfilID, req.Itens)
	if err != nil {
		return err
	}

	return s.permissaoService.SubstituirPermissoesPerfil(ctx, autzdto.CodigoCache(tenant), perfilID, permissoes)
}

// ExpandirMatriz converte os itens da matriz (caminho + lista de ações) nas
// tuplas de permissão correspondentes. Ações fora da enumeração são rejeitadas.
func ExpandirMatriz(perfilID string, itens []dto.ItemMatriz) ([]autzdto.Permissao, error) {
	var permissoes []autzdto.Permissao
	for _, item := range itens {
		for _, acao := range item.Acoes {
			if !catalogo.AcaoValida(catalogo.Acao(acao)) {
				return nil, autzdto.NewValidacao("ação desconhecida na matriz", map[string]interface{}{
					"acao": acao,
				})
			}
			permissoes = append(permissoes, autzdto.Permissao{
				PerfilID:     perfilID,
				Modulo:       item.Modulo,
				Submodulo:    item.Submodulo,
				SubSubmodulo: item.SubSubmodulo,
				Acao:         catalogo.Acao(acao),
			})
		}
	}
	return permissoes, nil
}

// AtribuirPerfil atribui o perfil a um usuário (idempotente)
func (s *PerfilService) AtribuirPerfil(ctx context.Context, tenant *autzdto.TenantContext, perfilID, userID string) error {
	if _, err := s.BuscarPerfil(ctx, perfilID); err != nil {
		return err
	}

	if err := s.db.Exec(ctx, queries.PerfilQueries.AtribuirPerfil, userID, perfilID); err != nil {
		return fmt.Errorf("erro na atribuição do perfil: %w", err)
	}

	return s.permissaoService.InvalidarPermissoesUsuario(ctx, autzdto.CodigoCache(tenant), userID)
}

// RevogarPerfil revoga a atribuição do perfil de um usuário
func (s *PerfilService) RevogarPerfil(ctx context.Context, tenant *autzdto.TenantContext, perfilID, userID string) error {
	if err := s.db.Exec(ctx, queries.PerfilQueries.RevogarPerfil, userID, perfilID); err != nil {
		return fmt.Errorf("erro na revogação do perfil: %w", err)
	}

	return s.permissaoService.InvalidarPermissoesUsuario(ctx, autzdto.CodigoCache(tenant), userID)
}

// validarNomeDisponivel garante nome único (case-insensitive) dentro do tenant
func (s *PerfilService) validarNomeDisponivel(ctx context.Context, tenant *autzdto.TenantContext, nome string, ignorarID *string) error {
	var total int
	err := s.db.QueryRow(ctx, queries.PerfilQueries.CountNomeDuplicado, tenantID(tenant), nome, ignorarID).Scan(&total)
	if err != nil {
		return fmt.Errorf("erro na verificação de duplicidade: %w", err)
	}
	if total > 0 {
		return autzdto.NewValidacao("já existe um perfil com este nome", map[string]interface{}{
			"nome": nome,
		})
	}
	return nil
}

// tenantID extrai o identificador do tenant, nil em organização única
func tenantID(tenant *autzdto.TenantContext) *string {
	if tenant == nil {
		return nil
	}
	return &tenant.ID
}
