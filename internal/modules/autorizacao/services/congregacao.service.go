package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/autorizacao/queries"
	"gestor-igrejas-core/internal/modules/catalogo"
)

// CongregacaoLookup abstrai a consulta de congregações sob responsabilidade
// de um pastor. A implementação padrão consulta o PostgreSQL; os testes
// injetam uma versão em memória.
type CongregacaoLookup interface {
	CongregacoesDoPastor(ctx context.Context, userID string, tenantID *string) ([]dto.Congregacao, error)
	CongregacaoPorID(ctx context.Context, congregacaoID string) (*dto.Congregacao, error)
}

type congregacaoLookupPG struct {
	db *postgres.Client
}

func (l *congregacaoLookupPG) CongregacoesDoPastor(ctx context.Context, userID string, tenantID *string) ([]dto.Congregacao, error) {
	rows, err := l.db.Query(ctx, queries.CongregacaoQueries.GetCongregacoesDoPastor, userID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var congregacoes []dto.Congregacao
	for rows.Next() {
		var c dto.Congregacao
		if err := rows.Scan(&c.ID, &c.Nome, &c.PastoresResponsaveis, &c.Ativa); err != nil {
			return nil, err
		}
		congregacoes = append(congregacoes, c)
	}
	return congregacoes, rows.Err()
}

func (l *congregacaoLookupPG) CongregacaoPorID(ctx context.Context, congregacaoID string) (*dto.Congregacao, error) {
	var c dto.Congregacao
	err := l.db.QueryRow(ctx, queries.CongregacaoQueries.GetCongregacaoPorID, congregacaoID).
		Scan(&c.ID, &c.Nome, &c.PastoresResponsaveis, &c.Ativa)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// NewCongregacaoLookupPG cria o lookup padrão baseado em PostgreSQL
func NewCongregacaoLookupPG(db *postgres.Client) CongregacaoLookup {
	return &congregacaoLookupPG{db: db}
}

type CongregacaoService struct {
	lookup CongregacaoLookup
}

// NewCongregacaoService cria uma nova instância do filtro de congregações
func NewCongregacaoService(lookup CongregacaoLookup) *CongregacaoService {
	return &CongregacaoService{lookup: lookup}
}

// ResolverAcesso determina o alcance de congregações do ator para um módulo.
// Tabela de política, primeiro caso vence: admin e superadmin têm acesso
// irrestrito (lista vazia sinaliza "sem escopo"); pastor é restrito às
// congregações sob sua responsabilidade; os demais papéis não têm acesso
// próprio aos módulos congregacionais. Falha na consulta => fail-closed,
// nunca acesso total.
func (s *CongregacaoService) ResolverAcesso(ctx context.Context, ator dto.Ator, tenant *dto.TenantContext, modulo string) dto.AcessoCongregacoes {
	if !catalogo.EscopoCongregacao(modulo) {
		return dto.AcessoCongregacoes{TemAcesso: true}
	}

	switch ator.Papel {
	case dto.PapelSuperadmin, dto.PapelAdmin:
		return dto.AcessoCongregacoes{TemAcesso: true}
	case dto.PapelPastor:
		// segue para a consulta de responsabilidade
	default:
		return dto.AcessoCongregacoes{TemAcesso: false}
	}

	congregacoes, err := s.lookup.CongregacoesDoPastor(ctx, ator.UserID, tenantIDOuNil(tenant))
	if err != nil {
		slog.Error("Falha na resolução de congregações do pastor",
			"user_id", ator.UserID,
			"tenant", dto.CodigoCache(tenant),
			"error", err.Error(),
		)
		return dto.AcessoCongregacoes{TemAcesso: false}
	}

	if len(congregacoes) == 0 {
		return dto.AcessoCongregacoes{TemAcesso: false}
	}

	return dto.AcessoCongregacoes{TemAcesso: true, Congregacoes: congregacoes}
}

// tenantIDOuNil extrai o id do tenant, nil em organização única
func tenantIDOuNil(tenant *dto.TenantContext) *string {
	if tenant == nil {
		return nil
	}
	return &tenant.ID
}

// EscoparConsulta converte o acesso resolvido num fragmento WHERE
// parametrizado para filtrar registros por congregação. Acesso irrestrito
// gera fragmento vazio; acesso negado gera uma consulta que não retorna
// nada.
func (s *CongregacaoService) EscoparConsulta(acesso dto.AcessoCongregacoes, coluna string, proximoArg int) dto.Consulta {
	if !acesso.TemAcesso {
		return dto.Consulta{Vazia: true}
	}

	if len(acesso.Congregacoes) == 0 {
		return dto.Consulta{}
	}

	ids := make([]string, len(acesso.Congregacoes))
	for i, c := range acesso.Congregacoes {
		ids[i] = c.ID
	}

	return dto.Consulta{
		Where: []string{fmt.Sprintf("%s = ANY($%d)", coluna, proximoArg)},
		Args:  []interface{}{ids},
	}
}

// AlcancaCongregacao verifica se o acesso resolvido alcança a congregação
// alvo. Lista explícita exige pertinência; acesso irrestrito ainda exige
// que a congregação exista e esteja ativa — alvo desconhecido é negado,
// nunca presumido. Falha na consulta => fail-closed.
func (s *CongregacaoService) AlcancaCongregacao(ctx context.Context, acesso dto.AcessoCongregacoes, congregacaoID string) bool {
	if !acesso.TemAcesso {
		return false
	}

	if len(acesso.Congregacoes) > 0 {
		for _, c := range acesso.Congregacoes {
			if c.ID == congregacaoID {
				return true
			}
		}
		return false
	}

	congregacao, err := s.lookup.CongregacaoPorID(ctx, congregacaoID)
	if err != nil {
		slog.Error("Falha na verificação da congregação alvo",
			"congregacao_id", congregacaoID,
			"error", err.Error(),
		)
		return false
	}
	return congregacao != nil && congregacao.Ativa
}
