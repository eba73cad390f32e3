package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/dto"
	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/queries"
)

// ContaPagarStore abstrai a persistência das contas a pagar.
// A implementação padrão usa PostgreSQL; os testes de concorrência
// injetam uma versão em memória.
type ContaPagarStore interface {
	Inserir(ctx context.Context, tenantID *string, congregacaoID, descricao string, valor float64, criadoPor string, reabertaDeID *string) (*dto.ContaPagar, error)
	BuscarPorID(ctx context.Context, contaID string) (*dto.ContaPagar, error)
	Listar(ctx context.Context, tenantID *string, filtro dto.FiltroContas) ([]dto.ContaPagar, error)
	// TransicionarStatus efetua a escrita condicional ao status esperado.
	// Retorna false sem erro quando nenhuma linha foi afetada.
	TransicionarStatus(ctx context.Context, contaID string, esperado, novo dto.Status, atorID string) (bool, error)
	MarcarPaga(ctx context.Context, contaID string) (bool, error)
}

type contaPagarStorePG struct {
	db *postgres.Client
}

// NewContaPagarStorePG cria o store padrão baseado em PostgreSQL
func NewContaPagarStorePG(db *postgres.Client) ContaPagarStore {
	return &contaPagarStorePG{db: db}
}

func (s *contaPagarStorePG) Inserir(ctx context.Context, tenantID *string, congregacaoID, descricao string, valor float64, criadoPor string, reabertaDeID *string) (*dto.ContaPagar, error) {
	row := s.db.QueryRow(ctx, queries.ContaPagarQueries.Insert,
		tenantID, congregacaoID, descricao, valor, criadoPor, reabertaDeID)
	return scanConta(row)
}

func (s *contaPagarStorePG) BuscarPorID(ctx context.Context, contaID string) (*dto.ContaPagar, error) {
	conta, err := scanConta(s.db.QueryRow(ctx, queries.ContaPagarQueries.GetByID, contaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, autzdto.NewNaoEncontrado("conta a pagar não encontrada", map[string]interface{}{
				"conta_id": contaID,
			})
		}
		return nil, fmt.Errorf("erro na recuperação da conta: %w", err)
	}
	return conta, nil
}

func (s *contaPagarStorePG) Listar(ctx context.Context, tenantID *string, filtro dto.FiltroContas) ([]dto.ContaPagar, error) {
	var status, congregacaoID *string
	if filtro.Status != "" {
		v := string(filtro.Status)
		status = &v
	}
	if filtro.CongregacaoID != "" {
		congregacaoID = &filtro.CongregacaoID
	}

	rows, err := s.db.Query(ctx, queries.ContaPagarQueries.List, tenantID, status, congregacaoID)
	if err != nil {
		return nil, fmt.Errorf("erro na listagem de contas: %w", err)
	}
	defer rows.Close()

	var contas []dto.ContaPagar
	for rows.Next() {
		conta, err := scanConta(rows)
		if err != nil {
			return nil, err
		}
		contas = append(contas, *conta)
	}
	return contas, rows.Err()
}

func (s *contaPagarStorePG) TransicionarStatus(ctx context.Context, contaID string, esperado, novo dto.Status, atorID string) (bool, error) {
	afetadas, err := s.db.ExecAffected(ctx, queries.ContaPagarQueries.TransicionarStatus,
		contaID, esperado, novo, atorID)
	if err != nil {
		return false, fmt.Errorf("erro na transição de status: %w", err)
	}
	return afetadas > 0, nil
}

func (s *contaPagarStorePG) MarcarPaga(ctx context.Context, contaID string) (bool, error) {
	afetadas, err := s.db.ExecAffected(ctx, queries.ContaPagarQueries.MarcarPaga, contaID)
	if err != nil {
		return false, fmt.Errorf("erro na baixa da conta: %w", err)
	}
	return afetadas > 0, nil
}

type pgRow interface {
	Scan(dest ...any) error
}

func scanConta(row pgRow) (*dto.ContaPagar, error) {
	var c dto.ContaPagar
	err := row.Scan(&c.ID, &c.TenantID, &c.CongregacaoID, &c.Descricao, &c.Valor,
		&c.Status, &c.CriadoPor, &c.AprovadoPor, &c.AprovadoEm,
		&c.PagoEm, &c.ReabertaDeID, &c.CriadoEm, &c.AtualizadoEm)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
