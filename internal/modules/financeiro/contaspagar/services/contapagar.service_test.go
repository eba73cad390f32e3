package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	autzservices "gestor-igrejas-core/internal/modules/autorizacao/services"
	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/dto"
)

// storeMemoria implementa ContaPagarStore em memória com a mesma disciplina
// compare-and-transition da implementação PostgreSQL
type storeMemoria struct {
	mu     sync.Mutex
	contas map[string]*dto.ContaPagar
	seq    int
}

func novoStoreMemoria() *storeMemoria {
	return &storeMemoria{contas: map[string]*dto.ContaPagar{}}
}

func (s *storeMemoria) Inserir(ctx context.Context, tenantID *string, congregacaoID, descricao string, valor float64, criadoPor string, reabertaDeID *string) (*dto.ContaPagar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	conta := &dto.ContaPagar{
		ID:            fmt.Sprintf("conta-%d", s.seq),
		TenantID:      tenantID,
		CongregacaoID: congregacaoID,
		Descricao:     descricao,
		Valor:         valor,
		Status:        dto.StatusPendenteGerencia,
		CriadoPor:     criadoPor,
		ReabertaDeID:  reabertaDeID,
		CriadoEm:      time.Now(),
		AtualizadoEm:  time.Now(),
	}
	s.contas[conta.ID] = conta
	copia := *conta
	return &copia, nil
}

func (s *storeMemoria) BuscarPorID(ctx context.Context, contaID string) (*dto.ContaPagar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conta, existe := s.contas[contaID]
	if !existe {
		return nil, autzdto.NewNaoEncontrado("conta a pagar não encontrada", map[string]interface{}{
			"conta_id": contaID,
		})
	}
	copia := *conta
	return &copia, nil
}

func (s *storeMemoria) Listar(ctx context.Context, tenantID *string, filtro dto.FiltroContas) ([]dto.ContaPagar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var contas []dto.ContaPagar
	for _, conta := range s.contas {
		if filtro.Status != "" && conta.Status != filtro.Status {
			continue
		}
		if filtro.CongregacaoID != "" && conta.CongregacaoID != filtro.CongregacaoID {
			continue
		}
		contas = append(contas, *conta)
	}
	return contas, nil
}

func (s *storeMemoria) TransicionarStatus(ctx context.Context, contaID string, esperado, novo dto.Status, atorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conta, existe := s.contas[contaID]
	if !existe || conta.Status != esperado {
		return false, nil
	}
	agora := time.Now()
	conta.Status = novo
	conta.AprovadoPor = &atorID
	conta.AprovadoEm = &agora
	conta.AtualizadoEm = agora
	return true, nil
}

func (s *storeMemoria) MarcarPaga(ctx context.Context, contaID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conta, existe := s.contas[contaID]
	if !existe || conta.Status != dto.StatusAprovada {
		return false, nil
	}
	agora := time.Now()
	conta.Status = dto.StatusPaga
	conta.PagoEm = &agora
	conta.AtualizadoEm = agora
	return true, nil
}

// autorizadorLiberado concede tudo; os testes de gating usam autorizadorNegado
type autorizadorLiberado struct{}

func (autorizadorLiberado) AutorizarOuErro(ctx context.Context, pedido autzservices.PedidoAutorizacao) error {
	return nil
}

type autorizadorNegado struct{}

func (autorizadorNegado) AutorizarOuErro(ctx context.Context, pedido autzservices.PedidoAutorizacao) error {
	return autzdto.NewPolicyDenied("acesso negado", map[string]interface{}{
		"motivo": autzdto.MotivoSemPermissao,
	})
}

func servicoComStore(store ContaPagarStore) *ContaPagarService {
	return &ContaPagarService{store: store, autorizacaoService: autorizadorLiberado{}}
}

func atorPapel(papel autzdto.Papel) autzdto.Ator {
	return autzdto.Ator{UserID: "44444444-4444-4444-4444-444444444444", Papel: papel}
}

func contaPendente(t *testing.T, s *ContaPagarService) *dto.ContaPagar {
	t.Helper()
	conta, err := s.Criar(context.Background(), atorPapel(autzdto.PapelFinance), nil, dto.CriarContaRequest{
		CongregacaoID: "c1",
		Descricao:     "Conta de energia",
		Valor:         350.50,
	})
	require.NoError(t, err)
	require.Equal(t, dto.StatusPendenteGerencia, conta.Status)
	return conta
}

func TestCriarContaNasceEmPendenteGerencia(t *testing.T) {
	s := servicoComStore(novoStoreMemoria())
	conta := contaPendente(t, s)

	assert.Equal(t, "c1", conta.CongregacaoID)
	assert.Nil(t, conta.ReabertaDeID)
	assert.Nil(t, conta.AprovadoPor)
}

func TestCriarContaSemPermissao(t *testing.T) {
	s := &ContaPagarService{store: novoStoreMemoria(), autorizacaoService: autorizadorNegado{}}

	_, err := s.Criar(context.Background(), atorPapel(autzdto.PapelWorker), nil, dto.CriarContaRequest{
		CongregacaoID: "c1",
		Descricao:     "Conta de energia",
		Valor:         100,
	})
	assert.True(t, autzdto.IsPolicyDenied(err))
}

func TestCadeiaCompletaDeAprovacao(t *testing.T) {
	ctx := context.Background()
	s := servicoComStore(novoStoreMemoria())
	conta := contaPendente(t, s)

	conta, err := s.Aprovar(ctx, atorPapel(autzdto.PapelGerente), nil, conta.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPendenteDiretoria, conta.Status)

	conta, err = s.Aprovar(ctx, atorPapel(autzdto.PapelDiretor), nil, conta.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPendentePresidencia, conta.Status)

	conta, err = s.Aprovar(ctx, atorPapel(autzdto.PapelPresidente), nil, conta.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusAprovada, conta.Status)
	require.NotNil(t, conta.AprovadoPor)

	conta, err = s.MarcarPaga(ctx, atorPapel(autzdto.PapelFinance), nil, conta.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPaga, conta.Status)
	assert.NotNil(t, conta.PagoEm)
}

func TestAprovarComAlcadaInsuficiente(t *testing.T) {
	ctx := context.Background()
	s := servicoComStore(novoStoreMemoria())
	conta := contaPendente(t, s)

	// Gerente aprova a primeira etapa, mas não a segunda
	conta, err := s.Aprovar(ctx, atorPapel(autzdto.PapelGerente), nil, conta.ID)
	require.NoError(t, err)

	_, err = s.Aprovar(ctx, atorPapel(autzdto.PapelGerente), nil, conta.ID)
	require.Error(t, err)
	assert.True(t, autzdto.IsPolicyDenied(err))

	var svcErr *autzdto.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, autzdto.MotivoNivelInsuficiente, svcErr.Details["motivo"])
}

func TestAdminAprovaQualquerEtapa(t *testing.T) {
	ctx := context.Background()
	s := servicoComStore(novoStoreMemoria())
	conta := contaPendente(t, s)

	admin := atorPapel(autzdto.PapelAdmin)
	for _, esperado := range []dto.Status{dto.StatusPendenteDiretoria, dto.StatusPendentePresidencia, dto.StatusAprovada} {
		var err error
		conta, err = s.Aprovar(ctx, admin, nil, conta.ID)
		require.NoError(t, err)
		assert.Equal(t, esperado, conta.Status)
	}
}

func TestAprovarContaForaDaCadeia(t *testing.T) {
	ctx := context.Background()
	s := servicoComStore(novoStoreMemoria())
	conta := contaPendente(t, s)

	_, err := s.Rejeitar(ctx, atorPapel(autzdto.PapelGerente), nil, conta.ID)
	require.NoError(t, err)

	// Rejeição é terminal: aprovação posterior falha na pré-condição
	_, err = s.Aprovar(ctx, atorPapel(autzdto.PapelAdmin), nil, conta.ID)
	require.Error(t, err)
	assert.True(t, autzdto.IsPrecondicaoFalhou(err))
}

func TestRejeitarDeQualquerEtapaPendente(t *testing.T) {
	ctx := context.Background()
	s := servicoComStore(novoStoreMemoria())

	conta := contaPendente(t, s)
	conta, err := s.Aprovar(ctx, atorPapel(autzdto.PapelGerente), nil, conta.ID)
	require.NoError(t, err)

	conta, err = s.Rejeitar(ctx, atorPapel(autzdto.PapelDiretor), nil, conta.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusRejeitada, conta.Status)

	// Rejeitar de novo falha: o status não é mais pendente
	_, err = s.Rejeitar(ctx, atorPapel(autzdto.PapelAdmin), nil, conta.ID)
	assert.True(t, autzdto.IsPrecondicaoFalhou(err))
}

func TestMarcarPagaExigeAprovada(t *testing.T) {
	ctx := context.Background()
	s := servicoComStore(novoStoreMemoria())
	conta := contaPendente(t, s)

	_, err := s.MarcarPaga(ctx, atorPapel(autzdto.PapelFinance), nil, conta.ID)
	require.Error(t, err)
	assert.True(t, autzdto.IsPrecondicaoFalhou(err))
}

func TestReabrirContaRejeitada(t *testing.T) {
	ctx := context.Background()
	s := servicoComStore(novoStoreMemoria())
	conta := contaPendente(t, s)

	_, err := s.Rejeitar(ctx, atorPapel(autzdto.PapelGerente), nil, conta.ID)
	require.NoError(t, err)

	nova, err := s.Reabrir(ctx, atorPapel(autzdto.PapelFinance), nil, conta.ID, dto.ReabrirContaRequest{
		Valor: 299.90,
	})
	require.NoError(t, err)

	assert.NotEqual(t, conta.ID, nova.ID)
	assert.Equal(t, dto.StatusPendenteGerencia, nova.Status)
	require.NotNil(t, nova.ReabertaDeID)
	assert.Equal(t, conta.ID, *nova.ReabertaDeID)
	// Campos omitidos herdam da conta original; os informados substituem
	assert.Equal(t, conta.Descricao, nova.Descricao)
	assert.Equal(t, 299.90, nova.Valor)

	// A original permanece rejeitada
	original, err := s.Buscar(ctx, atorPapel(autzdto.PapelFinance), nil, conta.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusRejeitada, original.Status)
}

func TestReabrirContaNaoRejeitada(t *testing.T) {
	ctx := context.Background()
	s := servicoComStore(novoStoreMemoria())
	conta := contaPendente(t, s)

	_, err := s.Reabrir(ctx, atorPapel(autzdto.PapelFinance), nil, conta.ID, dto.ReabrirContaRequest{})
	require.Error(t, err)
	assert.True(t, autzdto.IsPrecondicaoFalhou(err))
}

func TestAprovarContaInexistente(t *testing.T) {
	s := servicoComStore(novoStoreMemoria())

	_, err := s.Aprovar(context.Background(), atorPapel(autzdto.PapelAdmin), nil, "conta-999")
	require.Error(t, err)
	assert.True(t, autzdto.IsNaoEncontrado(err))
}

// Duas aprovações concorrentes sobre o mesmo status: exatamente uma vence;
// a outra recebe conflito recuperável
func TestAprovacaoConcorrenteDetectaCorrida(t *testing.T) {
	ctx := context.Background()
	s := servicoComStore(novoStoreMemoria())
	conta := contaPendente(t, s)

	const tentativas = 8
	erros := make(chan error, tentativas)

	var wg sync.WaitGroup
	for i := 0; i < tentativas; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Aprovar(ctx, atorPapel(autzdto.PapelGerente), nil, conta.ID)
			erros <- err
		}()
	}
	wg.Wait()
	close(erros)

	sucessos := 0
	for err := range erros {
		if err == nil {
			sucessos++
			continue
		}
		// Quem perde a corrida vê conflito, pré-condição violada (a conta já
		// avançou) ou alçada insuficiente para o novo status
		recuperavel := autzdto.IsConflito(err) || autzdto.IsPrecondicaoFalhou(err) || autzdto.IsPolicyDenied(err)
		assert.True(t, recuperavel, "erro inesperado: %v", err)
	}
	assert.Equal(t, 1, sucessos)

	atual, err := s.Buscar(ctx, atorPapel(autzdto.PapelGerente), nil, conta.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusPendenteDiretoria, atual.Status)
}
