package services

import (
	"context"

	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	autzservices "gestor-igrejas-core/internal/modules/autorizacao/services"
	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/dto"
)

const moduloContasPagar = "contas-pagar"

// Autorizador é o recorte da fachada de autorização que este serviço
// consome; os testes injetam um substituto em memória.
type Autorizador interface {
	AutorizarOuErro(ctx context.Context, pedido autzservices.PedidoAutorizacao) error
}

// ContaPagarService é o motor de aprovação das contas a pagar: toda
// mutação de status passa por aqui, protegida pela fachada de autorização
// e pela disciplina compare-and-transition do store.
type ContaPagarService struct {
	store              ContaPagarStore
	autorizacaoService Autorizador
}

// NewContaPagarService cria uma nova instância do serviço de contas a pagar
func NewContaPagarService(store ContaPagarStore, autorizacaoService *autzservices.AutorizacaoService) *ContaPagarService {
	return &ContaPagarService{
		store:              store,
		autorizacaoService: autorizacaoService,
	}
}

// Criar registra uma conta nova, sempre em pending_management
func (s *ContaPagarService) Criar(ctx context.Context, ator autzdto.Ator, tenant *autzdto.TenantContext, req dto.CriarContaRequest) (*dto.ContaPagar, error) {
	if err := s.autorizar(ctx, ator, tenant, "insert", req.CongregacaoID); err != nil {
		return nil, err
	}

	return s.store.Inserir(ctx, tenantIDOuNil(tenant), req.CongregacaoID, req.Descricao, req.Valor, ator.UserID, nil)
}

// Buscar recupera uma conta pelo identificador
func (s *ContaPagarService) Buscar(ctx context.Context, ator autzdto.Ator, tenant *autzdto.TenantContext, contaID string) (*dto.ContaPagar, error) {
	if err := s.autorizar(ctx, ator, tenant, "view", ""); err != nil {
		return nil, err
	}
	return s.store.BuscarPorID(ctx, contaID)
}

// Listar lista as contas do tenant com filtros opcionais
func (s *ContaPagarService) Listar(ctx context.Context, ator autzdto.Ator, tenant *autzdto.TenantContext, filtro dto.FiltroContas) ([]dto.ContaPagar, error) {
	if err := s.autorizar(ctx, ator, tenant, "view", ""); err != nil {
		return nil, err
	}
	return s.store.Listar(ctx, tenantIDOuNil(tenant), filtro)
}

// Aprovar avança a conta uma etapa na cadeia de aprovação.
// Pré-condições: a conta aguarda aprovação e o papel do ator cobre a
// alçada exigida. A escrita é condicional ao status lido; corrida
// detectada vira conflito recuperável.
func (s *ContaPagarService) Aprovar(ctx context.Context, ator autzdto.Ator, tenant *autzdto.TenantContext, contaID string) (*dto.ContaPagar, error) {
	if err := s.autorizar(ctx, ator, tenant, "approve", ""); err != nil {
		return nil, err
	}

	conta, err := s.store.BuscarPorID(ctx, contaID)
	if err != nil {
		return nil, err
	}

	if !conta.Status.Pendente() {
		return nil, autzdto.NewPrecondicaoFalhou("a conta não aguarda aprovação", string(conta.Status))
	}

	if !PodeAprovar(ator.Papel, conta.Status) {
		return nil, autzdto.NewPolicyDenied("alçada insuficiente para esta etapa", map[string]interface{}{
			"motivo":        autzdto.MotivoNivelInsuficiente,
			"papel":         ator.Papel,
			"status_atual":  conta.Status,
			"niveis_papel":  NiveisPermitidos(ator.Papel),
		})
	}

	novo, _ := ProximoStatus(conta.Status)
	return s.transicionar(ctx, contaID, conta.Status, novo, ator.UserID)
}

// Rejeitar encerra a cadeia em rejected, a partir de qualquer estado
// pendente. Mesma pré-condição de alçada da aprovação; rejeição é final.
func (s *ContaPagarService) Rejeitar(ctx context.Context, ator autzdto.Ator, tenant *autzdto.TenantContext, contaID string) (*dto.ContaPagar, error) {
	if err := s.autorizar(ctx, ator, tenant, "approve", ""); err != nil {
		return nil, err
	}

	conta, err := s.store.BuscarPorID(ctx, contaID)
	if err != nil {
		return nil, err
	}

	if !conta.Status.Pendente() {
		return nil, autzdto.NewPrecondicaoFalhou("a conta não aguarda aprovação", string(conta.Status))
	}

	if !PodeAprovar(ator.Papel, conta.Status) {
		return nil, autzdto.NewPolicyDenied("alçada insuficiente para esta etapa", map[string]interface{}{
			"motivo":       autzdto.MotivoNivelInsuficiente,
			"papel":        ator.Papel,
			"status_atual": conta.Status,
		})
	}

	return s.transicionar(ctx, contaID, conta.Status, dto.StatusRejeitada, ator.UserID)
}

// MarcarPaga dá baixa numa conta aprovada. Sem gating por alçada — só a
// permissão genérica de edição do módulo.
func (s *ContaPagarService) MarcarPaga(ctx context.Context, ator autzdto.Ator, tenant *autzdto.TenantContext, contaID string) (*dto.ContaPagar, error) {
	if err := s.autorizar(ctx, ator, tenant, "edit", ""); err != nil {
		return nil, err
	}

	conta, err := s.store.BuscarPorID(ctx, contaID)
	if err != nil {
		return nil, err
	}

	if conta.Status != dto.StatusAprovada {
		return nil, autzdto.NewPrecondicaoFalhou("a conta não está aprovada", string(conta.Status))
	}

	efetivada, err := s.store.MarcarPaga(ctx, contaID)
	if err != nil {
		return nil, err
	}
	if !efetivada {
		return nil, s.conflitoOuSumico(ctx, contaID, dto.StatusAprovada)
	}

	return s.store.BuscarPorID(ctx, contaID)
}

// Reabrir cria uma conta nova referenciando uma rejeitada.
// Rejeição nunca volta para a cadeia: a reapresentação é um registro novo
// em pending_management, com vínculo de origem para rastreabilidade.
func (s *ContaPagarService) Reabrir(ctx context.Context, ator autzdto.Ator, tenant *autzdto.TenantContext, contaID string, req dto.ReabrirContaRequest) (*dto.ContaPagar, error) {
	if err := s.autorizar(ctx, ator, tenant, "insert", ""); err != nil {
		return nil, err
	}

	original, err := s.store.BuscarPorID(ctx, contaID)
	if err != nil {
		return nil, err
	}

	if original.Status != dto.StatusRejeitada {
		return nil, autzdto.NewPrecondicaoFalhou("somente contas rejeitadas podem ser reapresentadas", string(original.Status))
	}

	descricao := original.Descricao
	if req.Descricao != "" {
		descricao = req.Descricao
	}
	valor := original.Valor
	if req.Valor > 0 {
		valor = req.Valor
	}

	return s.store.Inserir(ctx, tenantIDOuNil(tenant), original.CongregacaoID, descricao, valor, ator.UserID, &original.ID)
}

// transicionar aplica a escrita condicional e classifica o resultado:
// sucesso, registro sumido ou corrida (conflito recuperável)
func (s *ContaPagarService) transicionar(ctx context.Context, contaID string, esperado, novo dto.Status, atorID string) (*dto.ContaPagar, error) {
	efetivada, err := s.store.TransicionarStatus(ctx, contaID, esperado, novo, atorID)
	if err != nil {
		return nil, err
	}
	if !efetivada {
		return nil, s.conflitoOuSumico(ctx, contaID, esperado)
	}

	return s.store.BuscarPorID(ctx, contaID)
}

// conflitoOuSumico relê o registro após uma escrita condicional vazia:
// registro inexistente vira not_found; status divergente vira conflito
func (s *ContaPagarService) conflitoOuSumico(ctx context.Context, contaID string, esperado dto.Status) error {
	atual, err := s.store.BuscarPorID(ctx, contaID)
	if err != nil {
		return err
	}
	return autzdto.NewConflitoTransicao(string(esperado), string(atual.Status))
}

// autorizar delega à fachada o gate de módulo + permissão
func (s *ContaPagarService) autorizar(ctx context.Context, ator autzdto.Ator, tenant *autzdto.TenantContext, acao, congregacaoID string) error {
	return s.autorizacaoService.AutorizarOuErro(ctx, autzservices.PedidoAutorizacao{
		Ator:          ator,
		Tenant:        tenant,
		Modulo:        moduloContasPagar,
		Acao:          acao,
		CongregacaoID: congregacaoID,
	})
}

// tenantIDOuNil extrai o id do tenant, nil em organização única
func tenantIDOuNil(tenant *autzdto.TenantContext) *string {
	if tenant == nil {
		return nil
	}
	return &tenant.ID
}
