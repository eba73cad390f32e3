package services

import (
	"context"
	"fmt"

	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/catalogo"
)

// Dependências estreitas da fachada. As implementações concretas vivem
// neste pacote; os testes injetam substitutos em memória.
type verificadorPermissoes interface {
	VerificarPermissao(ctx context.Context, tenant *dto.TenantContext, userID, modulo, submodulo, subSubmodulo string, acao catalogo.Acao) (bool, error)
}

type resolvedorModulos interface {
	CarregarConfigModulos(ctx context.Context, tenant *dto.TenantContext) (dto.ConfigModulos, error)
	ModuloHabilitado(tenant *dto.TenantContext, config dto.ConfigModulos, chave string) bool
}

type resolvedorCongregacoes interface {
	ResolverAcesso(ctx context.Context, ator dto.Ator, tenant *dto.TenantContext, modulo string) dto.AcessoCongregacoes
	AlcancaCongregacao(ctx context.Context, acesso dto.AcessoCongregacoes, congregacaoID string) bool
}

// AutorizacaoService é a fachada de autorização: combina habilitação de
// módulo por tenant, matriz de permissões e escopo congregacional numa
// decisão única.
type AutorizacaoService struct {
	permissaoService verificadorPermissoes
	modulosService   resolvedorModulos
	congregacaoSvc   resolvedorCongregacoes
}

// NewAutorizacaoService cria uma nova instância da fachada de autorização
func NewAutorizacaoService(
	permissaoService *PermissaoService,
	modulosService *ModulosTenantService,
	congregacaoSvc *CongregacaoService,
) *AutorizacaoService {
	return &AutorizacaoService{
		permissaoService: permissaoService,
		modulosService:   modulosService,
		congregacaoSvc:   congregacaoSvc,
	}
}

// PedidoAutorizacao descreve uma tentativa de acesso a ser decidida
type PedidoAutorizacao struct {
	Ator         dto.Ator
	Tenant       *dto.TenantContext
	Modulo       string
	Submodulo    string
	SubSubmodulo string
	Acao         string
	// CongregacaoID restringe a decisão a uma congregação específica;
	// vazio quando a operação não tem alvo congregacional
	CongregacaoID string
}

// Autorizar decide um pedido de acesso. A avaliação segue ordem fixa de
// curto-circuito: veto de tenant (módulo desabilitado) antes da matriz de
// permissões, e escopo congregacional por último. Cada negação carrega o
// motivo da primeira barreira atingida.
func (s *AutorizacaoService) Autorizar(ctx context.Context, pedido PedidoAutorizacao) (dto.Decisao, error) {
	// 1. Veto de tenant: módulo precisa estar habilitado no plano/config
	config, err := s.modulosService.CarregarConfigModulos(ctx, pedido.Tenant)
	if err != nil {
		return dto.Decisao{}, fmt.Errorf("erro no carregamento da configuração de módulos: %w", err)
	}

	if !s.modulosService.ModuloHabilitado(pedido.Tenant, config, pedido.Modulo) {
		return dto.Negar(dto.MotivoModuloDesabilitado), nil
	}

	// 2. Matriz de permissões: correspondência exata, default-deny
	concedida, err := s.permissaoService.VerificarPermissao(ctx, pedido.Tenant, pedido.Ator.UserID,
		pedido.Modulo, pedido.Submodulo, pedido.SubSubmodulo, catalogo.Acao(pedido.Acao))
	if err != nil {
		return dto.Decisao{}, fmt.Errorf("erro na verificação de permissão: %w", err)
	}
	if !concedida {
		return dto.Negar(dto.MotivoSemPermissao), nil
	}

	// 3. Escopo congregacional — só avaliado quando a operação nomeia
	// uma congregação alvo em módulo congregacional
	if pedido.CongregacaoID != "" && catalogo.EscopoCongregacao(pedido.Modulo) {
		acesso := s.congregacaoSvc.ResolverAcesso(ctx, pedido.Ator, pedido.Tenant, pedido.Modulo)
		if !s.congregacaoSvc.AlcancaCongregacao(ctx, acesso, pedido.CongregacaoID) {
			return dto.Negar(dto.MotivoEscopoCongregacao), nil
		}
	}

	return dto.Permitir(), nil
}

// AutorizarOuErro é a variante que converte negação em ServiceError,
// conveniente para serviços que só seguem adiante com acesso concedido
func (s *AutorizacaoService) AutorizarOuErro(ctx context.Context, pedido PedidoAutorizacao) error {
	decisao, err := s.Autorizar(ctx, pedido)
	if err != nil {
		return err
	}
	if !decisao.Permitido {
		return dto.NewPolicyDenied("acesso negado", map[string]interface{}{
			"motivo": decisao.Motivo,
			"modulo": pedido.Modulo,
			"acao":   pedido.Acao,
		})
	}
	return nil
}
