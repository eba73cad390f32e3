package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/autorizacao/services"
	"gestor-igrejas-core/internal/modules/catalogo"
	"gestor-igrejas-core/internal/shared/middleware/sessao"
	"gestor-igrejas-core/internal/shared/middleware/tenant"
)

type AutorizacaoController struct {
	autorizacaoService *services.AutorizacaoService
	permissaoService   *services.PermissaoService
	modulosService     *services.ModulosTenantService
	congregacaoService *services.CongregacaoService
}

// NewAutorizacaoController cria uma nova instância do controller de autorização
func NewAutorizacaoController(
	autorizacaoService *services.AutorizacaoService,
	permissaoService *services.PermissaoService,
	modulosService *services.ModulosTenantService,
	congregacaoService *services.CongregacaoService,
) *AutorizacaoController {
	return &AutorizacaoController{
		autorizacaoService: autorizacaoService,
		permissaoService:   permissaoService,
		modulosService:     modulosService,
		congregacaoService: congregacaoService,
	}
}

// MinhasPermissoes - GET /api/v1/autorizacao/permissoes
// Retorna as permissões efetivas do ator autenticado (união dos perfis ativos)
func (ctrl *AutorizacaoController) MinhasPermissoes(c *gin.Context) {
	ator, _ := sessao.FromContext(c)
	tenantCtx := tenant.FromContext(c)

	permissoes, err := ctrl.permissaoService.CarregarPermissoesEfetivas(c.Request.Context(), tenantCtx, ator.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erro na recuperação das permissões",
			"details": map[string]interface{}{
				"code": "PERMISSIONS_FETCH_ERROR",
			},
		})
		return
	}

	chaves := make([]string, 0, len(permissoes))
	for _, p := range permissoes {
		chaves = append(chaves, p.ChaveComposta())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"permissoes": permissoes,
			"chaves":     chaves,
		},
	})
}

// Verificar - POST /api/v1/autorizacao/verificar
// Decide uma tentativa de acesso sem executá-la (consulta de UI)
func (ctrl *AutorizacaoController) Verificar(c *gin.Context) {
	var req dto.VerificacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dados de verificação inválidos",
			"details": map[string]interface{}{
				"code":              "INVALID_REQUEST_FORMAT",
				"validation_errors": err.Error(),
			},
		})
		return
	}

	if req.Modulo == "" || req.Acao == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Módulo e ação requeridos",
			"details": map[string]interface{}{
				"code": "MODULO_ACAO_REQUIRED",
			},
		})
		return
	}

	if !catalogo.AcaoValida(catalogo.Acao(req.Acao)) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Ação desconhecida",
			"details": map[string]interface{}{
				"code":          "ACAO_INVALID",
				"acao":          req.Acao,
				"acoes_validas": catalogo.Acoes(),
			},
		})
		return
	}

	ator, _ := sessao.FromContext(c)

	decisao, err := ctrl.autorizacaoService.Autorizar(c.Request.Context(), services.PedidoAutorizacao{
		Ator:          ator,
		Tenant:        tenant.FromContext(c),
		Modulo:        req.Modulo,
		Submodulo:     req.Submodulo,
		SubSubmodulo:  req.SubSubmodulo,
		Acao:          req.Acao,
		CongregacaoID: req.CongregacaoID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erro na verificação de acesso",
			"details": map[string]interface{}{
				"code": "AUTHORIZATION_CHECK_ERROR",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    decisao,
	})
}

// ModulosHabilitados - GET /api/v1/autorizacao/modulos
// Retorna o catálogo filtrado pelos módulos habilitados para o tenant
func (ctrl *AutorizacaoController) ModulosHabilitados(c *gin.Context) {
	tenantCtx := tenant.FromContext(c)

	config, err := ctrl.modulosService.CarregarConfigModulos(c.Request.Context(), tenantCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erro no carregamento da configuração de módulos",
			"details": map[string]interface{}{
				"code": "MODULE_CONFIG_ERROR",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"modulos": ctrl.modulosService.ModulosHabilitados(tenantCtx, config),
		},
	})
}

// MinhasCongregacoes - GET /api/v1/autorizacao/congregacoes?modulo=financeiro
// Retorna o alcance congregacional do ator para um módulo
func (ctrl *AutorizacaoController) MinhasCongregacoes(c *gin.Context) {
	modulo := c.Query("modulo")
	if modulo == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Módulo requerido",
			"details": map[string]interface{}{
				"code": "MODULO_REQUIRED",
			},
		})
		return
	}

	ator, _ := sessao.FromContext(c)
	acesso := ctrl.congregacaoService.ResolverAcesso(c.Request.Context(), ator, tenant.FromContext(c), modulo)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    acesso,
	})
}
