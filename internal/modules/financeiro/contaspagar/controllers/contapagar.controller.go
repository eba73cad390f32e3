package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/dto"
	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/services"
	"gestor-igrejas-core/internal/shared/middleware/sessao"
	"gestor-igrejas-core/internal/shared/middleware/tenant"
)

type ContaPagarController struct {
	contaService *services.ContaPagarService
}

// NewContaPagarController cria uma nova instância do controller de contas a pagar
func NewContaPagarController(contaService *services.ContaPagarService) *ContaPagarController {
	return &ContaPagarController{
		contaService: contaService,
	}
}

// Criar - POST /api/v1/contas-pagar
func (ctrl *ContaPagarController) Criar(c *gin.Context) {
	var req dto.CriarContaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderErroBind(c, err)
		return
	}

	ator, _ := sessao.FromContext(c)
	conta, err := ctrl.contaService.Criar(c.Request.Context(), ator, tenant.FromContext(c), req)
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    conta,
	})
}

// Listar - GET /api/v1/contas-pagar?status=&congregacao_id=
func (ctrl *ContaPagarController) Listar(c *gin.Context) {
	var filtro dto.FiltroContas
	if err := c.ShouldBindQuery(&filtro); err != nil {
		responderErroBind(c, err)
		return
	}

	ator, _ := sessao.FromContext(c)
	contas, err := ctrl.contaService.Listar(c.Request.Context(), ator, tenant.FromContext(c), filtro)
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"contas": contas},
	})
}

// Buscar - GET /api/v1/contas-pagar/:id
func (ctrl *ContaPagarController) Buscar(c *gin.Context) {
	ator, _ := sessao.FromContext(c)
	conta, err := ctrl.contaService.Buscar(c.Request.Context(), ator, tenant.FromContext(c), c.Param("id"))
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    conta,
	})
}

// Aprovar - POST /api/v1/contas-pagar/:id/aprovar
func (ctrl *ContaPagarController) Aprovar(c *gin.Context) {
	ator, _ := sessao.FromContext(c)
	conta, err := ctrl.contaService.Aprovar(c.Request.Context(), ator, tenant.FromContext(c), c.Param("id"))
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    conta,
	})
}

// Rejeitar - POST /api/v1/contas-pagar/:id/rejeitar
func (ctrl *ContaPagarController) Rejeitar(c *gin.Context) {
	ator, _ := sessao.FromContext(c)
	conta, err := ctrl.contaService.Rejeitar(c.Request.Context(), ator, tenant.FromContext(c), c.Param("id"))
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    conta,
	})
}

// MarcarPaga - POST /api/v1/contas-pagar/:id/pagar
func (ctrl *ContaPagarController) MarcarPaga(c *gin.Context) {
	ator, _ := sessao.FromContext(c)
	conta, err := ctrl.contaService.MarcarPaga(c.Request.Context(), ator, tenant.FromContext(c), c.Param("id"))
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    conta,
	})
}

// Reabrir - POST /api/v1/contas-pagar/:id/reabrir
// Reapresenta uma conta rejeitada como registro novo vinculado ao original
func (ctrl *ContaPagarController) Reabrir(c *gin.Context) {
	var req dto.ReabrirContaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderErroBind(c, err)
		return
	}

	ator, _ := sessao.FromContext(c)
	conta, err := ctrl.contaService.Reabrir(c.Request.Context(), ator, tenant.FromContext(c), c.Param("id"), req)
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    conta,
	})
}

func responderErroBind(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Dados da requisição inválidos",
		"details": map[string]interface{}{
			"code":              "INVALID_REQUEST_FORMAT",
			"validation_errors": err.Error(),
		},
	})
}

// responderErroServico mapeia a taxonomia de erros do núcleo para HTTP.
// Conflito de transição sai como 409 — o cliente relê e tenta de novo.
func responderErroServico(c *gin.Context, err error) {
	var svcErr *autzdto.ServiceError
	if errors.As(err, &svcErr) {
		var status int
		switch svcErr.Type {
		case autzdto.ErroTipoValidacao:
			status = http.StatusBadRequest
		case autzdto.ErroTipoNaoEncontrado:
			status = http.StatusNotFound
		case autzdto.ErroTipoPolicyDenied:
			status = 465
		case autzdto.ErroTipoPrecondicaoFalhou:
			status = http.StatusPreconditionFailed
		case autzdto.ErroTipoConflito:
			status = http.StatusConflict
		default:
			status = http.StatusInternalServerError
		}

		c.JSON(status, gin.H{
			"error":   svcErr.Message,
			"details": svcErr.Details,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Erro interno",
		"details": map[string]interface{}{
			"code": "INTERNAL_ERROR",
		},
	})
}
