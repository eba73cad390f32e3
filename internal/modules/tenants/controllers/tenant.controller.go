package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/autorizacao/services"
	"gestor-igrejas-core/internal/shared/middleware/tenant"
)

type TenantController struct {
	modulosService *services.ModulosTenantService
}

// NewTenantController cria uma nova instância do controller de tenants
func NewTenantController(modulosService *services.ModulosTenantService) *TenantController {
	return &TenantController{
		modulosService: modulosService,
	}
}

// Atual - GET /api/v1/tenants/atual
// Retorna o contexto do tenant corrente e seus módulos habilitados
func (ctrl *TenantController) Atual(c *gin.Context) {
	tenantCtx := tenant.FromContext(c)

	config, err := ctrl.modulosService.CarregarConfigModulos(c.Request.Context(), tenantCtx)
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"tenant":  tenantCtx,
			"modulos": ctrl.modulosService.ModulosHabilitados(tenantCtx, config),
		},
	})
}

// Modulos - GET /api/v1/tenants/atual/modulos
// Retorna a configuração explícita e a visão efetiva (habilitados e
// desabilitados) para a tela de administração
func (ctrl *TenantController) Modulos(c *gin.Context) {
	tenantCtx := tenant.FromContext(c)

	config, err := ctrl.modulosService.CarregarConfigModulos(c.Request.Context(), tenantCtx)
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"configuracao":  config,
			"habilitados":   ctrl.modulosService.ModulosHabilitados(tenantCtx, config),
			"desabilitados": ctrl.modulosService.ModulosDesabilitados(tenantCtx, config),
		},
	})
}

// AtualizarModulos - PUT /api/v1/tenants/atual/modulos
// Substitui a configuração de habilitação. Módulos de núcleo não podem ser
// desligados — o serviço normaliza a tentativa.
func (ctrl *TenantController) AtualizarModulos(c *gin.Context) {
	tenantCtx := tenant.FromContext(c)
	if tenantCtx == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Configuração de módulos exige contexto de tenant",
			"details": map[string]interface{}{
				"code": "TENANT_CONTEXT_REQUIRED",
			},
		})
		return
	}

	var config autzdto.ConfigModulos
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Configuração de módulos inválida",
			"details": map[string]interface{}{
				"code":              "INVALID_REQUEST_FORMAT",
				"validation_errors": err.Error(),
			},
		})
		return
	}

	if err := ctrl.modulosService.SalvarConfigModulos(c.Request.Context(), tenantCtx, config); err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Configuração de módulos atualizada",
	})
}

func (ctrl *TenantController) responderErro(c *gin.Context, err error) {
	var svcErr *autzdto.ServiceError
	if errors.As(err, &svcErr) && svcErr.Type == autzdto.ErroTipoValidacao {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   svcErr.Message,
			"details": svcErr.Details,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Erro interno na gestão do tenant",
		"details": map[string]interface{}{
			"code": "INTERNAL_ERROR",
		},
	})
}
