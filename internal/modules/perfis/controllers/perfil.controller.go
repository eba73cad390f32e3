package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/perfis/dto"
	"gestor-igrejas-core/internal/modules/perfis/services"
	"gestor-igrejas-core/internal/shared/middleware/tenant"
)

type PerfilController struct {
	perfilService *services.PerfilService
}

// NewPerfilController cria uma nova instância do controller de perfis
func NewPerfilController(perfilService *services.PerfilService) *PerfilController {
	return &PerfilController{
		perfilService: perfilService,
	}
}

// Listar - GET /api/v1/perfis
func (ctrl *PerfilController) Listar(c *gin.Context) {
	perfis, err := ctrl.perfilService.ListarPerfis(c.Request.Context(), tenant.FromContext(c))
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"perfis": perfis},
	})
}

// Buscar - GET /api/v1/perfis/:id
func (ctrl *PerfilController) Buscar(c *gin.Context) {
	perfil, err := ctrl.perfilService.BuscarPerfil(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    perfil,
	})
}

// Criar - POST /api/v1/perfis
func (ctrl *PerfilController) Criar(c *gin.Context) {
	var req dto.CriarPerfilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderErroBind(c, err)
		return
	}

	perfil, err := ctrl.perfilService.CriarPerfil(c.Request.Context(), tenant.FromContext(c), req)
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    perfil,
	})
}

// Atualizar - PUT /api/v1/perfis/:id
func (ctrl *PerfilController) Atualizar(c *gin.Context) {
	var req dto.AtualizarPerfilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderErroBind(c, err)
		return
	}

	perfil, err := ctrl.perfilService.AtualizarPerfil(c.Request.Context(), tenant.FromContext(c), c.Param("id"), req)
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    perfil,
	})
}

// Inativar - DELETE /api/v1/perfis/:id
// Inativação lógica — o registro permanece para histórico e auditoria
func (ctrl *PerfilController) Inativar(c *gin.Context) {
	if err := ctrl.perfilService.InativarPerfil(c.Request.Context(), tenant.FromContext(c), c.Param("id")); err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Perfil inativado",
	})
}

// Matriz - GET /api/v1/perfis/:id/matriz
func (ctrl *PerfilController) Matriz(c *gin.Context) {
	permissoes, err := ctrl.perfilService.MatrizDoPerfil(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"permissoes": permissoes},
	})
}

// SalvarMatriz - PUT /api/v1/perfis/:id/matriz
// Substituição integral: a matriz enviada vira o novo conjunto do perfil
func (ctrl *PerfilController) SalvarMatriz(c *gin.Context) {
	var req dto.SalvarMatrizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderErroBind(c, err)
		return
	}

	if err := ctrl.perfilService.SalvarMatriz(c.Request.Context(), tenant.FromContext(c), c.Param("id"), req); err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Matriz de permissões atualizada",
	})
}

// Atribuir - POST /api/v1/perfis/:id/usuarios
func (ctrl *PerfilController) Atribuir(c *gin.Context) {
	var req dto.AtribuirPerfilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responderErroBind(c, err)
		return
	}

	if err := ctrl.perfilService.AtribuirPerfil(c.Request.Context(), tenant.FromContext(c), c.Param("id"), req.UserID); err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Perfil atribuído",
	})
}

// Revogar - DELETE /api/v1/perfis/:id/usuarios/:userId
func (ctrl *PerfilController) Revogar(c *gin.Context) {
	if err := ctrl.perfilService.RevogarPerfil(c.Request.Context(), tenant.FromContext(c), c.Param("id"), c.Param("userId")); err != nil {
		responderErroServico(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Perfil revogado",
	})
}

// responderErroBind responde erro de parsing/validação do corpo
func responderErroBind(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Dados da requisição inválidos",
		"details": map[string]interface{}{
			"code":              "INVALID_REQUEST_FORMAT",
			"validation_errors": err.Error(),
		},
	})
}

// responderErroServico mapeia a taxonomia de erros do núcleo para HTTP
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
