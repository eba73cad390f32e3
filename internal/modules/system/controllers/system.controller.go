package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestor-igrejas-core/internal/modules/system/services"
)

type SystemController struct {
	service *services.SystemService
}

func NewSystemController(service *services.SystemService) *SystemController {
	return &SystemController{
		service: service,
	}
}

// Info retorna a identidade da instância e o catálogo de módulos
// GET /api/v1/system/info
func (c *SystemController) Info(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"data": c.service.Info(),
	})
}

// Health retorna o estado das dependências de infraestrutura
// GET /health
func (c *SystemController) Health(ctx *gin.Context) {
	resposta := c.service.Health(ctx.Request.Context())

	status := http.StatusOK
	if resposta.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resposta)
}

// Ready indica se o processo aceita tráfego
// GET /ready
func (c *SystemController) Ready(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
