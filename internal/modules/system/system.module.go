package system

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"gestor-igrejas-core/internal/modules/system/controllers"
	"gestor-igrejas-core/internal/modules/system/services"
)

// Module reúne os providers do domínio System
var Module = fx.Options(
	fx.Provide(services.NewSystemService),
	fx.Provide(controllers.NewSystemController),
	fx.Invoke(RegisterSystemRoutes),
)

// RegisterSystemRoutes configura as rotas Gin do domínio System.
// Todas dispensam resolução de tenant: servem descoberta e probes.
func RegisterSystemRoutes(r *gin.Engine, ctrl *controllers.SystemController) {
	r.GET("/health", ctrl.Health)
	r.GET("/ready", ctrl.Ready)

	api := r.Group("/api/v1/system")
	{
		// Identidade da instância + catálogo de módulos compilado
		api.GET("/info", ctrl.Info)
	}
}
