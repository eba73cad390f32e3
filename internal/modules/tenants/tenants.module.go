package tenants

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"gestor-igrejas-core/internal/modules/tenants/controllers"
	autzMiddleware "gestor-igrejas-core/internal/shared/middleware/autorizacao"
	sessaoMiddleware "gestor-igrejas-core/internal/shared/middleware/sessao"
)

// Module agrupa todos os providers do domínio Tenants
var Module = fx.Options(
	fx.Provide(controllers.NewTenantController),
	fx.Invoke(RegisterTenantsRoutes),
)

// RegisterTenantsRoutes configura as rotas Gin da administração do tenant
func RegisterTenantsRoutes(
	r *gin.Engine,
	ctrl *controllers.TenantController,
	sessao *sessaoMiddleware.SessaoMiddleware,
	guard *autzMiddleware.AutorizacaoMiddleware,
) {
	api := r.Group("/api/v1/tenants")
	api.Use(sessao.Handler())
	{
		api.GET("/atual", guard.RequireModulo("configuracoes", "view"), ctrl.Atual)
		api.GET("/atual/modulos", guard.RequireModulo("configuracoes", "view"), ctrl.Modulos)
		api.PUT("/atual/modulos", guard.RequireModulo("configuracoes", "edit"), ctrl.AtualizarModulos)
	}
}
