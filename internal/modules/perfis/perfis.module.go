package perfis

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"gestor-igrejas-core/internal/modules/perfis/controllers"
	"gestor-igrejas-core/internal/modules/perfis/services"
	autzMiddleware "gestor-igrejas-core/internal/shared/middleware/autorizacao"
	sessaoMiddleware "gestor-igrejas-core/internal/shared/middleware/sessao"
)

// Module agrupa todos os providers do domínio Perfis
var Module = fx.Options(
	fx.Provide(services.NewPerfilService),
	fx.Provide(controllers.NewPerfilController),
	fx.Invoke(RegisterPerfisRoutes),
)

// RegisterPerfisRoutes configura as rotas Gin da gestão de perfis.
// Toda a gestão vive sob o módulo configuracoes do catálogo.
func RegisterPerfisRoutes(
	r *gin.Engine,
	ctrl *controllers.PerfilController,
	sessao *sessaoMiddleware.SessaoMiddleware,
	guard *autzMiddleware.AutorizacaoMiddleware,
) {
	api := r.Group("/api/v1/perfis")
	api.Use(sessao.Handler())
	{
		api.GET("", guard.RequireModulo("configuracoes", "view"), ctrl.Listar)
		api.GET("/:id", guard.RequireModulo("configuracoes", "view"), ctrl.Buscar)
		api.POST("", guard.RequireModulo("configuracoes", "insert"), ctrl.Criar)
		api.PUT("/:id", guard.RequireModulo("configuracoes", "edit"), ctrl.Atualizar)
		api.DELETE("/:id", guard.RequireModulo("configuracoes", "inactivate"), ctrl.Inativar)

		api.GET("/:id/matriz", guard.RequireModulo("configuracoes", "view"), ctrl.Matriz)
		api.PUT("/:id/matriz", guard.RequireModulo("configuracoes", "edit"), ctrl.SalvarMatriz)

		api.POST("/:id/usuarios", guard.RequireModulo("configuracoes", "edit"), ctrl.Atribuir)
		api.DELETE("/:id/usuarios/:userId", guard.RequireModulo("configuracoes", "edit"), ctrl.Revogar)
	}
}
