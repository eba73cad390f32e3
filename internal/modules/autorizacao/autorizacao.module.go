package autorizacao

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"gestor-igrejas-core/internal/modules/autorizacao/controllers"
	"gestor-igrejas-core/internal/modules/autorizacao/services"
	sessaoMiddleware "gestor-igrejas-core/internal/shared/middleware/sessao"
)

// Module agrupa todos os providers do domínio Autorização
var Module = fx.Options(
	// Services (usam queries diretamente)
	fx.Provide(services.NewPermissaoService),
	fx.Provide(services.NewModulosTenantService),
	fx.Provide(services.NewCongregacaoLookupPG),
	fx.Provide(services.NewCongregacaoService),
	fx.Provide(services.NewAutorizacaoService),

	// Controllers
	fx.Provide(controllers.NewAutorizacaoController),

	// Configuração das rotas
	fx.Invoke(RegisterAutorizacaoRoutes),
)

// RegisterAutorizacaoRoutes configura as rotas Gin da autorização
func RegisterAutorizacaoRoutes(
	r *gin.Engine,
	ctrl *controllers.AutorizacaoController,
	sessao *sessaoMiddleware.SessaoMiddleware,
) {
	// Todas as rotas exigem ator identificado (TenantMiddleware é global)
	api := r.Group("/api/v1/autorizacao")
	api.Use(sessao.Handler())
	{
		api.GET("/permissoes", ctrl.MinhasPermissoes)
		api.POST("/verificar", ctrl.Verificar)
		api.GET("/modulos", ctrl.ModulosHabilitados)
		api.GET("/congregacoes", ctrl.MinhasCongregacoes)
	}
}
