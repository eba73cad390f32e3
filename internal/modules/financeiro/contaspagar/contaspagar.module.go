package contaspagar

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/controllers"
	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/services"
	sessaoMiddleware "gestor-igrejas-core/internal/shared/middleware/sessao"
)

// Module agrupa todos os providers do domínio Contas a Pagar
var Module = fx.Options(
	fx.Provide(services.NewContaPagarStorePG),
	fx.Provide(services.NewContaPagarService),
	fx.Provide(controllers.NewContaPagarController),
	fx.Invoke(RegisterContasPagarRoutes),
)

// RegisterContasPagarRoutes configura as rotas Gin das contas a pagar.
// O gate de permissão fica no serviço (fachada), não na rota — a decisão
// depende do registro e do papel, não só do caminho.
func RegisterContasPagarRoutes(
	r *gin.Engine,
	ctrl *controllers.ContaPagarController,
	sessao *sessaoMiddleware.SessaoMiddleware,
) {
	api := r.Group("/api/v1/contas-pagar")
	api.Use(sessao.Handler())
	{
		api.POST("", ctrl.Criar)
		api.GET("", ctrl.Listar)
		api.GET("/:id", ctrl.Buscar)

		api.POST("/:id/aprovar", ctrl.Aprovar)
		api.POST("/:id/rejeitar", ctrl.Rejeitar)
		api.POST("/:id/pagar", ctrl.MarcarPaga)
		api.POST("/:id/reabrir", ctrl.Reabrir)
	}
}
