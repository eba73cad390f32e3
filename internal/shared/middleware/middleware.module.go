package middleware

import (
	"go.uber.org/fx"

	"gestor-igrejas-core/internal/shared/middleware/autorizacao"
	"gestor-igrejas-core/internal/shared/middleware/sessao"
	"gestor-igrejas-core/internal/shared/middleware/tenant"
)

// Module agrupa os providers dos middlewares compartilhados
var Module = fx.Options(
	fx.Provide(tenant.NewTenantMiddleware),
	fx.Provide(sessao.NewSessaoMiddleware),
	fx.Provide(autorizacao.NewAutorizacaoMiddleware),
)
