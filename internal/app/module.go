package app

import (
	"gestor-igrejas-core/internal/app/bootstrap"
	"gestor-igrejas-core/internal/app/config"
	"gestor-igrejas-core/internal/infrastructure/database"
	"gestor-igrejas-core/internal/infrastructure/logger"
	"gestor-igrejas-core/internal/modules/autorizacao"
	contaspagar "gestor-igrejas-core/internal/modules/financeiro/contaspagar"
	"gestor-igrejas-core/internal/modules/perfis"
	"gestor-igrejas-core/internal/modules/system"
	"gestor-igrejas-core/internal/modules/tenants"
	"gestor-igrejas-core/internal/shared/middleware"

	"go.uber.org/fx"
)

var AppModule = fx.Options(
	// Configuração (deve ser fornecida primeiro)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),

	// Infraestrutura
	database.Module,
	logger.Module,

	// Middlewares compartilhados (após infraestrutura, antes dos módulos de domínio)
	middleware.Module,

	// Módulos de domínio
	autorizacao.Module,
	perfis.Module,
	tenants.Module,
	contaspagar.Module,
	system.Module,

	// Bootstrap (extensões + seeding do catálogo)
	fx.Provide(bootstrap.NewBootstrapSystem),

	// Router
	fx.Provide(NewRouter),

	// Aplicação
	fx.Provide(NewApplication),

	// Lifecycle
	fx.Invoke(bootstrap.RegisterBootstrapLifecycle),
	fx.Invoke((*Application).Start),
)
