package app

import (
	"gestor-igrejas-core/internal/app/config"
	"gestor-igrejas-core/internal/infrastructure/logger"
	"gestor-igrejas-core/internal/shared/middleware/core"
	"gestor-igrejas-core/internal/shared/middleware/security"
	"gestor-igrejas-core/internal/shared/middleware/tenant"

	"github.com/gin-gonic/gin"
)

func NewRouter(
	cfg *config.Config,
	loggerMiddleware *logger.LoggerMiddleware,
	tenantMiddleware *tenant.TenantMiddleware,
) *gin.Engine {
	configureGinMode(cfg.Environment)

	// Router sem middlewares padrão para configuração customizada
	r := gin.New()

	// Middlewares na ordem de importância
	r.Use(loggerMiddleware.GinLogger())
	r.Use(gin.HandlerFunc(core.RecoveryMiddleware()))
	r.Use(gin.HandlerFunc(security.CORSMiddleware(cfg)))

	// Resolução de tenant aplicada globalmente (com endpoints isentos)
	r.Use(tenantMiddleware.Handler())

	// /health e /ready são registrados pelo módulo System

	return r
}

// configureGinMode configura o modo do Gin conforme o ambiente
func configureGinMode(environment string) {
	switch environment {
	case "docker":
		gin.SetMode(gin.ReleaseMode)
	case "development":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
