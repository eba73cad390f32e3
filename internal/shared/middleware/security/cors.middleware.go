package security

import (
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gestor-igrejas-core/internal/app/config"
)

// CORSHandler tipo específico para o Fx
type CORSHandler gin.HandlerFunc

// CORSMiddleware configura as regras CORS para multi-tenant
func CORSMiddleware(appConfig *config.Config) CORSHandler {
	corsConfig := appConfig.CORS

	return CORSHandler(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			// 1. Autorizar os subdomínios *.gestorigrejas.com.br e dev local
			allowedPattern := regexp.MustCompile(
				`^https?://([a-zA-Z0-9-]+\.)?(gestorigrejas\.com\.br|localhost:(3000|3001|8080))$`,
			)

			if allowedPattern.MatchString(origin) {
				return true
			}

			// 2. Verificar os origins configurados no ambiente
			for _, allowedOrigin := range corsConfig.AllowedOrigins {
				if origin == allowedOrigin {
					return true
				}
			}

			return false
		},

		AllowMethods: corsConfig.AllowedMethods,

		// Headers autorizados (inclui os headers multi-tenant)
		AllowHeaders: append(corsConfig.AllowedHeaders,
			"X-Tenant-Code",
			"X-User-Id",
			"X-User-Papel",
			"X-Request-Id"),

		ExposeHeaders: []string{
			"Content-Length",
			"X-Request-Id",
		},

		AllowCredentials: corsConfig.AllowCredentials,

		// Cache da resposta preflight
		MaxAge: time.Duration(corsConfig.MaxAge) * time.Second,
	}))
}
