package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gestor-igrejas-core/internal/app/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Application encapsula o servidor HTTP e sua configuração
type Application struct {
	config *config.Config
	router *gin.Engine
	server *http.Server
}

// NewApplication cria uma nova instância da aplicação
func NewApplication(cfg *config.Config, router *gin.Engine) *Application {
	return &Application{
		config: cfg,
		router: router,
	}
}

// Start inicia a aplicação via lifecycle Fx
func (a *Application) Start(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverConfig := a.config.GetServer()

			a.server = &http.Server{
				Addr:         fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
				Handler:      a.router,
				ReadTimeout:  serverConfig.ReadTimeout,
				WriteTimeout: serverConfig.WriteTimeout,
			}

			// Servidor em goroutine própria
			go func() {
				fmt.Printf("[SERVER] 🚀 Iniciando servidor HTTP em %s:%d\n", serverConfig.Host, serverConfig.Port)
				if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					fmt.Printf("[SERVER] ❌ Falha ao iniciar servidor: %v\n", err)
				}
			}()

			fmt.Printf("[SERVER] ✅ Servidor HTTP inicializado (env: %s)\n", a.config.Environment)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			fmt.Printf("[SERVER] 🛑 Encerrando servidor HTTP\n")

			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := a.server.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("[SERVER] ⚠️ Encerramento forçado: %v\n", err)
				return err
			}

			fmt.Printf("[SERVER] ✅ Servidor encerrado corretamente\n")
			return nil
		},
	})
}

// GetConfig retorna a configuração para acesso externo
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// IsDocker indica se a aplicação está em modo docker (produção/homologação)
func (a *Application) IsDocker() bool {
	return a.config.Environment == "docker"
}

// IsDevelopment indica se a aplicação está em modo desenvolvimento
func (a *Application) IsDevelopment() bool {
	return a.config.Environment == "development"
}
