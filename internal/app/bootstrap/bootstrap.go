package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"gestor-igrejas-core/internal/app/config"
	"gestor-igrejas-core/internal/infrastructure/database/postgres"
)

// BootstrapSystem orquestra o processo de inicialização:
// duas fases sequenciais — extensões PostgreSQL e semeadura de dados
type BootstrapSystem struct {
	extensionManager *ExtensionManager
	seedingManager   *SeedingManager
	config           *config.Config
	timeout          time.Duration
}

// BootstrapResult contém o resultado da execução do bootstrap
type BootstrapResult struct {
	Success        bool          `json:"success"`
	TotalDuration  time.Duration `json:"total_duration"`
	PhasesExecuted []PhaseResult `json:"phases_executed"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// PhaseResult contém o resultado de uma fase do bootstrap
type PhaseResult struct {
	Phase       string        `json:"phase"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

// NewBootstrapSystem cria uma nova instância do sistema de bootstrap
func NewBootstrapSystem(pgClient *postgres.Client, cfg *config.Config) *BootstrapSystem {
	return &BootstrapSystem{
		extensionManager: NewExtensionManager(pgClient),
		seedingManager:   NewSeedingManager(pgClient, cfg),
		config:           cfg,
		timeout:          2 * time.Minute,
	}
}

// Execute roda o processo de bootstrap completo
func (bs *BootstrapSystem) Execute() (*BootstrapResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), bs.timeout)
	defer cancel()

	fmt.Printf("[BOOTSTRAP] Início do bootstrap (timeout: %v)\n", bs.timeout)

	result := &BootstrapResult{
		Success:        true,
		PhasesExecuted: []PhaseResult{},
	}

	// Fase 0: Extensões PostgreSQL
	fase0 := bs.executarFase(ctx, "Fase 0: Extensões PostgreSQL", func(ctx context.Context) error {
		return bs.extensionManager.EnsureRequiredExtensions(ctx)
	})
	result.PhasesExecuted = append(result.PhasesExecuted, fase0)
	if !fase0.Success {
		result.Success = false
		result.ErrorMessage = fmt.Sprintf("Fase 0 falhou: %s", fase0.Error)
		return bs.finalizar(result, startTime), fmt.Errorf("bootstrap interrompido na fase 0: %s", fase0.Error)
	}

	// Fase 1: Semeadura de dados
	fase1 := bs.executarFase(ctx, "Fase 1: Semeadura de dados", func(ctx context.Context) error {
		status, err := bs.seedingManager.CheckSeedDataExists(ctx)
		if err != nil {
			return err
		}
		return bs.seedingManager.ApplySeeding(ctx, status)
	})
	result.PhasesExecuted = append(result.PhasesExecuted, fase1)
	if !fase1.Success {
		result.Success = false
		result.ErrorMessage = fmt.Sprintf("Fase 1 falhou: %s", fase1.Error)
		return bs.finalizar(result, startTime), fmt.Errorf("bootstrap interrompido na fase 1: %s", fase1.Error)
	}

	result = bs.finalizar(result, startTime)
	fmt.Printf("[BOOTSTRAP] ✅ Bootstrap concluído em %v\n", result.TotalDuration)
	fmt.Printf("[BOOTSTRAP] 🎯 Aplicação pronta para o servidor HTTP\n")

	return result, nil
}

// executarFase roda uma fase e mede o resultado
func (bs *BootstrapSystem) executarFase(ctx context.Context, phase string, fn func(context.Context) error) PhaseResult {
	startTime := time.Now()
	fmt.Printf("[BOOTSTRAP] 🔧 Início %s\n", phase)

	err := fn(ctx)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Printf("[BOOTSTRAP] ❌ %s falhou em %v: %v\n", phase, duration, err)
		return PhaseResult{
			Phase:    phase,
			Success:  false,
			Duration: duration,
			Error:    err.Error(),
		}
	}

	fmt.Printf("[BOOTSTRAP] ✅ %s concluída em %v\n", phase, duration)
	return PhaseResult{
		Phase:    phase,
		Success:  true,
		Duration: duration,
	}
}

// finalizar fecha o resultado com a duração total
func (bs *BootstrapSystem) finalizar(result *BootstrapResult, startTime time.Time) *BootstrapResult {
	result.TotalDuration = time.Since(startTime)
	return result
}

// RegisterBootstrapLifecycle registra o bootstrap no ciclo de vida Fx:
// roda no OnStart, antes do servidor HTTP aceitar conexões
func RegisterBootstrapLifecycle(lc fx.Lifecycle, bs *BootstrapSystem) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := bs.Execute()
			return err
		},
	})
}
