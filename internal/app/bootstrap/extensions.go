package bootstrap

import (
	"context"
	"fmt"

	"gestor-igrejas-core/internal/infrastructure/database/postgres"
)

// ExtensionManager garante as extensões PostgreSQL requeridas:
// pgcrypto (gen_random_uuid) e pg_trgm (busca por similaridade)
type ExtensionManager struct {
	pgClient *postgres.Client
}

// NewExtensionManager cria uma nova instância do gerenciador de extensões
func NewExtensionManager(pgClient *postgres.Client) *ExtensionManager {
	return &ExtensionManager{
		pgClient: pgClient,
	}
}

// EnsureRequiredExtensions cria todas as extensões requeridas
func (em *ExtensionManager) EnsureRequiredExtensions(ctx context.Context) error {
	fmt.Printf("[EXTENSIONS] Verificação das extensões PostgreSQL requeridas\n")

	for _, ext := range []string{"pgcrypto", "pg_trgm"} {
		if err := em.ensureExtension(ctx, ext); err != nil {
			return fmt.Errorf("falha na extensão %s: %w", ext, err)
		}
	}

	fmt.Printf("[EXTENSIONS] ✅ Todas as extensões requeridas estão instaladas\n")
	return nil
}

// ensureExtension cria uma extensão específica se não existir
func (em *ExtensionManager) ensureExtension(ctx context.Context, extensionName string) error {
	exists, err := em.checkExtensionExists(ctx, extensionName)
	if err != nil {
		return fmt.Errorf("erro na verificação da extensão %s: %w", extensionName, err)
	}

	if exists {
		fmt.Printf("[EXTENSIONS] ✅ Extensão %s já instalada\n", extensionName)
		return nil
	}

	fmt.Printf("[EXTENSIONS] 🔧 Criação da extensão %s...\n", extensionName)

	query := fmt.Sprintf(`CREATE EXTENSION IF NOT EXISTS "%s"`, extensionName)
	if _, err := em.pgClient.Pool().Exec(ctx, query); err != nil {
		return fmt.Errorf("erro na criação da extensão %s: %w", extensionName, err)
	}

	fmt.Printf("[EXTENSIONS] ✅ Extensão %s criada\n", extensionName)
	return nil
}

// checkExtensionExists verifica se uma extensão PostgreSQL existe
func (em *ExtensionManager) checkExtensionExists(ctx context.Context, extensionName string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM pg_extension
			WHERE extname = $1
		)
	`

	var exists bool
	err := em.pgClient.Pool().QueryRow(ctx, query, extensionName).Scan(&exists)
	return exists, err
}
