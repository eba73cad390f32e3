package seeds

import "fmt"

// SeedingError representa uma falha de semeadura
type SeedingError struct {
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *SeedingError) Error() string {
	return e.Message
}

// NewSeedingError cria uma nova falha de semeadura
func NewSeedingError(message, errorType string, details map[string]interface{}) *SeedingError {
	return &SeedingError{
		Message: message,
		Type:    errorType,
		Details: details,
	}
}

// Erros predefinidos da semeadura
var (
	ErrValidation = func(message string) error {
		return NewSeedingError(message, "validation_error", nil)
	}

	ErrTableNotExists = func(tableName string) error {
		return NewSeedingError(
			fmt.Sprintf("tabela %s não existe", tableName),
			"table_not_exists",
			map[string]interface{}{"table_name": tableName},
		)
	}

	ErrDatabaseOperation = func(operation string, err error) error {
		return NewSeedingError(
			fmt.Sprintf("erro de banco de dados em %s: %v", operation, err),
			"database_error",
			map[string]interface{}{"operation": operation, "error": err.Error()},
		)
	}
)
