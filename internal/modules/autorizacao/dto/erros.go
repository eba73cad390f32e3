package dto

import "errors"

// Taxonomia de erros do núcleo de autorização/aprovação.
// policy_denied e precondition_failed são sempre recuperáveis;
// conflict pede releitura e nova tentativa; persistence é falha genérica.
const (
	ErroTipoPolicyDenied      = "policy_denied"
	ErroTipoPrecondicaoFalhou = "precondition_failed"
	ErroTipoConflito          = "conflict"
	ErroTipoValidacao         = "validation"
	ErroTipoNaoEncontrado     = "not_found"
	ErroTipoPersistencia      = "persistence"
)

// ServiceError - erro de negócio comum a todos os serviços do núcleo
type ServiceError struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewPolicyDenied(message string, details map[string]interface{}) *ServiceError {
	if details == nil {
		details = map[string]interface{}{}
	}
	return &ServiceError{
		Type:    ErroTipoPolicyDenied,
		Message: message,
		Details: details,
	}
}

// NewPrecondicaoFalhou carrega o estado atual para o chamador reagir
// corretamente (ex.: atualizar a tela)
func NewPrecondicaoFalhou(message string, estadoAtual string) *ServiceError {
	return &ServiceError{
		Type:    ErroTipoPrecondicaoFalhou,
		Message: message,
		Details: map[string]interface{}{"status_atual": estadoAtual},
	}
}

// NewConflitoTransicao indica corrida detectada na transição de status.
// Recuperável: o chamador deve reler o registro e reavaliar.
func NewConflitoTransicao(statusEsperado, statusAtual string) *ServiceError {
	return &ServiceError{
		Type:    ErroTipoConflito,
		Message: "o status do registro mudou desde a leitura",
		Details: map[string]interface{}{
			"status_esperado": statusEsperado,
			"status_atual":    statusAtual,
		},
	}
}

func NewValidacao(message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Type:    ErroTipoValidacao,
		Message: message,
		Details: details,
	}
}

func NewNaoEncontrado(message string, details map[string]interface{}) *ServiceError {
	if details == nil {
		details = map[string]interface{}{}
	}
	return &ServiceError{
		Type:    ErroTipoNaoEncontrado,
		Message: message,
		Details: details,
	}
}

// helpers de classificação

func IsConflito(err error) bool {
	return tipoDe(err) == ErroTipoConflito
}

func IsPrecondicaoFalhou(err error) bool {
	return tipoDe(err) == ErroTipoPrecondicaoFalhou
}

func IsPolicyDenied(err error) bool {
	return tipoDe(err) == ErroTipoPolicyDenied
}

func IsNaoEncontrado(err error) bool {
	return tipoDe(err) == ErroTipoNaoEncontrado
}

func tipoDe(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Type
	}
	return ""
}
