package dto

import (
	"time"
)

// Status é o estado de uma conta a pagar na cadeia de aprovação.
// Os valores são os tokens persistidos.
type Status string

const (
	StatusPendenteGerencia    Status = "pending_management"
	StatusPendenteDiretoria   Status = "pending_director"
	StatusPendentePresidencia Status = "pending_president"
	StatusAprovada            Status = "approved"
	StatusPaga                Status = "paid"
	StatusRejeitada           Status = "rejected"
)

// Pendente informa se o status aguarda alguma alçada de aprovação
func (s Status) Pendente() bool {
	switch s {
	case StatusPendenteGerencia, StatusPendenteDiretoria, StatusPendentePresidencia:
		return true
	}
	return false
}

// Terminal informa se o status encerra a cadeia de aprovação
func (s Status) Terminal() bool {
	return s == StatusPaga || s == StatusRejeitada
}

// NivelAprovacao é a alçada exigida por um status pendente.
// Enumeração explícita — a relação papel -> alçadas é uma tabela única
// inspecionável, sem comparações de strings espalhadas.
type NivelAprovacao string

const (
	NivelGerencia    NivelAprovacao = "management"
	NivelDiretoria   NivelAprovacao = "director"
	NivelPresidencia NivelAprovacao = "president"
)

// ContaPagar é o registro de despesa sujeito à cadeia de aprovação.
// Criado em pending_management; mutado somente pelo motor de aprovação.
type ContaPagar struct {
	ID            string     `json:"id"`
	TenantID      *string    `json:"tenant_id,omitempty"`
	CongregacaoID string     `json:"congregacao_id"`
	Descricao     string     `json:"descricao"`
	Valor         float64    `json:"valor"`
	Status        Status     `json:"status"`
	CriadoPor     string     `json:"criado_por"`
	AprovadoPor   *string    `json:"aprovado_por,omitempty"`
	AprovadoEm    *time.Time `json:"aprovado_em,omitempty"`
	PagoEm        *time.Time `json:"pago_em,omitempty"`
	// ReabertaDeID referencia a conta rejeitada que originou esta.
	// Rejeição é terminal: reapresentar = criar um novo registro.
	ReabertaDeID *string   `json:"reaberta_de_id,omitempty"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

// CriarContaRequest é o corpo de criação de conta a pagar
type CriarContaRequest struct {
	CongregacaoID string  `json:"congregacao_id" binding:"required"`
	Descricao     string  `json:"descricao" binding:"required"`
	Valor         float64 `json:"valor" binding:"required,gt=0"`
}

// ReabrirContaRequest é o corpo de reapresentação de conta rejeitada
type ReabrirContaRequest struct {
	Descricao string  `json:"descricao"`
	Valor     float64 `json:"valor"`
}

// FiltroContas são os filtros opcionais da listagem
type FiltroContas struct {
	Status        Status `form:"status"`
	CongregacaoID string `form:"congregacao_id"`
}
