package dto

import (
	"time"
)

// Perfil é um conjunto nomeado de permissões, atribuível a usuários.
// Perfis de sistema (Sistema=true) são semeados na instalação e não podem
// ser alterados nem inativados.
type Perfil struct {
	ID           string    `json:"id"`
	TenantID     *string   `json:"tenant_id,omitempty"`
	Nome         string    `json:"nome"`
	Descricao    string    `json:"descricao,omitempty"`
	Sistema      bool      `json:"sistema"`
	Ativo        bool      `json:"ativo"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

// CriarPerfilRequest é o corpo de criação de perfil
type CriarPerfilRequest struct {
	Nome      string `json:"nome" binding:"required"`
	Descricao string `json:"descricao"`
}

// AtualizarPerfilRequest é o corpo de atualização de perfil
type AtualizarPerfilRequest struct {
	Nome      string `json:"nome" binding:"required"`
	Descricao string `json:"descricao"`
}

// ItemMatriz é uma célula da matriz de permissões enviada pela UI:
// um caminho de módulo com as ações marcadas
type ItemMatriz struct {
	Modulo       string   `json:"modulo" binding:"required"`
	Submodulo    string   `json:"submodulo"`
	SubSubmodulo string   `json:"sub_submodulo"`
	Acoes        []string `json:"acoes" binding:"required"`
}

// SalvarMatrizRequest é o corpo de substituição integral da matriz do perfil
type SalvarMatrizRequest struct {
	Itens []ItemMatriz `json:"itens"`
}

// AtribuirPerfilRequest é o corpo de atribuição de perfil a um usuário
type AtribuirPerfilRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
