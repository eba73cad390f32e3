package dto

import (
	"strings"

	"gestor-igrejas-core/internal/modules/catalogo"
)

// Papel é o papel grosso do usuário, usado para escopo por congregação e
// níveis de aprovação. Não participa da matriz de permissões.
// Os valores são os tokens persistidos.
type Papel string

const (
	PapelSuperadmin Papel = "superadmin"
	PapelAdmin      Papel = "admin"
	PapelFinance    Papel = "finance"
	PapelPastor     Papel = "pastor"
	PapelWorker     Papel = "worker"
	PapelGerente    Papel = "gerente"
	PapelDiretor    Papel = "diretor"
	PapelPresidente Papel = "presidente"
)

// SeparadorChave separa os segmentos da chave composta de permissão
const SeparadorChave = "::"

// Permissao é uma concessão explícita: uma ação sobre um caminho de módulo
// para um perfil. A ausência da tupla significa negação (default-deny).
type Permissao struct {
	PerfilID     string        `json:"perfil_id"`
	Modulo       string        `json:"modulo"`
	Submodulo    string        `json:"submodulo,omitempty"`
	SubSubmodulo string        `json:"sub_submodulo,omitempty"`
	Acao         catalogo.Acao `json:"acao"`
}

// ChaveComposta monta a chave exata da tupla: segmentos presentes do caminho
// unidos pelo separador, com a ação por último.
// Ex.: "contas-pagar::approve", "financeiro::despesas::categorias::edit"
func (p Permissao) ChaveComposta() string {
	return ChavePermissao(p.Modulo, p.Submodulo, p.SubSubmodulo, p.Acao)
}

// ChavePermissao monta a chave composta a partir dos segmentos soltos
func ChavePermissao(modulo, submodulo, subSubmodulo string, acao catalogo.Acao) string {
	segmentos := make([]string, 0, 4)
	segmentos = append(segmentos, modulo)
	if submodulo != "" {
		segmentos = append(segmentos, submodulo)
	}
	if subSubmodulo != "" {
		segmentos = append(segmentos, subSubmodulo)
	}
	segmentos = append(segmentos, string(acao))
	return strings.Join(segmentos, SeparadorChave)
}

// CaminhoSubmodulo retorna o caminho de submódulos presente na tupla
func (p Permissao) CaminhoSubmodulo() []string {
	caminho := []string{}
	if p.Submodulo != "" {
		caminho = append(caminho, p.Submodulo)
	}
	if p.SubSubmodulo != "" {
		caminho = append(caminho, p.SubSubmodulo)
	}
	return caminho
}

// Ator identifica quem solicita a ação. Sempre passado explicitamente —
// a fachada não lê estado ambiente.
type Ator struct {
	UserID string `json:"user_id"`
	Papel  Papel  `json:"papel"`
}

// TenantContext identifica o tenant da requisição.
// Nil em instalações de organização única (sem gating por tenant).
type TenantContext struct {
	ID     string         `json:"id"`
	Codigo string         `json:"codigo"`
	Plano  catalogo.Plano `json:"plano"`
	Ativo  bool           `json:"ativo"`
}

// CodigoCache resolve o código de tenant usado nas chaves de cache.
// "default" em instalações de organização única.
func CodigoCache(t *TenantContext) string {
	if t == nil || t.Codigo == "" {
		return "default"
	}
	return t.Codigo
}

// ConfigModulos é o mapa de habilitação de módulos do tenant.
// Chave ausente => cai no padrão do plano.
type ConfigModulos map[string]bool

// CaminhoModulo é o caminho consultado em uma decisão de autorização
type CaminhoModulo struct {
	Modulo       string `json:"modulo"`
	Submodulo    string `json:"submodulo,omitempty"`
	SubSubmodulo string `json:"sub_submodulo,omitempty"`
}

// VerificacaoRequest é o corpo da consulta de autorização exposta à UI
type VerificacaoRequest struct {
	Modulo        string `json:"modulo" binding:"required"`
	Submodulo     string `json:"submodulo"`
	SubSubmodulo  string `json:"sub_submodulo"`
	Acao          string `json:"acao" binding:"required"`
	CongregacaoID string `json:"congregacao_id"`
}

// Motivos de negação — tokens estáveis expostos ao chamador
const (
	MotivoModuloDesabilitado = "module_disabled"
	MotivoSemPermissao       = "no_grant"
	MotivoEscopoCongregacao  = "congregation_scope"
	MotivoNivelInsuficiente  = "insufficient_level"
	MotivoNaoAprovada        = "not_approved"
)

// Decisao é o resultado de uma verificação de autorização
type Decisao struct {
	Permitido bool   `json:"permitido"`
	Motivo    string `json:"motivo,omitempty"`
}

func Permitir() Decisao {
	return Decisao{Permitido: true}
}

func Negar(motivo string) Decisao {
	return Decisao{Permitido: false, Motivo: motivo}
}

// Congregacao é a visão da congregação usada pelo filtro de acesso
type Congregacao struct {
	ID                   string   `json:"id"`
	Nome                 string   `json:"nome"`
	PastoresResponsaveis []string `json:"pastores_responsaveis"`
	Ativa                bool     `json:"ativa"`
}

// AcessoCongregacoes é o resultado da resolução de escopo por congregação.
// Lista vazia com TemAcesso=true sinaliza acesso irrestrito (sem escopo).
type AcessoCongregacoes struct {
	TemAcesso    bool          `json:"tem_acesso"`
	Congregacoes []Congregacao `json:"congregacoes"`
}

// Consulta é o esqueleto de uma consulta escopável por congregação.
// Vazia=true curto-circuita para resultado vazio — nunca para "todos".
type Consulta struct {
	Where []string      `json:"-"`
	Args  []interface{} `json:"-"`
	Vazia bool          `json:"-"`
}
