package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gestor-igrejas-core/internal/modules/catalogo"
)

func TestChavePermissao(t *testing.T) {
	assert.Equal(t, "contas-pagar::approve",
		ChavePermissao("contas-pagar", "", "", catalogo.AcaoApprove))
	assert.Equal(t, "financeiro::despesas::view",
		ChavePermissao("financeiro", "despesas", "", catalogo.AcaoView))
	assert.Equal(t, "financeiro::despesas::categorias::edit",
		ChavePermissao("financeiro", "despesas", "categorias", catalogo.AcaoEdit))
}

func TestChaveComposta(t *testing.T) {
	p := Permissao{
		Modulo:    "membros",
		Submodulo: "cadastro",
		Acao:      catalogo.AcaoInsert,
	}
	assert.Equal(t, "membros::cadastro::insert", p.ChaveComposta())
	assert.Equal(t, []string{"cadastro"}, p.CaminhoSubmodulo())

	raiz := Permissao{Modulo: "dashboard", Acao: catalogo.AcaoView}
	assert.Equal(t, "dashboard::view", raiz.ChaveComposta())
	assert.Empty(t, raiz.CaminhoSubmodulo())
}

func TestCodigoCache(t *testing.T) {
	assert.Equal(t, "default", CodigoCache(nil))
	assert.Equal(t, "default", CodigoCache(&TenantContext{}))
	assert.Equal(t, "igreja-central", CodigoCache(&TenantContext{Codigo: "igreja-central"}))
}
