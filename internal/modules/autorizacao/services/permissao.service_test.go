package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/catalogo"
)

func TestTemPermissaoCorrespondenciaExata(t *testing.T) {
	s := &PermissaoService{}

	permissoes := []dto.Permissao{
		{PerfilID: "p1", Modulo: "contas-pagar", Acao: catalogo.AcaoView},
		{PerfilID: "p1", Modulo: "contas-pagar", Acao: catalogo.AcaoApprove},
		{PerfilID: "p1", Modulo: "financeiro", Submodulo: "despesas", Acao: catalogo.AcaoEdit},
		{PerfilID: "p1", Modulo: "financeiro", Submodulo: "despesas", SubSubmodulo: "categorias", Acao: catalogo.AcaoView},
	}

	// Concessões exatas
	assert.True(t, s.TemPermissao(permissoes, "contas-pagar", "", "", catalogo.AcaoApprove))
	assert.True(t, s.TemPermissao(permissoes, "financeiro", "despesas", "", catalogo.AcaoEdit))
	assert.True(t, s.TemPermissao(permissoes, "financeiro", "despesas", "categorias", catalogo.AcaoView))

	// Ação não concedida no mesmo caminho
	assert.False(t, s.TemPermissao(permissoes, "contas-pagar", "", "", catalogo.AcaoEdit))

	// Concessão no módulo pai não desce para o submódulo
	assert.False(t, s.TemPermissao(permissoes, "contas-pagar", "despesas", "", catalogo.AcaoView))

	// Concessão no submódulo não sobe para o módulo pai
	assert.False(t, s.TemPermissao(permissoes, "financeiro", "", "", catalogo.AcaoEdit))

	// Concessão no submódulo não desce para o sub-submódulo
	assert.False(t, s.TemPermissao(permissoes, "financeiro", "despesas", "categorias", catalogo.AcaoEdit))

	// Módulo sem nenhuma tupla
	assert.False(t, s.TemPermissao(permissoes, "membros", "", "", catalogo.AcaoView))
}

func TestTemPermissaoConjuntoVazio(t *testing.T) {
	s := &PermissaoService{}

	assert.False(t, s.TemPermissao(nil, "dashboard", "", "", catalogo.AcaoView))
	assert.False(t, s.TemPermissao([]dto.Permissao{}, "dashboard", "", "", catalogo.AcaoView))
}

func TestTemPermissaoUniaoDePerfis(t *testing.T) {
	s := &PermissaoService{}

	// Tuplas vindas de perfis distintos contribuem juntas para o conjunto efetivo
	permissoes := []dto.Permissao{
		{PerfilID: "perfil-a", Modulo: "membros", Acao: catalogo.AcaoView},
		{PerfilID: "perfil-b", Modulo: "eventos", Acao: catalogo.AcaoInsert},
	}

	assert.True(t, s.TemPermissao(permissoes, "membros", "", "", catalogo.AcaoView))
	assert.True(t, s.TemPermissao(permissoes, "eventos", "", "", catalogo.AcaoInsert))
}
