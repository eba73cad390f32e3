package catalogo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcaoValida(t *testing.T) {
	for _, acao := range Acoes() {
		assert.True(t, AcaoValida(acao), "ação %s deveria ser válida", acao)
	}

	assert.False(t, AcaoValida("delete"))
	assert.False(t, AcaoValida(""))
	assert.False(t, AcaoValida("View"))
}

func TestBuscarModulo(t *testing.T) {
	m, ok := BuscarModulo("contas-pagar")
	require.True(t, ok)
	assert.Equal(t, "Contas a Pagar", m.Nome)
	assert.False(t, m.Obrigatorio)

	_, ok = BuscarModulo("inexistente")
	assert.False(t, ok)
}

func TestModuloObrigatorio(t *testing.T) {
	assert.True(t, ModuloObrigatorio("dashboard"))
	assert.True(t, ModuloObrigatorio("configuracoes"))
	assert.False(t, ModuloObrigatorio("financeiro"))
	assert.False(t, ModuloObrigatorio("inexistente"))
}

func TestEscopoCongregacao(t *testing.T) {
	assert.True(t, EscopoCongregacao("financeiro"))
	assert.True(t, EscopoCongregacao("conciliacoes"))
	assert.True(t, EscopoCongregacao("congregacoes"))

	assert.False(t, EscopoCongregacao("membros"))
	assert.False(t, EscopoCongregacao("dashboard"))
	assert.False(t, EscopoCongregacao("inexistente"))
}

func TestAcaoAplicavel(t *testing.T) {
	tests := []struct {
		nome    string
		modulo  string
		caminho []string
		acao    Acao
		espera  bool
	}{
		{"ação no módulo raiz", "contas-pagar", nil, AcaoApprove, true},
		{"ação ausente no módulo raiz", "dashboard", nil, AcaoInsert, false},
		{"ação no submódulo", "financeiro", []string{"despesas"}, AcaoInactivate, true},
		{"ação ausente no submódulo", "financeiro", []string{"dizimos"}, AcaoEdit, false},
		{"ação no sub-submódulo", "financeiro", []string{"despesas", "categorias"}, AcaoEdit, true},
		{"ação ausente no sub-submódulo", "financeiro", []string{"despesas", "categorias"}, AcaoInactivate, false},
		{"submódulo inexistente", "financeiro", []string{"orcamentos"}, AcaoView, false},
		{"sub-submódulo inexistente", "financeiro", []string{"despesas", "fornecedores"}, AcaoView, false},
		{"módulo inexistente", "almoxarifado", nil, AcaoView, false},
	}

	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.espera, AcaoAplicavel(tt.modulo, tt.caminho, tt.acao))
		})
	}
}

func TestModulosPadraoPorPlano(t *testing.T) {
	// Todo plano inclui os módulos de núcleo
	for plano, chaves := range ModulosPadraoPorPlano {
		conjunto := map[string]bool{}
		for _, chave := range chaves {
			conjunto[chave] = true
		}
		assert.True(t, conjunto["dashboard"], "plano %s sem dashboard", plano)
		assert.True(t, conjunto["configuracoes"], "plano %s sem configuracoes", plano)
	}

	// A progressão de planos só acrescenta módulos
	anterior := map[string]bool{}
	for _, plano := range []Plano{PlanoFree, PlanoBasic, PlanoPro, PlanoEnterprise} {
		atual := map[string]bool{}
		for _, chave := range ModulosPadraoPorPlano[plano] {
			atual[chave] = true
		}
		for chave := range anterior {
			assert.True(t, atual[chave], "plano %s removeu %s do plano anterior", plano, chave)
		}
		anterior = atual
	}
}

func TestPadraoPorPlanoReferenciaCatalogo(t *testing.T) {
	for plano, chaves := range ModulosPadraoPorPlano {
		for _, chave := range chaves {
			_, ok := BuscarModulo(chave)
			assert.True(t, ok, "plano %s referencia módulo inexistente %s", plano, chave)
		}
	}
}
