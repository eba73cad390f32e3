package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/catalogo"
	"gestor-igrejas-core/internal/modules/perfis/dto"
)

func TestExpandirMatriz(t *testing.T) {
	itens := []dto.ItemMatriz{
		{Modulo: "contas-pagar", Acoes: []string{"view", "approve"}},
		{Modulo: "financeiro", Submodulo: "despesas", SubSubmodulo: "categorias", Acoes: []string{"edit"}},
	}

	permissoes, err := ExpandirMatriz("perfil-1", itens)
	require.NoError(t, err)
	require.Len(t, permissoes, 3)

	chaves := make([]string, len(permissoes))
	for i, p := range permissoes {
		assert.Equal(t, "perfil-1", p.PerfilID)
		chaves[i] = p.ChaveComposta()
	}
	assert.Contains(t, chaves, "contas-pagar::view")
	assert.Contains(t, chaves, "contas-pagar::approve")
	assert.Contains(t, chaves, "financeiro::despesas::categorias::edit")
}

func TestExpandirMatrizAcaoDesconhecida(t *testing.T) {
	itens := []dto.ItemMatriz{
		{Modulo: "membros", Acoes: []string{"view", "delete"}},
	}

	_, err := ExpandirMatriz("perfil-1", itens)
	require.Error(t, err)

	var svcErr *autzdto.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, autzdto.ErroTipoValidacao, svcErr.Type)
	assert.Equal(t, "delete", svcErr.Details["acao"])
}

func TestExpandirMatrizVazia(t *testing.T) {
	permissoes, err := ExpandirMatriz("perfil-1", nil)
	require.NoError(t, err)
	assert.Empty(t, permissoes)
}

func TestExpandirMatrizGeraAcoesTipadas(t *testing.T) {
	permissoes, err := ExpandirMatriz("perfil-1", []dto.ItemMatriz{
		{Modulo: "relatorios", Acoes: []string{"send_notification"}},
	})
	require.NoError(t, err)
	require.Len(t, permissoes, 1)
	assert.Equal(t, catalogo.AcaoSendNotification, permissoes[0].Acao)
}
