package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor-igrejas-core/internal/modules/catalogo"
)

func TestExpandirCatalogoCobreTodasAsTuplas(t *testing.T) {
	tuplas := expandirCatalogo()
	require.NotEmpty(t, tuplas)

	// Cada tupla gerada corresponde a uma ação aplicável no catálogo
	for _, tupla := range tuplas {
		caminho := []string{}
		if tupla.submodulo != "" {
			caminho = append(caminho, tupla.submodulo)
		}
		if tupla.subSubmodulo != "" {
			caminho = append(caminho, tupla.subSubmodulo)
		}
		assert.True(t, catalogo.AcaoAplicavel(tupla.modulo, caminho, catalogo.Acao(tupla.acao)),
			"tupla fora do catálogo: %+v", tupla)
	}

	// Sem duplicatas
	vistas := map[string]bool{}
	for _, tupla := range tuplas {
		chave := tupla.modulo + "/" + tupla.submodulo + "/" + tupla.subSubmodulo + "/" + tupla.acao
		assert.False(t, vistas[chave], "tupla duplicada: %s", chave)
		vistas[chave] = true
	}
}

func TestExpandirCatalogoIncluiTodosOsNiveis(t *testing.T) {
	tuplas := expandirCatalogo()

	temRaiz := false
	temSubmodulo := false
	temSubSubmodulo := false
	for _, tupla := range tuplas {
		switch {
		case tupla.subSubmodulo != "":
			temSubSubmodulo = true
		case tupla.submodulo != "":
			temSubmodulo = true
		default:
			temRaiz = true
		}
	}

	assert.True(t, temRaiz)
	assert.True(t, temSubmodulo)
	assert.True(t, temSubSubmodulo)
}
