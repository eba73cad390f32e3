package tenants

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"gestor-igrejas-core/internal/modules/catalogo"
)

// As guardas das rotas de administração do tenant só podem exigir ações
// que o catálogo concede para o módulo configuracoes.
func TestAcoesDasGuardasSaoConcediveis(t *testing.T) {
	// espelha as tuplas usadas em RegisterTenantsRoutes
	guardas := []struct {
		modulo string
		acao   catalogo.Acao
	}{
		{"configuracoes", catalogo.AcaoView},
		{"configuracoes", catalogo.AcaoEdit},
	}

	for _, g := range guardas {
		t.Run(fmt.Sprintf("%s::%s", g.modulo, g.acao), func(t *testing.T) {
			assert.True(t, catalogo.AcaoAplicavel(g.modulo, nil, g.acao),
				"guarda usa tupla fora do catálogo")
		})
	}
}
