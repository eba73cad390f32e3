package sessao

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor-igrejas-core/internal/modules/autorizacao/dto"
)

func routerComSessao() (*gin.Engine, *dto.Ator) {
	gin.SetMode(gin.TestMode)

	var capturado dto.Ator
	r := gin.New()
	r.Use(NewSessaoMiddleware().Handler())
	r.GET("/protegido", func(c *gin.Context) {
		ator, ok := FromContext(c)
		if ok {
			capturado = ator
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &capturado
}

func TestSessaoAtorValido(t *testing.T) {
	r, capturado := routerComSessao()

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("X-User-Id", "550e8400-e29b-41d4-a716-446655440000")
	req.Header.Set("X-User-Papel", "pastor")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", capturado.UserID)
	assert.Equal(t, dto.PapelPastor, capturado.Papel)
}

func TestSessaoSemUserID(t *testing.T) {
	r, _ := routerComSessao()

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("X-User-Papel", "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "USER_ID_REQUIRED")
}

func TestSessaoUserIDInvalido(t *testing.T) {
	r, _ := routerComSessao()

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("X-User-Id", "nao-e-um-uuid")
	req.Header.Set("X-User-Papel", "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "USER_ID_INVALID")
}

func TestSessaoPapelDesconhecido(t *testing.T) {
	r, _ := routerComSessao()

	for _, papel := range []string{"", "gestor", "ADMIN"} {
		req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
		req.Header.Set("X-User-Id", "550e8400-e29b-41d4-a716-446655440000")
		if papel != "" {
			req.Header.Set("X-User-Papel", papel)
		}

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "papel %q", papel)
		assert.Contains(t, w.Body.String(), "PAPEL_INVALID", "papel %q", papel)
	}
}
