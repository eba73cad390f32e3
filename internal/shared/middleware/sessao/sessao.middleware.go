package sessao

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gestor-igrejas-core/internal/modules/autorizacao/dto"
)

// ChaveContexto é a chave do contexto Gin onde o ator autenticado é injetado
const ChaveContexto = "ator"

var papeisConhecidos = map[dto.Papel]bool{
	dto.PapelSuperadmin: true,
	dto.PapelAdmin:      true,
	dto.PapelFinance:    true,
	dto.PapelPastor:     true,
	dto.PapelWorker:     true,
	dto.PapelGerente:    true,
	dto.PapelDiretor:    true,
	dto.PapelPresidente: true,
}

// SessaoMiddleware extrai o ator da requisição a partir dos headers
// preenchidos pelo gateway de autenticação. A autenticação em si acontece
// antes deste serviço; aqui só se valida a identidade propagada.
type SessaoMiddleware struct{}

// NewSessaoMiddleware cria uma nova instância do middleware de sessão
func NewSessaoMiddleware() *SessaoMiddleware {
	return &SessaoMiddleware{}
}

// Handler retorna o middleware Gin que exige um ator válido na requisição
func (m *SessaoMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			m.responderErro(c, 401, "USER_ID_REQUIRED",
				"Identificação do usuário requerida", map[string]interface{}{
					"header_requerido": "X-User-Id",
				})
			return
		}

		if _, err := uuid.Parse(userID); err != nil {
			m.responderErro(c, 401, "USER_ID_INVALID",
				"Identificação do usuário inválida", map[string]interface{}{
					"user_id": userID,
				})
			return
		}

		papel := dto.Papel(c.GetHeader("X-User-Papel"))
		if !papeisConhecidos[papel] {
			m.responderErro(c, 401, "PAPEL_INVALID",
				"Papel do usuário ausente ou desconhecido", map[string]interface{}{
					"header_requerido": "X-User-Papel",
				})
			return
		}

		c.Set(ChaveContexto, dto.Ator{UserID: userID, Papel: papel})
		c.Set("user_id", userID)
		c.Next()
	}
}

// FromContext recupera o ator injetado pelo middleware
func FromContext(c *gin.Context) (dto.Ator, bool) {
	valor, existe := c.Get(ChaveContexto)
	if !existe {
		return dto.Ator{}, false
	}
	ator, ok := valor.(dto.Ator)
	return ator, ok
}

func (m *SessaoMiddleware) responderErro(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	response := gin.H{
		"error": message,
		"code":  code,
	}
	if details != nil {
		response["details"] = details
	}

	c.JSON(status, response)
	c.Abort()
}
