package autorizacao

import (
	"github.com/gin-gonic/gin"

	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/autorizacao/services"
	"gestor-igrejas-core/internal/shared/middleware/sessao"
	"gestor-igrejas-core/internal/shared/middleware/tenant"
)

// AutorizacaoMiddleware protege rotas delegando a decisão à fachada de
// autorização. Cada guarda nomeia o caminho de módulo e a ação exigidos.
type AutorizacaoMiddleware struct {
	autorizacaoService *services.AutorizacaoService
}

// NewAutorizacaoMiddleware cria uma nova instância do middleware de autorização
func NewAutorizacaoMiddleware(autorizacaoService *services.AutorizacaoService) *AutorizacaoMiddleware {
	return &AutorizacaoMiddleware{
		autorizacaoService: autorizacaoService,
	}
}

// RequireModulo exige uma ação no nível do módulo
func (m *AutorizacaoMiddleware) RequireModulo(modulo, acao string) gin.HandlerFunc {
	return m.RequireAcesso(modulo, "", "", acao)
}

// RequireSubmodulo exige uma ação no nível do submódulo
func (m *AutorizacaoMiddleware) RequireSubmodulo(modulo, submodulo, acao string) gin.HandlerFunc {
	return m.RequireAcesso(modulo, submodulo, "", acao)
}

// RequireAcesso exige uma ação num caminho exato do catálogo.
// A decisão combina habilitação de módulo do tenant, matriz de permissões
// e escopo congregacional, nessa ordem.
func (m *AutorizacaoMiddleware) RequireAcesso(modulo, submodulo, subSubmodulo, acao string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ator, existe := sessao.FromContext(c)
		if !existe {
			m.responderErro(c, 465, "SESSAO_REQUIRED",
				"Ator requerido para verificação de acesso", nil)
			return
		}

		pedido := services.PedidoAutorizacao{
			Ator:         ator,
			Tenant:       tenant.FromContext(c),
			Modulo:       modulo,
			Submodulo:    submodulo,
			SubSubmodulo: subSubmodulo,
			Acao:         acao,
		}

		decisao, err := m.autorizacaoService.Autorizar(c.Request.Context(), pedido)
		if err != nil {
			m.responderErro(c, 500, "AUTHORIZATION_CHECK_ERROR",
				"Erro na verificação de acesso", map[string]interface{}{
					"modulo": modulo,
					"acao":   acao,
				})
			return
		}

		if !decisao.Permitido {
			status := 465
			if decisao.Motivo == dto.MotivoModuloDesabilitado {
				// Módulo fora do plano/config do tenant: erro de tenant,
				// não de permissão
				status = 460
			}
			m.responderErro(c, status, "ACCESS_DENIED",
				"Acesso negado", map[string]interface{}{
					"motivo": decisao.Motivo,
					"modulo": modulo,
					"acao":   acao,
				})
			return
		}

		c.Next()
	}
}

func (m *AutorizacaoMiddleware) responderErro(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	response := gin.H{
		"error": message,
		"details": gin.H{
			"code": code,
		},
	}

	if details != nil {
		if detailsMap, ok := response["details"].(gin.H); ok {
			for k, v := range details {
				detailsMap[k] = v
			}
		}
	}

	c.JSON(status, response)
	c.Abort()
}
