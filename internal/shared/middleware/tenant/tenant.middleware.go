package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"gestor-igrejas-core/internal/app/config"
	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	redisInfra "gestor-igrejas-core/internal/infrastructure/database/redis"
	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/shared/middleware/tenant/queries"
)

// ChaveContexto é a chave do contexto Gin onde o tenant resolvido é injetado
const ChaveContexto = "tenant"

var formatoCodigoTenant = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{2,29}$`)

type TenantMiddleware struct {
	cfg         *config.Config
	db          *postgres.Client
	redisClient *redisInfra.Client
}

// NewTenantMiddleware cria uma nova instância do middleware de tenant
func NewTenantMiddleware(cfg *config.Config, db *postgres.Client, redisClient *redisInfra.Client) *TenantMiddleware {
	return &TenantMiddleware{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}

// Handler retorna o middleware Gin de resolução de tenant.
// Em instalações de organização única nenhum contexto é injetado — os
// serviços recebem tenant nulo e pulam o gating por módulo.
func (m *TenantMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.isEndpointIsento(c.Request.URL.Path) {
			c.Next()
			return
		}

		if !m.cfg.Sistema.MultiTenant {
			c.Next()
			return
		}

		codigo := c.GetHeader("X-Tenant-Code")
		if codigo == "" {
			m.responderErro(c, 460, "TENANT_CODE_REQUIRED",
				"Código do tenant requerido", map[string]interface{}{
					"header_requerido": "X-Tenant-Code",
				})
			return
		}

		if !formatoCodigoTenant.MatchString(codigo) {
			m.responderErro(c, 460, "TENANT_CODE_INVALID_FORMAT",
				"Formato do código do tenant inválido", map[string]interface{}{
					"codigo_recebido": codigo,
					"formato_exigido": "minúsculas e hífens, 3-30 caracteres",
				})
			return
		}

		// Verificação em cache Redis primeiro
		tenantCtx, encontrado := m.buscarNoCache(c.Request.Context(), codigo)
		if !encontrado {
			var err error
			tenantCtx, err = m.buscarNoBanco(c.Request.Context(), codigo)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					m.responderErro(c, 460, "TENANT_NOT_FOUND",
						"Tenant não encontrado", map[string]interface{}{
							"tenant_code": codigo,
						})
					return
				}
				m.responderErro(c, 500, "DATABASE_ERROR",
					"Erro técnico na resolução do tenant", map[string]interface{}{
						"tenant_code": codigo,
					})
				return
			}

			// Cache por 15 minutos
			m.cachearTenant(c.Request.Context(), codigo, tenantCtx)
		}

		if !tenantCtx.Ativo {
			m.responderErro(c, 460, "TENANT_INACTIVE",
				"Tenant inativo", map[string]interface{}{
					"tenant_code": codigo,
				})
			return
		}

		c.Set(ChaveContexto, tenantCtx)
		c.Next()
	}
}

// FromContext recupera o tenant injetado pelo middleware.
// Nil quando a instalação é de organização única.
func FromContext(c *gin.Context) *dto.TenantContext {
	valor, existe := c.Get(ChaveContexto)
	if !existe {
		return nil
	}
	tenantCtx, ok := valor.(*dto.TenantContext)
	if !ok {
		return nil
	}
	return tenantCtx
}

// isEndpointIsento verifica se o endpoint dispensa resolução de tenant
func (m *TenantMiddleware) isEndpointIsento(path string) bool {
	isentos := []string{
		"/health",
		"/ready",
		"/api/v1/system/info",
	}

	for _, isento := range isentos {
		if path == isento {
			return true
		}
	}
	return false
}

// buscarNoCache recupera o tenant do Redis conforme as convenções de chave
func (m *TenantMiddleware) buscarNoCache(ctx context.Context, codigo string) (*dto.TenantContext, bool) {
	jsonData, err := m.redisClient.GetWithPattern(ctx, "cache_middleware", codigo, "tenant")
	if err != nil {
		return nil, false
	}

	var tenantCtx dto.TenantContext
	if err := json.Unmarshal([]byte(jsonData), &tenantCtx); err != nil {
		// Cache corrompido: invalida e segue sem cache
		m.redisClient.DelWithPattern(ctx, "cache_middleware", codigo, "tenant")
		return nil, false
	}

	return &tenantCtx, true
}

// cachearTenant grava o tenant no cache (não bloqueante em caso de falha)
func (m *TenantMiddleware) cachearTenant(ctx context.Context, codigo string, tenantCtx *dto.TenantContext) {
	jsonData, err := json.Marshal(tenantCtx)
	if err != nil {
		return
	}
	m.redisClient.SetWithPattern(ctx, "cache_middleware", codigo, jsonData, "tenant")
}

// buscarNoBanco recupera o tenant do PostgreSQL
func (m *TenantMiddleware) buscarNoBanco(ctx context.Context, codigo string) (*dto.TenantContext, error) {
	row := m.db.QueryRow(ctx, queries.TenantQueries.GetByCodigo, codigo)

	var tenantCtx dto.TenantContext
	if err := row.Scan(&tenantCtx.ID, &tenantCtx.Codigo, &tenantCtx.Plano, &tenantCtx.Ativo); err != nil {
		return nil, err
	}

	return &tenantCtx, nil
}

// responderErro envia uma resposta de erro padronizada e aborta a cadeia
func (m *TenantMiddleware) responderErro(c *gin.Context, status int, code, message string, details map[string]interface{}) {
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
