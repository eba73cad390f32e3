package queries

// TenantQueries agrupa as consultas SQL de resolução de tenant no middleware
var TenantQueries = struct {
	GetByCodigo string
}{
	/**
	 * Recupera o tenant pelo código para injeção no contexto
	 * Parâmetros: $1 = codigo
	 */
	GetByCodigo: `
		SELECT t.id, t.codigo, t.plano, t.ativo
		FROM base_tenant t
		WHERE t.codigo = $1
	`,
}
