package queries

// TenantQueries agrupa as consultas SQL de tenant e configuração de módulos
var TenantQueries = struct {
	GetTenantPorCodigo  string
	GetConfigModulos    string
	UpsertConfigModulos string
}{
	/**
	 * Recupera um tenant pelo código
	 * Parâmetros: $1 = codigo
	 */
	GetTenantPorCodigo: `
		SELECT
			t.id,
			t.codigo,
			t.plano,
			t.ativo
		FROM base_tenant t
		WHERE t.codigo = $1
	`,

	/**
	 * Recupera o mapa de habilitação de módulos do tenant (JSON chave -> bool)
	 * Parâmetros: $1 = tenant_id
	 */
	GetConfigModulos: `
		SELECT tc.valor
		FROM tenant_configuracao tc
		WHERE tc.tenant_id = $1
		  AND tc.categoria = 'modules'
	`,

	/**
	 * Grava o mapa de habilitação de módulos do tenant
	 * Parâmetros: $1 = tenant_id, $2 = valor (jsonb)
	 */
	UpsertConfigModulos: `
		INSERT INTO tenant_configuracao (tenant_id, categoria, valor, updated_at)
		VALUES ($1, 'modules', $2, NOW())
		ON CONFLICT (tenant_id, categoria)
		DO UPDATE SET valor = EXCLUDED.valor, updated_at = NOW()
	`,
}
