package queries

// CongregacaoQueries agrupa as consultas SQL de escopo por congregação
var CongregacaoQueries = struct {
	GetCongregacoesDoPastor string
	GetCongregacaoPorID     string
}{
	/**
	 * Recupera as congregações sob responsabilidade de um pastor.
	 * A pertinência em pastores_responsaveis é a única fonte de verdade
	 * do escopo pastoral — sem cache fora do filtro.
	 * Parâmetros: $1 = usuario_id, $2 = tenant_id (NULL em organização única)
	 */
	GetCongregacoesDoPastor: `
		SELECT
			c.id,
			c.nome,
			c.pastores_responsaveis,
			c.ativa
		FROM base_congregacao c
		WHERE $1::uuid = ANY(c.pastores_responsaveis)
		  AND ($2::uuid IS NULL OR c.tenant_id = $2)
		  AND c.ativa = TRUE
		ORDER BY c.nome
	`,

	/**
	 * Recupera uma congregação pelo id
	 * Parâmetros: $1 = congregacao_id
	 */
	GetCongregacaoPorID: `
		SELECT
			c.id,
			c.nome,
			c.pastores_responsaveis,
			c.ativa
		FROM base_congregacao c
		WHERE c.id = $1
	`,
}
