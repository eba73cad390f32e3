package queries

// ContaPagarQueries agrupa as consultas SQL das contas a pagar
var ContaPagarQueries = struct {
	Insert             string
	GetByID            string
	List               string
	TransicionarStatus string
	MarcarPaga         string
}{
	/**
	 * Cria uma conta a pagar já em pending_management
	 * Parâmetros: $1 = tenant_id (NULL em organização única),
	 *             $2 = congregacao_id, $3 = descricao, $4 = valor,
	 *             $5 = criado_por, $6 = reaberta_de_id (NULL normalmente)
	 */
	Insert: `
		INSERT INTO financeiro_conta_pagar
			(id, tenant_id, congregacao_id, descricao, valor, status,
			 criado_por, reaberta_de_id, created_at, updated_at)
		VALUES
			(gen_random_uuid(), $1, $2, $3, $4, 'pending_management',
			 $5, $6, NOW(), NOW())
		RETURNING id, tenant_id, congregacao_id, descricao, valor, status,
		          criado_por, aprovado_por, aprovado_em, pago_em,
		          reaberta_de_id, created_at, updated_at
	`,

	/**
	 * Recupera uma conta pelo identificador
	 * Parâmetros: $1 = conta_id
	 */
	GetByID: `
		SELECT cp.id, cp.tenant_id, cp.congregacao_id, cp.descricao, cp.valor,
		       cp.status, cp.criado_por, cp.aprovado_por, cp.aprovado_em,
		       cp.pago_em, cp.reaberta_de_id, cp.created_at, cp.updated_at
		FROM financeiro_conta_pagar cp
		WHERE cp.id = $1
	`,

	/**
	 * Lista as contas do tenant com filtros opcionais
	 * Parâmetros: $1 = tenant_id (NULL em organização única),
	 *             $2 = status (NULL para todos),
	 *             $3 = congregacao_id (NULL para todas)
	 */
	List: `
		SELECT cp.id, cp.tenant_id, cp.congregacao_id, cp.descricao, cp.valor,
		       cp.status, cp.criado_por, cp.aprovado_por, cp.aprovado_em,
		       cp.pago_em, cp.reaberta_de_id, cp.created_at, cp.updated_at
		FROM financeiro_conta_pagar cp
		WHERE ($1::uuid IS NULL OR cp.tenant_id = $1)
		  AND ($2::varchar IS NULL OR cp.status = $2)
		  AND ($3::uuid IS NULL OR cp.congregacao_id = $3)
		ORDER BY cp.created_at DESC
	`,

	/**
	 * Transição compare-and-transition: a escrita só acontece se o status
	 * ainda for o lido. Zero linhas afetadas = corrida detectada ou
	 * registro inexistente — o chamador relê e decide.
	 * Parâmetros: $1 = conta_id, $2 = status_esperado, $3 = status_novo,
	 *             $4 = ator_id
	 */
	TransicionarStatus: `
		UPDATE financeiro_conta_pagar
		SET status = $3,
		    aprovado_por = $4,
		    aprovado_em = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		  AND status = $2
	`,

	/**
	 * Marca uma conta aprovada como paga (mesma disciplina CAS)
	 * Parâmetros: $1 = conta_id
	 */
	MarcarPaga: `
		UPDATE financeiro_conta_pagar
		SET status = 'paid',
		    pago_em = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		  AND status = 'approved'
	`,
}
