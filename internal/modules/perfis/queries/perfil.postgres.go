package queries

// PerfilQueries agrupa as consultas SQL de gestão de perfis
var PerfilQueries = struct {
	ListPerfis         string
	GetPerfilPorID     string
	InsertPerfil       string
	UpdatePerfil       string
	InativarPerfil     string
	AtribuirPerfil     string
	RevogarPerfil      string
	GetPerfisUsuario   string
	CountNomeDuplicado string
}{
	/**
	 * Lista os perfis ativos acessíveis no contexto.
	 * Perfis de sistema têm tenant_id NULL e aparecem em todos os tenants.
	 * Parâmetros: $1 = tenant_id (NULL em organização única)
	 */
	ListPerfis: `
		SELECT p.id, p.tenant_id, p.nome, p.descricao, p.sistema, p.ativo,
		       p.created_at, p.updated_at
		FROM auth_perfil p
		WHERE p.ativo = TRUE
		  AND (p.tenant_id IS NULL OR $1::uuid IS NULL OR p.tenant_id = $1)
		ORDER BY p.sistema DESC, p.nome
	`,

	/**
	 * Recupera um perfil pelo identificador
	 * Parâmetros: $1 = perfil_id
	 */
	GetPerfilPorID: `
		SELECT p.id, p.tenant_id, p.nome, p.descricao, p.sistema, p.ativo,
		       p.created_at, p.updated_at
		FROM auth_perfil p
		WHERE p.id = $1
	`,

	/**
	 * Cria um perfil de tenant (sistema = FALSE sempre, via API)
	 * Parâmetros: $1 = tenant_id, $2 = nome, $3 = descricao
	 */
	InsertPerfil: `
		INSERT INTO auth_perfil (id, tenant_id, nome, descricao, sistema, ativo, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, FALSE, TRUE, NOW(), NOW())
		RETURNING id, tenant_id, nome, descricao, sistema, ativo, created_at, updated_at
	`,

	/**
	 * Atualiza nome e descrição de um perfil não-sistema
	 * Parâmetros: $1 = perfil_id, $2 = nome, $3 = descricao
	 */
	UpdatePerfil: `
		UPDATE auth_perfil
		SET nome = $2, descricao = $3, updated_at = NOW()
		WHERE id = $1 AND sistema = FALSE
	`,

	/**
	 * Inativação lógica — as atribuições ficam, mas deixam de contar
	 * para o conjunto efetivo (os joins filtram por ativo)
	 * Parâmetros: $1 = perfil_id
	 */
	InativarPerfil: `
		UPDATE auth_perfil
		SET ativo = FALSE, updated_at = NOW()
		WHERE id = $1 AND sistema = FALSE AND ativo = TRUE
	`,

	/**
	 * Atribui um perfil a um usuário (idempotente, reativa se inativo)
	 * Parâmetros: $1 = usuario_id, $2 = perfil_id
	 */
	AtribuirPerfil: `
		INSERT INTO auth_usuario_perfil (usuario_id, perfil_id, ativo, created_at)
		VALUES ($1, $2, TRUE, NOW())
		ON CONFLICT (usuario_id, perfil_id)
		DO UPDATE SET ativo = TRUE
	`,

	/**
	 * Revoga a atribuição de um perfil (lógica, preserva histórico)
	 * Parâmetros: $1 = usuario_id, $2 = perfil_id
	 */
	RevogarPerfil: `
		UPDATE auth_usuario_perfil
		SET ativo = FALSE
		WHERE usuario_id = $1 AND perfil_id = $2 AND ativo = TRUE
	`,

	/**
	 * Lista os perfis ativos atribuídos a um usuário
	 * Parâmetros: $1 = usuario_id
	 */
	GetPerfisUsuario: `
		SELECT p.id, p.tenant_id, p.nome, p.descricao, p.sistema, p.ativo,
		       p.created_at, p.updated_at
		FROM auth_usuario_perfil up
		JOIN auth_perfil p ON p.id = up.perfil_id
		WHERE up.usuario_id = $1
		  AND up.ativo = TRUE
		  AND p.ativo = TRUE
		ORDER BY p.nome
	`,

	/**
	 * Verifica duplicidade de nome dentro do tenant
	 * Parâmetros: $1 = tenant_id (NULL em organização única), $2 = nome,
	 *             $3 = perfil_id a ignorar (NULL na criação)
	 */
	CountNomeDuplicado: `
		SELECT COUNT(*)
		FROM auth_perfil p
		WHERE p.ativo = TRUE
		  AND LOWER(p.nome) = LOWER($2)
		  AND (($1::uuid IS NULL AND p.tenant_id IS NULL) OR p.tenant_id = $1)
		  AND ($3::uuid IS NULL OR p.id <> $3)
	`,
}
