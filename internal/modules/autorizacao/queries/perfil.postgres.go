package queries

// PerfilQueries agrupa as consultas SQL de permissões por perfil
var PerfilQueries = struct {
	GetPermissoesEfetivas  string
	GetPermissoesDoPerfil  string
	DeletePermissoesPerfil string
	InsertPermissao        string
	InsertAuditoria        string
	GetUsuariosComPerfil   string
}{
	/**
	 * Recupera o conjunto efetivo de permissões de um usuário:
	 * união das tuplas de todos os perfis ativos atribuídos.
	 * Parâmetros: $1 = usuario_id, $2 = tenant_id (NULL em organização única)
	 */
	GetPermissoesEfetivas: `
		SELECT DISTINCT
			pp.perfil_id,
			pp.modulo,
			pp.submodulo,
			pp.sub_submodulo,
			pp.acao
		FROM auth_usuario_perfil up
		JOIN auth_perfil p ON p.id = up.perfil_id
		JOIN auth_perfil_permissao pp ON pp.perfil_id = up.perfil_id
		WHERE up.usuario_id = $1
		  AND up.ativo = TRUE
		  AND p.ativo = TRUE
		  AND ($2::uuid IS NULL OR p.tenant_id = $2)
	`,

	/**
	 * Recupera as tuplas de permissão de um único perfil
	 * Parâmetros: $1 = perfil_id
	 */
	GetPermissoesDoPerfil: `
		SELECT
			pp.perfil_id,
			pp.modulo,
			pp.submodulo,
			pp.sub_submodulo,
			pp.acao
		FROM auth_perfil_permissao pp
		WHERE pp.perfil_id = $1
		ORDER BY pp.modulo, pp.submodulo, pp.sub_submodulo, pp.acao
	`,

	/**
	 * Remove todas as tuplas de um perfil (primeira fase do replace-then-insert)
	 * Parâmetros: $1 = perfil_id
	 */
	DeletePermissoesPerfil: `
		DELETE FROM auth_perfil_permissao
		WHERE perfil_id = $1
	`,

	/**
	 * Insere uma tupla de permissão.
	 * Segmentos ausentes do caminho são persistidos como '' para manter
	 * a unicidade sobre a tupla completa.
	 * Parâmetros: $1 = perfil_id, $2 = modulo, $3 = submodulo,
	 *             $4 = sub_submodulo, $5 = acao
	 */
	InsertPermissao: `
		INSERT INTO auth_perfil_permissao (perfil_id, modulo, submodulo, sub_submodulo, acao)
		VALUES ($1, $2, $3, $4, $5)
	`,

	/**
	 * Registra uma entrada de auditoria por tupla concedida
	 * Parâmetros: $1 = perfil_id, $2 = modulo, $3 = submodulo,
	 *             $4 = sub_submodulo, $5 = acao, $6 = operacao
	 */
	InsertAuditoria: `
		INSERT INTO auth_permissao_auditoria (perfil_id, modulo, submodulo, sub_submodulo, acao, operacao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`,

	/**
	 * Lista os usuários com um perfil atribuído (invalidação de cache)
	 * Parâmetros: $1 = perfil_id
	 */
	GetUsuariosComPerfil: `
		SELECT up.usuario_id
		FROM auth_usuario_perfil up
		WHERE up.perfil_id = $1
		  AND up.ativo = TRUE
	`,
}
