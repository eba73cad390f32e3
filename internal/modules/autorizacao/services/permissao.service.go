package services

import (
	"context"
	"fmt"
	"time"

	"gestor-igrejas-core/internal/infrastructure/database/mongodb"
	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	"gestor-igrejas-core/internal/infrastructure/database/redis"
	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/autorizacao/queries"
	"gestor-igrejas-core/internal/modules/catalogo"
)

// colecaoAuditoria é a coleção MongoDB que espelha a trilha de auditoria
const colecaoAuditoria = "auditoria_permissoes"

// codigoTenantPadrao é usado nas chaves de cache de instalações de organização única
const codigoTenantPadrao = "default"

type PermissaoService struct {
	db          *postgres.Client
	txManager   *postgres.TransactionManager
	redisClient *redis.Client
	mongoClient *mongodb.Client
}

// NewPermissaoService cria uma nova instância do serviço de permissões
func NewPermissaoService(
	db *postgres.Client,
	txManager *postgres.TransactionManager,
	redisClient *redis.Client,
	mongoClient *mongodb.Client,
) *PermissaoService {
	return &PermissaoService{
		db:          db,
		txManager:   txManager,
		redisClient: redisClient,
		mongoClient: mongoClient,
	}
}

// TemPermissao decide se o conjunto de tuplas concede a ação no caminho exato.
// Default-deny com correspondência exata: concessão no módulo pai NÃO implica
// acesso aos submódulos, nem o inverso — cada nível exige sua própria tupla.
func (s *PermissaoService) TemPermissao(permissoes []dto.Permissao, modulo, submodulo, subSubmodulo string, acao catalogo.Acao) bool {
	chave := dto.ChavePermissao(modulo, submodulo, subSubmodulo, acao)
	for _, p := range permissoes {
		if p.ChaveComposta() == chave {
			return true
		}
	}
	return false
}

// CarregarPermissoesEfetivas recupera SEMPRE do PostgreSQL o conjunto efetivo
// (união dos perfis ativos atribuídos ao usuário).
// SEGURANÇA: a fonte de verdade é o banco; o cache serve apenas às
// verificações rápidas dos middlewares, nunca às respostas da API.
func (s *PermissaoService) CarregarPermissoesEfetivas(ctx context.Context, tenant *dto.TenantContext, userID string) ([]dto.Permissao, error) {
	var tenantID *string
	if tenant != nil {
		tenantID = &tenant.ID
	}

	rows, err := s.db.Query(ctx, queries.PerfilQueries.GetPermissoesEfetivas, userID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro na recuperação das permissões: %w", err)
	}
	defer rows.Close()

	var permissoes []dto.Permissao
	for rows.Next() {
		var p dto.Permissao
		if err := rows.Scan(&p.PerfilID, &p.Modulo, &p.Submodulo, &p.SubSubmodulo, &p.Acao); err != nil {
			continue
		}
		permissoes = append(permissoes, p)
	}

	// Cache em segundo plano para as verificações rápidas dos middlewares
	go s.cachearPermissoes(context.WithoutCancel(ctx), codigoTenant(tenant), userID, permissoes)

	return permissoes, nil
}

// VerificarPermissao verifica uma única tupla para o usuário.
// ESTRATÉGIA: cache Redis primeiro (performance) com fallback PostgreSQL
// (fonte de verdade). Usada pelos guards de rota.
func (s *PermissaoService) VerificarPermissao(ctx context.Context, tenant *dto.TenantContext, userID, modulo, submodulo, subSubmodulo string, acao catalogo.Acao) (bool, error) {
	chave := dto.ChavePermissao(modulo, submodulo, subSubmodulo, acao)

	temAcesso, cacheHit := s.verificarNoCache(ctx, codigoTenant(tenant), userID, chave)
	if cacheHit {
		return temAcesso, nil
	}

	// Cache miss ou Redis indisponível - fallback PostgreSQL
	permissoes, err := s.CarregarPermissoesEfetivas(ctx, tenant, userID)
	if err != nil {
		return false, err
	}

	return s.TemPermissao(permissoes, modulo, submodulo, subSubmodulo, acao), nil
}

// SubstituirPermissoesPerfil substitui atomicamente a matriz de um perfil:
// apaga todas as tuplas existentes, insere a nova lista e registra uma
// entrada de auditoria por tupla, tudo em uma única transação.
// Leitores concorrentes observam o conjunto antigo ou o novo, nunca parcial.
func (s *PermissaoService) SubstituirPermissoesPerfil(ctx context.Context, tenantCode, perfilID string, permissoes []dto.Permissao) error {
	// Validação de fronteira: tuplas ilegais são rejeitadas antes de qualquer escrita
	for _, p := range permissoes {
		if !catalogo.AcaoAplicavel(p.Modulo, p.CaminhoSubmodulo(), p.Acao) {
			return dto.NewValidacao("tupla de permissão fora do catálogo", map[string]interface{}{
				"modulo":        p.Modulo,
				"submodulo":     p.Submodulo,
				"sub_submodulo": p.SubSubmodulo,
				"acao":          p.Acao,
			})
		}
	}

	err := s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		if err := tx.Exec(ctx, queries.PerfilQueries.DeletePermissoesPerfil, perfilID); err != nil {
			return fmt.Errorf("erro na remoção das tuplas do perfil: %w", err)
		}

		for _, p := range permissoes {
			if err := tx.Exec(ctx, queries.PerfilQueries.InsertPermissao,
				perfilID, p.Modulo, p.Submodulo, p.SubSubmodulo, p.Acao); err != nil {
				return fmt.Errorf("erro na inserção da tupla: %w", err)
			}

			if err := tx.Exec(ctx, queries.PerfilQueries.InsertAuditoria,
				perfilID, p.Modulo, p.Submodulo, p.SubSubmodulo, p.Acao, "granted"); err != nil {
				return fmt.Errorf("erro no registro de auditoria: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Invalidar o cache de todos os usuários com o perfil atribuído
	s.invalidarCacheDoPerfil(ctx, tenantCode, perfilID)

	// Espelho da auditoria no MongoDB em segundo plano (best-effort)
	go s.espelharAuditoria(context.WithoutCancel(ctx), perfilID, permissoes)

	return nil
}

// PermissoesDoPerfil recupera as tuplas da matriz de um único perfil
func (s *PermissaoService) PermissoesDoPerfil(ctx context.Context, perfilID string) ([]dto.Permissao, error) {
	rows, err := s.db.Query(ctx, queries.PerfilQueries.GetPermissoesDoPerfil, perfilID)
	if err != nil {
		return nil, fmt.Errorf("erro na recuperação da matriz do perfil: %w", err)
	}
	defer rows.Close()

	var permissoes []dto.Permissao
	for rows.Next() {
		var p dto.Permissao
		if err := rows.Scan(&p.PerfilID, &p.Modulo, &p.Submodulo, &p.SubSubmodulo, &p.Acao); err != nil {
			return nil, err
		}
		permissoes = append(permissoes, p)
	}
	return permissoes, rows.Err()
}

// InvalidarPermissoesPerfil invalida o cache de todos os usuários do perfil
func (s *PermissaoService) InvalidarPermissoesPerfil(ctx context.Context, tenantCode, perfilID string) {
	s.invalidarCacheDoPerfil(ctx, tenantCode, perfilID)
}

// InvalidarPermissoesUsuario invalida o cache de permissões de um usuário
func (s *PermissaoService) InvalidarPermissoesUsuario(ctx context.Context, tenantCode, userID string) error {
	return s.redisClient.DelWithPattern(ctx, "auth_permissoes", tenantCode, userID)
}

// cachearPermissoes grava o conjunto efetivo no Redis:
// um SET de chaves compostas para verificação via SIsMember
func (s *PermissaoService) cachearPermissoes(ctx context.Context, tenantCode, userID string, permissoes []dto.Permissao) error {
	chaveSet, err := s.redisClient.GenerateKey("auth_permissoes", tenantCode, userID)
	if err != nil {
		return err
	}

	pipe := s.redisClient.Client().Pipeline()
	pipe.Del(ctx, chaveSet)
	for _, p := range permissoes {
		pipe.SAdd(ctx, chaveSet, p.ChaveComposta())
	}
	// Marcador para distinguir "conjunto vazio cacheado" de cache miss
	pipe.SAdd(ctx, chaveSet, "__cached__")
	pipe.Expire(ctx, chaveSet, time.Hour)

	_, err = pipe.Exec(ctx)
	return err
}

// verificarNoCache consulta uma chave composta no cache.
// Retorna (temAcesso, cacheHit) - cacheHit=false exige fallback PostgreSQL.
func (s *PermissaoService) verificarNoCache(ctx context.Context, tenantCode, userID, chave string) (bool, bool) {
	chaveSet, err := s.redisClient.GenerateKey("auth_permissoes", tenantCode, userID)
	if err != nil {
		return false, false
	}

	temChave, err := s.redisClient.SIsMember(ctx, chaveSet, chave)
	if err != nil {
		// Redis indisponível - cache miss para fallback PostgreSQL
		return false, false
	}
	if temChave {
		return true, true
	}

	// Distinguir cache miss de permissão negada
	existe, err := s.redisClient.Exists(ctx, chaveSet)
	if err != nil || !existe {
		return false, false
	}

	// Conjunto cacheado e chave ausente - negado segundo o cache
	return false, true
}

// invalidarCacheDoPerfil invalida o cache de todos os usuários do perfil
func (s *PermissaoService) invalidarCacheDoPerfil(ctx context.Context, tenantCode, perfilID string) {
	rows, err := s.db.Query(ctx, queries.PerfilQueries.GetUsuariosComPerfil, perfilID)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			continue
		}
		s.InvalidarPermissoesUsuario(ctx, tenantCode, userID)
	}
}

// espelharAuditoria insere as entradas de auditoria na coleção MongoDB.
// Best-effort: falhas aqui nunca afetam a transação principal.
func (s *PermissaoService) espelharAuditoria(ctx context.Context, perfilID string, permissoes []dto.Permissao) {
	if s.mongoClient == nil {
		return
	}

	docs := make([]interface{}, 0, len(permissoes))
	agora := time.Now().UTC()
	for _, p := range permissoes {
		docs = append(docs, map[string]interface{}{
			"perfil_id":     perfilID,
			"modulo":        p.Modulo,
			"submodulo":     p.Submodulo,
			"sub_submodulo": p.SubSubmodulo,
			"acao":          p.Acao,
			"operacao":      "granted",
			"registrado_em": agora,
		})
	}
	if len(docs) == 0 {
		return
	}

	insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.mongoClient.Collection(colecaoAuditoria).InsertMany(insertCtx, docs); err != nil {
		fmt.Printf("[AUDITORIA] ⚠️ Falha no espelho MongoDB: %v\n", err)
	}
}

// codigoTenant resolve o código usado nas chaves de cache
func codigoTenant(tenant *dto.TenantContext) string {
	if tenant == nil || tenant.Codigo == "" {
		return codigoTenantPadrao
	}
	return tenant.Codigo
}
