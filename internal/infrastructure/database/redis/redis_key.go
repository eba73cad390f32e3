package redis

import (
	"fmt"
	"regexp"
	"strings"
)

// RedisKeyGenerator gera e valida chaves Redis segundo as convenções do Gestor Igrejas
type RedisKeyGenerator struct{}

// NewRedisKeyGenerator cria uma nova instância do gerador
func NewRedisKeyGenerator() *RedisKeyGenerator {
	return &RedisKeyGenerator{}
}

// RedisKeyPattern define os padrões de chave segundo as convenções
// Formato: gestor_igrejas_{codigo_tenant}_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string // auth, cache, workflow, etc.
	Context string // permissoes, tenant, sessao, etc.
	TTL     int    // TTL em segundos, 0 = sem expiração
}

// Padrões pré-definidos segundo as convenções do projeto
// Nota: apenas os padrões realmente implementados estão listados aqui
var RedisKeyPatterns = map[string]RedisKeyPattern{
	// Conjunto de permissões efetivas por usuário (verificação rápida via SIsMember)
	"auth_permissoes": {Domain: "auth", Context: "permissoes", TTL: 3600},

	// Configuração de módulos do tenant (mapa chave -> bool)
	"cache_modulos_tenant": {Domain: "cache", Context: "modulos_tenant", TTL: 900},

	// Dados do tenant validados pelo middleware
	"cache_middleware": {Domain: "cache", Context: "middleware", TTL: 900},
}

// GenerateKey gera uma chave segundo a convenção:
// gestor_igrejas_{tenant}_{domain}_{context}:{identifier}
func (rkg *RedisKeyGenerator) GenerateKey(patternName, tenantCode string, identifier ...string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("padrão Redis não encontrado: %s", patternName)
	}

	if tenantCode == "" {
		return "", fmt.Errorf("código do tenant obrigatório para geração de chave")
	}
	if !rkg.isValidTenantCode(tenantCode) {
		return "", fmt.Errorf("código de tenant inválido: %s", tenantCode)
	}

	prefix := fmt.Sprintf("gestor_igrejas_%s_%s_%s", tenantCode, pattern.Domain, pattern.Context)

	if len(identifier) > 0 {
		identifierStr := strings.Join(identifier, "_")
		return fmt.Sprintf("%s:%s", prefix, identifierStr), nil
	}

	// Sem identifier, retorna apenas o prefixo (chaves singleton)
	return prefix, nil
}

// GetTTL retorna o TTL de um padrão
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (int, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return 0, fmt.Errorf("padrão Redis não encontrado: %s", patternName)
	}
	return pattern.TTL, nil
}

// GenerateWildcardPattern gera um padrão curinga para invalidação em massa
func (rkg *RedisKeyGenerator) GenerateWildcardPattern(tenantCode, domain, context string) string {
	return fmt.Sprintf("gestor_igrejas_%s_%s_%s*", tenantCode, domain, context)
}

// ValidateKey valida uma chave segundo a convenção do projeto
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if !strings.HasPrefix(key, "gestor_igrejas_") {
		return fmt.Errorf("chave fora da convenção (prefixo gestor_igrejas_ ausente): %s", key)
	}
	if len(key) > 256 {
		return fmt.Errorf("chave excede o tamanho máximo de 256 caracteres")
	}
	return nil
}

// isValidTenantCode valida o formato do código do tenant
// Alfanumérico minúsculo com hífens, 3-30 caracteres
func (rkg *RedisKeyGenerator) isValidTenantCode(code string) bool {
	matched, _ := regexp.MatchString(`^[a-z0-9][a-z0-9-]{2,29}$`, code)
	return matched
}
