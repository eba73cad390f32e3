package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	"gestor-igrejas-core/internal/infrastructure/database/redis"
	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/autorizacao/queries"
	"gestor-igrejas-core/internal/modules/catalogo"
)

// padraoPorPlano é a tabela plano -> conjunto padrão de módulos,
// construída uma única vez a partir do catálogo
var padraoPorPlano = construirPadraoPorPlano()

func construirPadraoPorPlano() map[catalogo.Plano]map[string]bool {
	tabela := make(map[catalogo.Plano]map[string]bool, len(catalogo.ModulosPadraoPorPlano))
	for plano, chaves := range catalogo.ModulosPadraoPorPlano {
		conjunto := make(map[string]bool, len(chaves))
		for _, chave := range chaves {
			conjunto[chave] = true
		}
		tabela[plano] = conjunto
	}
	return tabela
}

type ModulosTenantService struct {
	db          *postgres.Client
	redisClient *redis.Client
}

// NewModulosTenantService cria uma nova instância do resolvedor de módulos por tenant
func NewModulosTenantService(db *postgres.Client, redisClient *redis.Client) *ModulosTenantService {
	return &ModulosTenantService{
		db:          db,
		redisClient: redisClient,
	}
}

// ModuloHabilitado decide se o módulo está habilitado para o tenant.
// Política, em ordem: (1) sem contexto de tenant => sempre true (organização
// única); (2) módulo de núcleo => sempre true, mesmo com override explícito
// false; (3) entrada explícita na configuração => seu valor; (4) fallback
// para o conjunto padrão do plano. Chave desconhecida => false.
func (s *ModulosTenantService) ModuloHabilitado(tenant *dto.TenantContext, config dto.ConfigModulos, chave string) bool {
	if tenant == nil {
		return true
	}

	if catalogo.ModuloObrigatorio(chave) {
		return true
	}

	if habilitado, existe := config[chave]; existe {
		return habilitado
	}

	return s.ModulosPadraoDoPlano(tenant.Plano)[chave]
}

// ModulosPadraoDoPlano retorna o conjunto padrão de módulos do plano.
// Planos desconhecidos caem no conjunto do plano free.
func (s *ModulosTenantService) ModulosPadraoDoPlano(plano catalogo.Plano) map[string]bool {
	if conjunto, existe := padraoPorPlano[plano]; existe {
		return conjunto
	}
	return padraoPorPlano[catalogo.PlanoFree]
}

// ModulosHabilitados filtra o catálogo pelos módulos habilitados para o tenant
func (s *ModulosTenantService) ModulosHabilitados(tenant *dto.TenantContext, config dto.ConfigModulos) []catalogo.Modulo {
	var habilitados []catalogo.Modulo
	for _, m := range catalogo.ListarModulos() {
		if s.ModuloHabilitado(tenant, config, m.Chave) {
			habilitados = append(habilitados, m)
		}
	}
	return habilitados
}

// ModulosDesabilitados filtra o catálogo pelos módulos desabilitados para o tenant
func (s *ModulosTenantService) ModulosDesabilitados(tenant *dto.TenantContext, config dto.ConfigModulos) []catalogo.Modulo {
	var desabilitados []catalogo.Modulo
	for _, m := range catalogo.ListarModulos() {
		if !s.ModuloHabilitado(tenant, config, m.Chave) {
			desabilitados = append(desabilitados, m)
		}
	}
	return desabilitados
}

// CarregarConfigModulos recupera o mapa de habilitação do tenant.
// Cache Redis com fallback PostgreSQL; ausência de linha => mapa vazio
// (o resolvedor cai nos padrões do plano).
func (s *ModulosTenantService) CarregarConfigModulos(ctx context.Context, tenant *dto.TenantContext) (dto.ConfigModulos, error) {
	if tenant == nil {
		return dto.ConfigModulos{}, nil
	}

	if cached, err := s.redisClient.GetWithPattern(ctx, "cache_modulos_tenant", tenant.Codigo); err == nil {
		var config dto.ConfigModulos
		if err := json.Unmarshal([]byte(cached), &config); err == nil {
			return config, nil
		}
	}

	config := dto.ConfigModulos{}
	var valorJSON []byte
	err := s.db.QueryRow(ctx, queries.TenantQueries.GetConfigModulos, tenant.ID).Scan(&valorJSON)
	if err != nil {
		// Sem linha de configuração é o caso normal: padrões do plano
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("erro na recuperação da configuração de módulos: %w", err)
		}
	} else if len(valorJSON) > 0 {
		if err := json.Unmarshal(valorJSON, &config); err != nil {
			return nil, fmt.Errorf("configuração de módulos inválida: %w", err)
		}
	}

	if data, err := json.Marshal(config); err == nil {
		s.redisClient.SetWithPattern(ctx, "cache_modulos_tenant", tenant.Codigo, string(data))
	}

	return config, nil
}

// SalvarConfigModulos grava o mapa de habilitação do tenant.
// Chaves fora do catálogo são rejeitadas; módulos de núcleo são forçados
// a true — o override persistido nunca consegue desabilitá-los.
func (s *ModulosTenantService) SalvarConfigModulos(ctx context.Context, tenant *dto.TenantContext, config dto.ConfigModulos) error {
	if tenant == nil {
		return dto.NewValidacao("configuração de módulos exige contexto de tenant", nil)
	}

	normalizada := dto.ConfigModulos{}
	for chave, habilitado := range config {
		if _, existe := catalogo.BuscarModulo(chave); !existe {
			return dto.NewValidacao("módulo desconhecido na configuração", map[string]interface{}{
				"modulo": chave,
			})
		}
		if catalogo.ModuloObrigatorio(chave) {
			normalizada[chave] = true
			continue
		}
		normalizada[chave] = habilitado
	}

	valorJSON, err := json.Marshal(normalizada)
	if err != nil {
		return fmt.Errorf("erro na serialização da configuração: %w", err)
	}

	if err := s.db.Exec(ctx, queries.TenantQueries.UpsertConfigModulos, tenant.ID, valorJSON); err != nil {
		return fmt.Errorf("erro na gravação da configuração de módulos: %w", err)
	}

	// Invalidar o cache — leitores passam a ver a nova configuração
	s.redisClient.DelWithPattern(ctx, "cache_modulos_tenant", tenant.Codigo)

	return nil
}

// BuscarTenantPorCodigo recupera o tenant pelo código (usado pelo middleware)
func (s *ModulosTenantService) BuscarTenantPorCodigo(ctx context.Context, codigo string) (*dto.TenantContext, error) {
	var tenant dto.TenantContext
	err := s.db.QueryRow(ctx, queries.TenantQueries.GetTenantPorCodigo, codigo).
		Scan(&tenant.ID, &tenant.Codigo, &tenant.Plano, &tenant.Ativo)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
