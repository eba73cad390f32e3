package services

import (
	"context"

	"gestor-igrejas-core/internal/app/config"
	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	"gestor-igrejas-core/internal/infrastructure/database/redis"
	"gestor-igrejas-core/internal/modules/catalogo"
	"gestor-igrejas-core/internal/modules/system/dto"
)

const (
	nomeAplicacao   = "gestor-igrejas-core"
	versaoAplicacao = "1.0.0"
)

type SystemService struct {
	db     *postgres.Client
	redis  *redis.Client
	config *config.Config
}

func NewSystemService(db *postgres.Client, redisClient *redis.Client, config *config.Config) *SystemService {
	return &SystemService{
		db:     db,
		redis:  redisClient,
		config: config,
	}
}

// Info monta as informações da instância: identidade, modo de implantação
// e o catálogo de módulos compilado no binário
func (s *SystemService) Info() *dto.SystemInfoResponse {
	return &dto.SystemInfoResponse{
		Aplicacao: dto.AplicacaoInfo{
			Nome:     nomeAplicacao,
			Versao:   versaoAplicacao,
			Ambiente: s.config.Environment,
		},
		MultiTenant: s.config.Sistema.MultiTenant,
		Catalogo:    s.montarCatalogo(),
	}
}

// Health verifica a conectividade das dependências de infraestrutura
func (s *SystemService) Health(ctx context.Context) *dto.HealthResponse {
	servicos := map[string]string{
		"postgresql": "ok",
		"redis":      "ok",
	}
	status := "ok"

	if err := s.db.Ping(ctx); err != nil {
		servicos["postgresql"] = "indisponivel"
		status = "degraded"
	}
	if err := s.redis.Ping(ctx); err != nil {
		servicos["redis"] = "indisponivel"
		status = "degraded"
	}

	return &dto.HealthResponse{
		Status:   status,
		Servicos: servicos,
	}
}

// montarCatalogo serializa o registro de módulos para o contrato HTTP
func (s *SystemService) montarCatalogo() dto.CatalogoInfo {
	modulos := catalogo.ListarModulos()

	info := dto.CatalogoInfo{
		TotalModulos: len(modulos),
		Acoes:        acoesParaStrings(catalogo.Acoes()),
		Modulos:      make([]dto.ModuloInfo, 0, len(modulos)),
	}

	for _, m := range modulos {
		info.Modulos = append(info.Modulos, dto.ModuloInfo{
			Chave:             m.Chave,
			Nome:              m.Nome,
			Obrigatorio:       m.Obrigatorio,
			EscopoCongregacao: catalogo.EscopoCongregacao(m.Chave),
			Acoes:             acoesParaStrings(m.Acoes),
			Submodulos:        submodulosParaDTO(m.Submodulos),
		})
	}

	return info
}

func submodulosParaDTO(subs []catalogo.Submodulo) []dto.SubmoduloInfo {
	if len(subs) == 0 {
		return nil
	}
	out := make([]dto.SubmoduloInfo, 0, len(subs))
	for _, s := range subs {
		out = append(out, dto.SubmoduloInfo{
			Chave:      s.Chave,
			Nome:       s.Nome,
			Acoes:      acoesParaStrings(s.Acoes),
			Submodulos: submodulosParaDTO(s.Submodulos),
		})
	}
	return out
}

func acoesParaStrings(acoes []catalogo.Acao) []string {
	out := make([]string, 0, len(acoes))
	for _, a := range acoes {
		out = append(out, string(a))
	}
	return out
}
