package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/catalogo"
)

func tenantDePlano(plano catalogo.Plano) *dto.TenantContext {
	return &dto.TenantContext{
		ID:     "11111111-1111-1111-1111-111111111111",
		Codigo: "igreja-teste",
		Plano:  plano,
		Ativo:  true,
	}
}

func TestModuloHabilitadoSemTenant(t *testing.T) {
	s := &ModulosTenantService{}

	// Organização única: tudo habilitado, inclusive chaves desconhecidas
	assert.True(t, s.ModuloHabilitado(nil, dto.ConfigModulos{}, "financeiro"))
	assert.True(t, s.ModuloHabilitado(nil, dto.ConfigModulos{"financeiro": false}, "financeiro"))
}

func TestModuloHabilitadoNucleoSempreAtivo(t *testing.T) {
	s := &ModulosTenantService{}
	tenant := tenantDePlano(catalogo.PlanoFree)

	// Override explícito false não desabilita módulo de núcleo
	config := dto.ConfigModulos{"dashboard": false, "configuracoes": false}
	assert.True(t, s.ModuloHabilitado(tenant, config, "dashboard"))
	assert.True(t, s.ModuloHabilitado(tenant, config, "configuracoes"))
}

func TestModuloHabilitadoConfigExplicita(t *testing.T) {
	s := &ModulosTenantService{}
	tenant := tenantDePlano(catalogo.PlanoBasic)

	config := dto.ConfigModulos{
		"financeiro": true,  // fora do padrão basic, habilitado por config
		"eventos":    false, // no padrão basic, desabilitado por config
	}

	assert.True(t, s.ModuloHabilitado(tenant, config, "financeiro"))
	assert.False(t, s.ModuloHabilitado(tenant, config, "eventos"))
}

func TestModuloHabilitadoPadraoDoPlano(t *testing.T) {
	s := &ModulosTenantService{}

	// Sem entrada na config, vale o conjunto padrão do plano
	assert.False(t, s.ModuloHabilitado(tenantDePlano(catalogo.PlanoBasic), dto.ConfigModulos{}, "financeiro"))
	assert.True(t, s.ModuloHabilitado(tenantDePlano(catalogo.PlanoBasic), dto.ConfigModulos{}, "eventos"))
	assert.True(t, s.ModuloHabilitado(tenantDePlano(catalogo.PlanoPro), dto.ConfigModulos{}, "contas-pagar"))
	assert.False(t, s.ModuloHabilitado(tenantDePlano(catalogo.PlanoPro), dto.ConfigModulos{}, "patrimonio"))
	assert.True(t, s.ModuloHabilitado(tenantDePlano(catalogo.PlanoEnterprise), dto.ConfigModulos{}, "patrimonio"))
}

func TestModuloHabilitadoPlanoDesconhecido(t *testing.T) {
	s := &ModulosTenantService{}
	tenant := tenantDePlano("trial")

	// Plano desconhecido cai no conjunto do free
	assert.True(t, s.ModuloHabilitado(tenant, dto.ConfigModulos{}, "membros"))
	assert.False(t, s.ModuloHabilitado(tenant, dto.ConfigModulos{}, "eventos"))
	assert.False(t, s.ModuloHabilitado(tenant, dto.ConfigModulos{}, "financeiro"))
}

func TestModuloHabilitadoChaveDesconhecida(t *testing.T) {
	s := &ModulosTenantService{}
	tenant := tenantDePlano(catalogo.PlanoEnterprise)

	assert.False(t, s.ModuloHabilitado(tenant, dto.ConfigModulos{}, "almoxarifado"))
}

func TestModulosHabilitadosEDesabilitadosParticionamOCatalogo(t *testing.T) {
	s := &ModulosTenantService{}
	tenant := tenantDePlano(catalogo.PlanoBasic)
	config := dto.ConfigModulos{"relatorios": true}

	habilitados := s.ModulosHabilitados(tenant, config)
	desabilitados := s.ModulosDesabilitados(tenant, config)

	assert.Len(t, habilitados, len(catalogo.ListarModulos())-len(desabilitados))

	chaves := map[string]bool{}
	for _, m := range habilitados {
		chaves[m.Chave] = true
	}
	assert.True(t, chaves["relatorios"])
	assert.True(t, chaves["dashboard"])
	assert.False(t, chaves["financeiro"])
}
