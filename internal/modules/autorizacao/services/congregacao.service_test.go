package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor-igrejas-core/internal/modules/autorizacao/dto"
)

type lookupFake struct {
	congregacoes []dto.Congregacao
	porID        map[string]*dto.Congregacao
	err          error
	chamadas     int
}

func (f *lookupFake) CongregacoesDoPastor(ctx context.Context, userID string, tenantID *string) ([]dto.Congregacao, error) {
	f.chamadas++
	return f.congregacoes, f.err
}

func (f *lookupFake) CongregacaoPorID(ctx context.Context, congregacaoID string) (*dto.Congregacao, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.porID[congregacaoID], nil
}

func atorDePapel(papel dto.Papel) dto.Ator {
	return dto.Ator{UserID: "22222222-2222-2222-2222-222222222222", Papel: papel}
}

func TestResolverAcessoModuloSemEscopo(t *testing.T) {
	lookup := &lookupFake{}
	s := NewCongregacaoService(lookup)

	// Módulo fora do conjunto congregacional: acesso livre, sem consulta
	acesso := s.ResolverAcesso(context.Background(), atorDePapel(dto.PapelWorker), nil, "membros")
	assert.True(t, acesso.TemAcesso)
	assert.Empty(t, acesso.Congregacoes)
	assert.Zero(t, lookup.chamadas)
}

func TestResolverAcessoAdminIrrestrito(t *testing.T) {
	lookup := &lookupFake{}
	s := NewCongregacaoService(lookup)

	for _, papel := range []dto.Papel{dto.PapelAdmin, dto.PapelSuperadmin} {
		acesso := s.ResolverAcesso(context.Background(), atorDePapel(papel), nil, "financeiro")
		assert.True(t, acesso.TemAcesso, "papel %s", papel)
		assert.Empty(t, acesso.Congregacoes, "papel %s", papel)
	}
	assert.Zero(t, lookup.chamadas)
}

func TestResolverAcessoPastorComCongregacoes(t *testing.T) {
	lookup := &lookupFake{
		congregacoes: []dto.Congregacao{
			{ID: "c1", Nome: "Congregação Norte", Ativa: true},
			{ID: "c2", Nome: "Congregação Sul", Ativa: true},
		},
	}
	s := NewCongregacaoService(lookup)

	acesso := s.ResolverAcesso(context.Background(), atorDePapel(dto.PapelPastor), nil, "financeiro")
	require.True(t, acesso.TemAcesso)
	assert.Len(t, acesso.Congregacoes, 2)
	assert.Equal(t, 1, lookup.chamadas)
}

func TestResolverAcessoPastorSemCongregacoes(t *testing.T) {
	s := NewCongregacaoService(&lookupFake{})

	acesso := s.ResolverAcesso(context.Background(), atorDePapel(dto.PapelPastor), nil, "conciliacoes")
	assert.False(t, acesso.TemAcesso)
	assert.Empty(t, acesso.Congregacoes)
}

func TestResolverAcessoFalhaNaConsultaNegaAcesso(t *testing.T) {
	lookup := &lookupFake{err: errors.New("conexão recusada")}
	s := NewCongregacaoService(lookup)

	// Falha de infraestrutura nunca vira acesso total
	acesso := s.ResolverAcesso(context.Background(), atorDePapel(dto.PapelPastor), nil, "financeiro")
	assert.False(t, acesso.TemAcesso)
}

func TestResolverAcessoDemaisPapeisSemAcesso(t *testing.T) {
	lookup := &lookupFake{}
	s := NewCongregacaoService(lookup)

	for _, papel := range []dto.Papel{dto.PapelFinance, dto.PapelWorker, dto.PapelGerente, "desconhecido"} {
		acesso := s.ResolverAcesso(context.Background(), atorDePapel(papel), nil, "congregacoes")
		assert.False(t, acesso.TemAcesso, "papel %s", papel)
	}
	assert.Zero(t, lookup.chamadas)
}

func TestAlcancaCongregacao(t *testing.T) {
	lookup := &lookupFake{
		porID: map[string]*dto.Congregacao{
			"c1": {ID: "c1", Nome: "Congregação Norte", Ativa: true},
			"c9": {ID: "c9", Nome: "Congregação Extinta", Ativa: false},
		},
	}
	s := NewCongregacaoService(lookup)
	ctx := context.Background()

	// Sem acesso: alvo irrelevante
	assert.False(t, s.AlcancaCongregacao(ctx, dto.AcessoCongregacoes{TemAcesso: false}, "c1"))

	// Lista explícita: decide por pertinência, sem consulta
	restrito := dto.AcessoCongregacoes{
		TemAcesso:    true,
		Congregacoes: []dto.Congregacao{{ID: "c1"}, {ID: "c2"}},
	}
	assert.True(t, s.AlcancaCongregacao(ctx, restrito, "c2"))
	assert.False(t, s.AlcancaCongregacao(ctx, restrito, "c3"))

	// Acesso irrestrito: o alvo ainda precisa existir e estar ativo
	irrestrito := dto.AcessoCongregacoes{TemAcesso: true}
	assert.True(t, s.AlcancaCongregacao(ctx, irrestrito, "c1"))
	assert.False(t, s.AlcancaCongregacao(ctx, irrestrito, "c9"))
	assert.False(t, s.AlcancaCongregacao(ctx, irrestrito, "inexistente"))
}

func TestAlcancaCongregacaoFalhaNaConsultaNega(t *testing.T) {
	s := NewCongregacaoService(&lookupFake{err: errors.New("conexão recusada")})

	acesso := dto.AcessoCongregacoes{TemAcesso: true}
	assert.False(t, s.AlcancaCongregacao(context.Background(), acesso, "c1"))
}

func TestEscoparConsulta(t *testing.T) {
	s := NewCongregacaoService(&lookupFake{})

	// Sem acesso: consulta vazia, nunca "todos"
	consulta := s.EscoparConsulta(dto.AcessoCongregacoes{TemAcesso: false}, "congregacao_id", 3)
	assert.True(t, consulta.Vazia)

	// Acesso irrestrito: sem fragmento WHERE
	consulta = s.EscoparConsulta(dto.AcessoCongregacoes{TemAcesso: true}, "congregacao_id", 3)
	assert.False(t, consulta.Vazia)
	assert.Empty(t, consulta.Where)

	// Acesso restrito: filtro parametrizado com os ids
	acesso := dto.AcessoCongregacoes{
		TemAcesso:    true,
		Congregacoes: []dto.Congregacao{{ID: "c1"}, {ID: "c2"}},
	}
	consulta = s.EscoparConsulta(acesso, "congregacao_id", 3)
	require.Len(t, consulta.Where, 1)
	assert.Equal(t, "congregacao_id = ANY($3)", consulta.Where[0])
	require.Len(t, consulta.Args, 1)
	assert.Equal(t, []string{"c1", "c2"}, consulta.Args[0])
}
