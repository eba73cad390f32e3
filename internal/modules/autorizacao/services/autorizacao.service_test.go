package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/catalogo"
)

type permissoesFake struct {
	concedida bool
	err       error
	chamadas  int
}

func (f *permissoesFake) VerificarPermissao(ctx context.Context, tenant *dto.TenantContext, userID, modulo, submodulo, subSubmodulo string, acao catalogo.Acao) (bool, error) {
	f.chamadas++
	return f.concedida, f.err
}

type modulosFake struct {
	habilitado bool
	err        error
}

func (f *modulosFake) CarregarConfigModulos(ctx context.Context, tenant *dto.TenantContext) (dto.ConfigModulos, error) {
	return dto.ConfigModulos{}, f.err
}

func (f *modulosFake) ModuloHabilitado(tenant *dto.TenantContext, config dto.ConfigModulos, chave string) bool {
	return f.habilitado
}

type congregacoesFake struct {
	acesso dto.AcessoCongregacoes
	// alvoInexistente simula congregação alvo desconhecida ou inativa no
	// caminho de acesso irrestrito
	alvoInexistente bool
	chamadas        int
}

func (f *congregacoesFake) ResolverAcesso(ctx context.Context, ator dto.Ator, tenant *dto.TenantContext, modulo string) dto.AcessoCongregacoes {
	f.chamadas++
	return f.acesso
}

func (f *congregacoesFake) AlcancaCongregacao(ctx context.Context, acesso dto.AcessoCongregacoes, congregacaoID string) bool {
	if !acesso.TemAcesso {
		return false
	}
	if len(acesso.Congregacoes) > 0 {
		for _, c := range acesso.Congregacoes {
			if c.ID == congregacaoID {
				return true
			}
		}
		return false
	}
	return !f.alvoInexistente
}

func fachada(permissoes *permissoesFake, modulos *modulosFake, congregacoes *congregacoesFake) *AutorizacaoService {
	return &AutorizacaoService{
		permissaoService: permissoes,
		modulosService:   modulos,
		congregacaoSvc:   congregacoes,
	}
}

func pedidoBase() PedidoAutorizacao {
	return PedidoAutorizacao{
		Ator:   dto.Ator{UserID: "33333333-3333-3333-3333-333333333333", Papel: dto.PapelFinance},
		Modulo: "financeiro",
		Acao:   "view",
	}
}

func TestAutorizarModuloDesabilitadoVetaAntesDaPermissao(t *testing.T) {
	permissoes := &permissoesFake{concedida: true}
	s := fachada(permissoes, &modulosFake{habilitado: false}, &congregacoesFake{})

	decisao, err := s.Autorizar(context.Background(), pedidoBase())
	require.NoError(t, err)
	assert.False(t, decisao.Permitido)
	assert.Equal(t, dto.MotivoModuloDesabilitado, decisao.Motivo)

	// A matriz de permissões nem chega a ser consultada
	assert.Zero(t, permissoes.chamadas)
}

func TestAutorizarSemConcessao(t *testing.T) {
	s := fachada(&permissoesFake{concedida: false}, &modulosFake{habilitado: true}, &congregacoesFake{})

	decisao, err := s.Autorizar(context.Background(), pedidoBase())
	require.NoError(t, err)
	assert.False(t, decisao.Permitido)
	assert.Equal(t, dto.MotivoSemPermissao, decisao.Motivo)
}

func TestAutorizarSemAlvoCongregacionalNaoResolveEscopo(t *testing.T) {
	congregacoes := &congregacoesFake{acesso: dto.AcessoCongregacoes{TemAcesso: false}}
	s := fachada(&permissoesFake{concedida: true}, &modulosFake{habilitado: true}, congregacoes)

	decisao, err := s.Autorizar(context.Background(), pedidoBase())
	require.NoError(t, err)
	assert.True(t, decisao.Permitido)
	assert.Zero(t, congregacoes.chamadas)
}

func TestAutorizarModuloForaDoEscopoIgnoraAlvo(t *testing.T) {
	congregacoes := &congregacoesFake{acesso: dto.AcessoCongregacoes{TemAcesso: false}}
	s := fachada(&permissoesFake{concedida: true}, &modulosFake{habilitado: true}, congregacoes)

	pedido := pedidoBase()
	pedido.Modulo = "membros"
	pedido.CongregacaoID = "c1"

	decisao, err := s.Autorizar(context.Background(), pedido)
	require.NoError(t, err)
	assert.True(t, decisao.Permitido)
	assert.Zero(t, congregacoes.chamadas)
}

func TestAutorizarEscopoCongregacional(t *testing.T) {
	tests := []struct {
		nome          string
		acesso        dto.AcessoCongregacoes
		congregacaoID string
		permitido     bool
	}{
		{
			nome:          "sem acesso congregacional",
			acesso:        dto.AcessoCongregacoes{TemAcesso: false},
			congregacaoID: "c1",
			permitido:     false,
		},
		{
			nome:          "acesso irrestrito alcança qualquer congregação",
			acesso:        dto.AcessoCongregacoes{TemAcesso: true},
			congregacaoID: "c1",
			permitido:     true,
		},
		{
			nome: "congregação alvo dentro do alcance",
			acesso: dto.AcessoCongregacoes{
				TemAcesso:    true,
				Congregacoes: []dto.Congregacao{{ID: "c1"}, {ID: "c2"}},
			},
			congregacaoID: "c2",
			permitido:     true,
		},
		{
			nome: "congregação alvo fora do alcance",
			acesso: dto.AcessoCongregacoes{
				TemAcesso:    true,
				Congregacoes: []dto.Congregacao{{ID: "c1"}},
			},
			congregacaoID: "c9",
			permitido:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			s := fachada(&permissoesFake{concedida: true}, &modulosFake{habilitado: true},
				&congregacoesFake{acesso: tt.acesso})

			pedido := pedidoBase()
			pedido.CongregacaoID = tt.congregacaoID

			decisao, err := s.Autorizar(context.Background(), pedido)
			require.NoError(t, err)
			assert.Equal(t, tt.permitido, decisao.Permitido)
			if !tt.permitido {
				assert.Equal(t, dto.MotivoEscopoCongregacao, decisao.Motivo)
			}
		})
	}
}

func TestAutorizarAlvoDesconhecidoNegadoMesmoIrrestrito(t *testing.T) {
	congregacoes := &congregacoesFake{
		acesso:          dto.AcessoCongregacoes{TemAcesso: true},
		alvoInexistente: true,
	}
	s := fachada(&permissoesFake{concedida: true}, &modulosFake{habilitado: true}, congregacoes)

	pedido := pedidoBase()
	pedido.Ator.Papel = dto.PapelAdmin
	pedido.CongregacaoID = "99999999-9999-9999-9999-999999999999"

	decisao, err := s.Autorizar(context.Background(), pedido)
	require.NoError(t, err)
	assert.False(t, decisao.Permitido)
	assert.Equal(t, dto.MotivoEscopoCongregacao, decisao.Motivo)
}

func TestAutorizarOuErro(t *testing.T) {
	s := fachada(&permissoesFake{concedida: false}, &modulosFake{habilitado: true}, &congregacoesFake{})

	err := s.AutorizarOuErro(context.Background(), pedidoBase())
	require.Error(t, err)

	var svcErr *dto.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, dto.ErroTipoPolicyDenied, svcErr.Type)
	assert.Equal(t, dto.MotivoSemPermissao, svcErr.Details["motivo"])

	s = fachada(&permissoesFake{concedida: true}, &modulosFake{habilitado: true}, &congregacoesFake{})
	assert.NoError(t, s.AutorizarOuErro(context.Background(), pedidoBase()))
}
