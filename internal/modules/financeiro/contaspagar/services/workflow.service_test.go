package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/dto"
)

func TestNivelExigido(t *testing.T) {
	nivel, aguardando := NivelExigido(dto.StatusPendenteGerencia)
	require.True(t, aguardando)
	assert.Equal(t, dto.NivelGerencia, nivel)

	nivel, aguardando = NivelExigido(dto.StatusPendenteDiretoria)
	require.True(t, aguardando)
	assert.Equal(t, dto.NivelDiretoria, nivel)

	nivel, aguardando = NivelExigido(dto.StatusPendentePresidencia)
	require.True(t, aguardando)
	assert.Equal(t, dto.NivelPresidencia, nivel)

	for _, status := range []dto.Status{dto.StatusAprovada, dto.StatusPaga, dto.StatusRejeitada} {
		_, aguardando = NivelExigido(status)
		assert.False(t, aguardando, "status %s não aguarda alçada", status)
	}
}

func TestPodeAprovar(t *testing.T) {
	tests := []struct {
		papel  autzdto.Papel
		status dto.Status
		espera bool
	}{
		{autzdto.PapelGerente, dto.StatusPendenteGerencia, true},
		{autzdto.PapelGerente, dto.StatusPendenteDiretoria, false},
		{autzdto.PapelGerente, dto.StatusPendentePresidencia, false},
		{autzdto.PapelDiretor, dto.StatusPendenteGerencia, false},
		{autzdto.PapelDiretor, dto.StatusPendenteDiretoria, true},
		{autzdto.PapelPresidente, dto.StatusPendentePresidencia, true},
		{autzdto.PapelPresidente, dto.StatusPendenteGerencia, false},
		{autzdto.PapelAdmin, dto.StatusPendenteGerencia, true},
		{autzdto.PapelAdmin, dto.StatusPendenteDiretoria, true},
		{autzdto.PapelAdmin, dto.StatusPendentePresidencia, true},
		{autzdto.PapelSuperadmin, dto.StatusPendentePresidencia, true},
		{autzdto.PapelFinance, dto.StatusPendenteGerencia, false},
		{autzdto.PapelWorker, dto.StatusPendenteGerencia, false},
		{autzdto.PapelPastor, dto.StatusPendenteDiretoria, false},
		{"", dto.StatusPendenteGerencia, false},
		// Status fora da cadeia pendente nunca aceita aprovação
		{autzdto.PapelAdmin, dto.StatusAprovada, false},
		{autzdto.PapelAdmin, dto.StatusRejeitada, false},
		{autzdto.PapelAdmin, dto.StatusPaga, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.espera, PodeAprovar(tt.papel, tt.status),
			"papel=%s status=%s", tt.papel, tt.status)
	}
}

func TestProximoStatus(t *testing.T) {
	novo, ok := ProximoStatus(dto.StatusPendenteGerencia)
	require.True(t, ok)
	assert.Equal(t, dto.StatusPendenteDiretoria, novo)

	novo, ok = ProximoStatus(dto.StatusPendenteDiretoria)
	require.True(t, ok)
	assert.Equal(t, dto.StatusPendentePresidencia, novo)

	novo, ok = ProximoStatus(dto.StatusPendentePresidencia)
	require.True(t, ok)
	assert.Equal(t, dto.StatusAprovada, novo)

	for _, status := range []dto.Status{dto.StatusAprovada, dto.StatusPaga, dto.StatusRejeitada} {
		_, ok = ProximoStatus(status)
		assert.False(t, ok, "status %s não tem sucessor", status)
	}
}

func TestStatusPendenteETerminal(t *testing.T) {
	assert.True(t, dto.StatusPendenteGerencia.Pendente())
	assert.True(t, dto.StatusPendentePresidencia.Pendente())
	assert.False(t, dto.StatusAprovada.Pendente())
	assert.False(t, dto.StatusRejeitada.Pendente())

	assert.True(t, dto.StatusPaga.Terminal())
	assert.True(t, dto.StatusRejeitada.Terminal())
	assert.False(t, dto.StatusAprovada.Terminal())
	assert.False(t, dto.StatusPendenteGerencia.Terminal())
}
