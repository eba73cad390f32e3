package services

import (
	autzdto "gestor-igrejas-core/internal/modules/autorizacao/dto"
	"gestor-igrejas-core/internal/modules/financeiro/contaspagar/dto"
)

// Máquina de estados da cadeia de aprovação:
// pending_management -> pending_director -> pending_president -> approved -> paid,
// com rejected alcançável de qualquer estado pendente. Cadeia linear — sem
// aprovação paralela e sem retorno de rejected para a cadeia.

// nivelPorStatus mapeia cada status pendente à alçada que ele aguarda
var nivelPorStatus = map[dto.Status]dto.NivelAprovacao{
	dto.StatusPendenteGerencia:    dto.NivelGerencia,
	dto.StatusPendenteDiretoria:   dto.NivelDiretoria,
	dto.StatusPendentePresidencia: dto.NivelPresidencia,
}

// proximoStatus mapeia cada status pendente ao sucessor na cadeia
var proximoStatus = map[dto.Status]dto.Status{
	dto.StatusPendenteGerencia:    dto.StatusPendenteDiretoria,
	dto.StatusPendenteDiretoria:   dto.StatusPendentePresidencia,
	dto.StatusPendentePresidencia: dto.StatusAprovada,
}

// alcadasPorPapel é a tabela papel -> alçadas permitidas.
// admin e superadmin operam em qualquer alçada; os demais papéis sem
// entrada não aprovam nada.
var alcadasPorPapel = map[autzdto.Papel][]dto.NivelAprovacao{
	autzdto.PapelGerente:    {dto.NivelGerencia},
	autzdto.PapelDiretor:    {dto.NivelDiretoria},
	autzdto.PapelPresidente: {dto.NivelPresidencia},
	autzdto.PapelAdmin:      {dto.NivelGerencia, dto.NivelDiretoria, dto.NivelPresidencia},
	autzdto.PapelSuperadmin: {dto.NivelGerencia, dto.NivelDiretoria, dto.NivelPresidencia},
}

// NivelExigido retorna a alçada que o status aguarda; false quando o
// registro não está aguardando aprovação
func NivelExigido(status dto.Status) (dto.NivelAprovacao, bool) {
	nivel, existe := nivelPorStatus[status]
	return nivel, existe
}

// NiveisPermitidos retorna as alçadas que o papel pode exercer
func NiveisPermitidos(papel autzdto.Papel) []dto.NivelAprovacao {
	return alcadasPorPapel[papel]
}

// PodeAprovar decide se o papel pode agir sobre o status atual.
// Papel vazio ou desconhecido nunca aprova.
func PodeAprovar(papel autzdto.Papel, status dto.Status) bool {
	exigido, aguardando := NivelExigido(status)
	if !aguardando {
		return false
	}
	for _, nivel := range NiveisPermitidos(papel) {
		if nivel == exigido {
			return true
		}
	}
	return false
}

// ProximoStatus retorna o sucessor do status pendente na cadeia de
// aprovação; false quando o status não é pendente
func ProximoStatus(status dto.Status) (dto.Status, bool) {
	novo, existe := proximoStatus[status]
	return novo, existe
}
