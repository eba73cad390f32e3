package catalogo

// Registro estático de módulos, submódulos e ações do sistema.
// É a única fonte do universo de capacidades verificáveis: tudo que não
// consta aqui é negado pelos resolvedores de autorização.

// Acao é uma operação permitida sobre um caminho de módulo.
// Os valores são os tokens persistidos — não traduzir.
type Acao string

const (
	AcaoView             Acao = "view"
	AcaoInsert           Acao = "insert"
	AcaoEdit             Acao = "edit"
	AcaoInactivate       Acao = "inactivate"
	AcaoApprove          Acao = "approve"
	AcaoExport           Acao = "export"
	AcaoSendNotification Acao = "send_notification"
)

// Acoes retorna a enumeração completa de ações, na ordem de exibição
func Acoes() []Acao {
	return []Acao{
		AcaoView,
		AcaoInsert,
		AcaoEdit,
		AcaoInactivate,
		AcaoApprove,
		AcaoExport,
		AcaoSendNotification,
	}
}

// AcaoValida informa se o token pertence à enumeração de ações
func AcaoValida(a Acao) bool {
	switch a {
	case AcaoView, AcaoInsert, AcaoEdit, AcaoInactivate, AcaoApprove, AcaoExport, AcaoSendNotification:
		return true
	}
	return false
}

// Submodulo é um agrupamento de capacidades abaixo de um módulo.
// Pode ter um nível adicional de aninhamento (sub-submódulos).
type Submodulo struct {
	Chave      string      `json:"chave"`
	Nome       string      `json:"nome"`
	Acoes      []Acao      `json:"acoes"`
	Submodulos []Submodulo `json:"submodulos,omitempty"`
}

// Modulo é a raiz de um agrupamento de capacidades
type Modulo struct {
	Chave       string      `json:"chave"`
	Nome        string      `json:"nome"`
	Acoes       []Acao      `json:"acoes"`
	Submodulos  []Submodulo `json:"submodulos,omitempty"`
	Obrigatorio bool        `json:"obrigatorio"` // nunca pode ser desabilitado por tenant
}

// Plano identifica o plano de assinatura de um tenant.
// Os valores são os tokens persistidos.
type Plano string

const (
	PlanoFree       Plano = "free"
	PlanoBasic      Plano = "basic"
	PlanoPro        Plano = "pro"
	PlanoEnterprise Plano = "enterprise"
)

// registro é o catálogo completo. A ordem é a ordem de exibição.
var registro = []Modulo{
	{
		Chave:       "dashboard",
		Nome:        "Dashboard",
		Acoes:       []Acao{AcaoView, AcaoExport},
		Obrigatorio: true,
	},
	{
		Chave:       "configuracoes",
		Nome:        "Configurações",
		Acoes:       []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoInactivate},
		Obrigatorio: true,
	},
	{
		Chave: "membros",
		Nome:  "Membros",
		Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoInactivate, AcaoExport, AcaoSendNotification},
		Submodulos: []Submodulo{
			{
				Chave: "cadastro",
				Nome:  "Cadastro",
				Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoInactivate},
			},
			{
				Chave: "familias",
				Nome:  "Famílias",
				Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit},
			},
		},
	},
	{
		Chave: "eventos",
		Nome:  "Eventos",
		Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoInactivate, AcaoSendNotification},
	},
	{
		Chave: "congregacoes",
		Nome:  "Congregações",
		Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoInactivate},
	},
	{
		Chave: "financeiro",
		Nome:  "Financeiro",
		Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoExport},
		Submodulos: []Submodulo{
			{
				Chave: "despesas",
				Nome:  "Despesas",
				Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoInactivate},
				Submodulos: []Submodulo{
					{
						Chave: "categorias",
						Nome:  "Categorias de despesa",
						Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit},
					},
				},
			},
			{
				Chave: "receitas",
				Nome:  "Receitas",
				Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit},
			},
			{
				Chave: "dizimos",
				Nome:  "Dízimos e ofertas",
				Acoes: []Acao{AcaoView, AcaoInsert, AcaoExport},
			},
		},
	},
	{
		Chave: "contas-pagar",
		Nome:  "Contas a Pagar",
		Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoApprove, AcaoExport},
		Submodulos: []Submodulo{
			{
				Chave: "despesas",
				Nome:  "Despesas",
				Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoApprove},
			},
			{
				Chave: "fornecedores",
				Nome:  "Fornecedores",
				Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoInactivate},
			},
		},
	},
	{
		Chave: "conciliacoes",
		Nome:  "Conciliações Bancárias",
		Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoApprove},
	},
	{
		Chave: "relatorios",
		Nome:  "Relatórios",
		Acoes: []Acao{AcaoView, AcaoExport, AcaoSendNotification},
	},
	{
		Chave: "patrimonio",
		Nome:  "Patrimônio",
		Acoes: []Acao{AcaoView, AcaoInsert, AcaoEdit, AcaoInactivate},
	},
}

// modulosEscopoCongregacao é o conjunto fixo de módulos cuja visibilidade
// de dados é restrita por congregação (papel pastor)
var modulosEscopoCongregacao = map[string]bool{
	"financeiro":   true,
	"conciliacoes": true,
	"congregacoes": true,
}

// ModulosPadraoPorPlano mapeia cada plano para seu conjunto padrão de módulos.
// Planos desconhecidos caem no conjunto do plano free.
var ModulosPadraoPorPlano = map[Plano][]string{
	PlanoFree: {
		"dashboard", "configuracoes", "membros",
	},
	PlanoBasic: {
		"dashboard", "configuracoes", "membros", "eventos", "congregacoes",
	},
	PlanoPro: {
		"dashboard", "configuracoes", "membros", "eventos", "congregacoes",
		"financeiro", "contas-pagar", "conciliacoes", "relatorios",
	},
	PlanoEnterprise: {
		"dashboard", "configuracoes", "membros", "eventos", "congregacoes",
		"financeiro", "contas-pagar", "conciliacoes", "relatorios", "patrimonio",
	},
}

// ListarModulos retorna o catálogo completo na ordem de exibição
func ListarModulos() []Modulo {
	modulos := make([]Modulo, len(registro))
	copy(modulos, registro)
	return modulos
}

// BuscarModulo localiza um módulo pela chave
func BuscarModulo(chave string) (Modulo, bool) {
	for _, m := range registro {
		if m.Chave == chave {
			return m, true
		}
	}
	return Modulo{}, false
}

// AcaoAplicavel informa se a ação existe no caminho indicado do catálogo.
// caminhoSubmodulo vazio verifica a ação no próprio módulo; com um elemento,
// no submódulo; com dois, no sub-submódulo. Caminho inexistente => false.
func AcaoAplicavel(chaveModulo string, caminhoSubmodulo []string, acao Acao) bool {
	modulo, ok := BuscarModulo(chaveModulo)
	if !ok {
		return false
	}

	if len(caminhoSubmodulo) == 0 {
		return contemAcao(modulo.Acoes, acao)
	}

	submodulos := modulo.Submodulos
	var atual *Submodulo
	for _, chave := range caminhoSubmodulo {
		atual = nil
		for i := range submodulos {
			if submodulos[i].Chave == chave {
				atual = &submodulos[i]
				break
			}
		}
		if atual == nil {
			return false
		}
		submodulos = atual.Submodulos
	}

	return contemAcao(atual.Acoes, acao)
}

// ModuloObrigatorio informa se o módulo é de núcleo (jamais desabilitável)
func ModuloObrigatorio(chave string) bool {
	m, ok := BuscarModulo(chave)
	return ok && m.Obrigatorio
}

// EscopoCongregacao informa se o módulo tem visibilidade restrita por congregação
func EscopoCongregacao(chave string) bool {
	return modulosEscopoCongregacao[chave]
}

func contemAcao(acoes []Acao, acao Acao) bool {
	for _, a := range acoes {
		if a == acao {
			return true
		}
	}
	return false
}
