package dto

// SystemInfoResponse descreve a instância em execução: identidade da
// aplicação, modo de implantação e o catálogo de módulos compilado
type SystemInfoResponse struct {
	Aplicacao   AplicacaoInfo `json:"aplicacao"`
	MultiTenant bool          `json:"multi_tenant"`
	Catalogo    CatalogoInfo  `json:"catalogo"`
}

// AplicacaoInfo identidade e versão da aplicação
type AplicacaoInfo struct {
	Nome     string `json:"nome"`
	Versao   string `json:"versao"`
	Ambiente string `json:"ambiente"`
}

// CatalogoInfo resumo do catálogo de módulos
type CatalogoInfo struct {
	TotalModulos int          `json:"total_modulos"`
	Acoes        []string     `json:"acoes"`
	Modulos      []ModuloInfo `json:"modulos"`
}

// ModuloInfo entrada do catálogo serializada para o frontend
type ModuloInfo struct {
	Chave             string         `json:"chave"`
	Nome              string         `json:"nome"`
	Obrigatorio       bool           `json:"obrigatorio"`
	EscopoCongregacao bool           `json:"escopo_congregacao"`
	Acoes             []string       `json:"acoes"`
	Submodulos        []SubmoduloInfo `json:"submodulos,omitempty"`
}

// SubmoduloInfo entrada de submódulo (recursiva até o terceiro nível)
type SubmoduloInfo struct {
	Chave      string          `json:"chave"`
	Nome       string          `json:"nome"`
	Acoes      []string        `json:"acoes"`
	Submodulos []SubmoduloInfo `json:"submodulos,omitempty"`
}

// HealthResponse estado das dependências de infraestrutura
type HealthResponse struct {
	Status   string            `json:"status"`
	Servicos map[string]string `json:"servicos"`
}
