package metadomain

import (
	"github.com/vfg2006/meta-reporting-tap/internal/domain"
)

// User representa a resposta do endpoint /me da Graph API
type User struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging é o envelope de paginação da Graph API. A presença do link "next"
// indica que existe outra página.
type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// PagedResponse é o envelope padrão de respostas paginadas da Graph API
type PagedResponse struct {
	Data   []domain.RawInsightItem `json:"data"`
	Paging *Paging                 `json:"paging,omitempty"`
}

// FetchStatus indica o desfecho de uma busca paginada
type FetchStatus string

const (
	// FetchComplete indica que todas as páginas foram lidas
	FetchComplete FetchStatus = "complete"
	// FetchPartial indica que a busca foi interrompida por erro depois de
	// acumular alguns itens; os itens acumulados são considerados utilizáveis
	FetchPartial FetchStatus = "partial"
	// FetchFailed indica que a busca falhou mesmo após o retry com limite reduzido
	FetchFailed FetchStatus = "failed"
)

// PagedResult carrega os itens acumulados de uma busca paginada junto com o
// status do desfecho, deixando para o chamador a decisão de aceitar dados parciais
type PagedResult struct {
	Items  []domain.RawInsightItem
	Status FetchStatus
}

// Complete retorna verdadeiro quando nenhuma página falhou
func (r *PagedResult) Complete() bool {
	return r.Status == FetchComplete
}
