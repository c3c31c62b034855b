package metaclient

import (
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/meta-reporting-tap/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-reporting-tap/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// MaxPageSize é o limite máximo de itens por página aceito pela Graph API
	MaxPageSize = 5000

	// DegradedPageSize é o limite reduzido usado no único retry quando a
	// requisição com o limite máximo falha
	DegradedPageSize = 1000
)

type Client interface {
	GetAuthenticatedUser() (*metadomain.User, error)
	FetchPagedData(endpoint string, params url.Values) *metadomain.PagedResult
}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		// Sem timeout, uma conexão travada seguraria a run inteira
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}
