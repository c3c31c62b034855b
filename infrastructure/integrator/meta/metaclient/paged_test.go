package metaclient

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/meta-reporting-tap/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-reporting-tap/internal/config"
)

func newTestClient(serverURL string) *MetaClient {
	cfg := &config.Config{
		Meta: config.Meta{
			URL:         serverURL,
			AccessToken: "test-token",
		},
	}
	return NewClient(cfg).(*MetaClient)
}

func maxLimitParams() url.Values {
	params := url.Values{}
	params.Add("access_token", "test-token")
	params.Add("limit", strconv.Itoa(MaxPageSize))
	return params
}

func TestFetchPagedData_FollowsCursorsAcrossPages(t *testing.T) {
	pages := map[string]string{
		"": `{
			"data": [{"id": "item1"}, {"id": "item2"}],
			"paging": {"cursors": {"after": "c1"}, "next": "https://next/1"}
		}`,
		"c1": `{
			"data": [{"id": "item3"}, {"id": "item4"}],
			"paging": {"cursors": {"after": "c2"}, "next": "https://next/2"}
		}`,
		"c2": `{
			"data": [{"id": "item5"}, {"id": "item6"}],
			"paging": {"cursors": {"after": "c3"}}
		}`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Query().Get("after")]
		require.True(t, ok, "cursor inesperado: %q", r.URL.Query().Get("after"))
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.FetchPagedData(server.URL+"/act_123/insights", maxLimitParams())

	assert.Equal(t, metadomain.FetchComplete, result.Status)
	require.Len(t, result.Items, 6)

	// Itens na ordem das páginas
	for i, item := range result.Items {
		id, ok := item.GetString("id")
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("item%d", i+1), id)
	}
}

func TestFetchPagedData_RetriesOnceWithDegradedLimit(t *testing.T) {
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		limit := r.URL.Query().Get("limit")

		if limit == strconv.Itoa(MaxPageSize) {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		assert.Equal(t, strconv.Itoa(DegradedPageSize), limit)
		fmt.Fprint(w, `{"data": [{"id": "recovered"}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.FetchPagedData(server.URL+"/act_123/insights", maxLimitParams())

	assert.Equal(t, metadomain.FetchComplete, result.Status)
	require.Len(t, result.Items, 1)
	id, _ := result.Items[0].GetString("id")
	assert.Equal(t, "recovered", id)
	assert.Equal(t, int32(2), requests.Load())
}

func TestFetchPagedData_PermanentFailureReturnsEmpty(t *testing.T) {
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"message": "invalid", "code": 100}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.FetchPagedData(server.URL+"/act_123/insights", maxLimitParams())

	// Falhou nas duas tentativas: resultado vazio, sem erro propagado
	assert.Equal(t, metadomain.FetchFailed, result.Status)
	assert.Empty(t, result.Items)
	assert.Equal(t, int32(2), requests.Load())
}

func TestFetchPagedData_MidPaginationErrorReturnsPartial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("after") == "" {
			fmt.Fprint(w, `{
				"data": [{"id": "item1"}, {"id": "item2"}],
				"paging": {"cursors": {"after": "c1"}, "next": "https://next/1"}
			}`)
			return
		}

		// Segunda página quebrada no meio da paginação
		fmt.Fprint(w, `{"data": [{`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.FetchPagedData(server.URL+"/act_123/insights", maxLimitParams())

	// O que foi acumulado antes da falha é preservado
	assert.Equal(t, metadomain.FetchPartial, result.Status)
	assert.Len(t, result.Items, 2)
}

func TestFetchPagedData_NoPagingEnvelopeStops(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "only"}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.FetchPagedData(server.URL+"/act_123/insights", maxLimitParams())

	assert.Equal(t, metadomain.FetchComplete, result.Status)
	assert.Len(t, result.Items, 1)
}

func TestGetAuthenticatedUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
		fmt.Fprint(w, `{"id": "user-42", "name": "Reporting User"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	user, err := client.GetAuthenticatedUser()

	require.NoError(t, err)
	assert.Equal(t, "user-42", user.ID)
}

func TestGetAuthenticatedUser_FailureIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetAuthenticatedUser()

	assert.Error(t, err)
}
