package metaclient

import (
	"io"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-reporting-tap/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-reporting-tap/internal/domain"
)

// FetchPagedData percorre todas as páginas de um endpoint da Graph API seguindo
// os cursores de paginação e retorna a lista agregada de itens.
//
// Comportamento de falha:
//   - status não-2xx com o limite máximo: um único retry do zero com limite reduzido;
//   - status não-2xx com o limite já reduzido: resultado vazio com status Failed,
//     sem erro para o chamador (a falha é apenas logada);
//   - erro de transporte ou de decodificação no meio do loop: retorna o que foi
//     acumulado até ali com status Partial.
func (c *MetaClient) FetchPagedData(endpoint string, params url.Values) *metadomain.PagedResult {
	items := make([]domain.RawInsightItem, 0)
	afterToken := ""

	for {
		params.Set("after", afterToken)

		resp, err := c.httpClient.Get(endpoint + "?" + params.Encode())
		if err != nil {
			logrus.WithError(err).Errorf("Erro ao buscar dados paginados de %s", endpoint)
			return &metadomain.PagedResult{Items: items, Status: metadomain.FetchPartial}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			logrus.WithError(err).Errorf("Erro ao ler resposta de %s", endpoint)
			return &metadomain.PagedResult{Items: items, Status: metadomain.FetchPartial}
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			if params.Get("limit") == strconv.Itoa(MaxPageSize) {
				logrus.Infof("Requisição falhou para %s, tentando novamente com limite reduzido", endpoint)
				params.Set("limit", strconv.Itoa(DegradedPageSize))
				return c.FetchPagedData(endpoint, params)
			}

			logFetchFailure(endpoint, resp.StatusCode, body)
			return &metadomain.PagedResult{
				Items:  make([]domain.RawInsightItem, 0),
				Status: metadomain.FetchFailed,
			}
		}

		var page metadomain.PagedResponse
		if err := json.Unmarshal(body, &page); err != nil {
			logrus.WithError(err).Errorf("Erro ao decodificar página de %s", endpoint)
			return &metadomain.PagedResult{Items: items, Status: metadomain.FetchPartial}
		}

		items = append(items, page.Data...)

		// A existência de outra página é sinalizada pelo link "next";
		// o cursor vem de paging.cursors.after quando o envelope está presente
		if page.Paging == nil || page.Paging.Next == "" {
			break
		}
		afterToken = page.Paging.Cursors.After
	}

	return &metadomain.PagedResult{Items: items, Status: metadomain.FetchComplete}
}

// logFetchFailure loga a falha definitiva de uma busca, extraindo o envelope
// de erro da Graph API quando a resposta o contém
func logFetchFailure(endpoint string, statusCode int, body []byte) {
	fields := logrus.Fields{
		"endpoint":    endpoint,
		"status_code": statusCode,
	}

	var apiErr metadomain.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		fields["error_code"] = apiErr.Error.Code
		fields["error_message"] = apiErr.Error.Message
		fields["fbtrace_id"] = apiErr.Error.FBTraceID

		if apiErr.IsRateLimited() {
			logrus.WithFields(fields).Error("Limite de requisições da Graph API atingido")
			return
		}
	} else {
		fields["response"] = truncateBody(body)
	}

	logrus.WithFields(fields).Error("Requisição falhou mesmo com limite reduzido")
}

func truncateBody(body []byte) string {
	const maxLen = 512
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
