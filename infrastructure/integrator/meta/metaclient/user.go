package metaclient

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	metadomain "github.com/vfg2006/meta-reporting-tap/infrastructure/integrator/meta/domain"
)

// GetAuthenticatedUser busca o usuário dono do token de acesso via /me.
// Diferente das buscas paginadas, uma falha aqui é um erro para o chamador:
// sem o id do usuário não há como descobrir as contas de anúncio.
func (c *MetaClient) GetAuthenticatedUser() (*metadomain.User, error) {
	params := url.Values{}
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	endpoint := fmt.Sprintf("%s/me?%s", c.Cfg.Meta.URL, params.Encode())

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar usuário autenticado")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("consulta ao /me retornou status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler resposta do /me")
	}

	var user metadomain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta do /me")
	}

	if user.ID == "" {
		return nil, errors.New("resposta do /me sem id de usuário")
	}

	return &user, nil
}
