package reporting

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-reporting-tap/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-reporting-tap/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-reporting-tap/internal/config"
	"github.com/vfg2006/meta-reporting-tap/internal/domain"
	"github.com/vfg2006/meta-reporting-tap/pkg/utils"
)

// workerPoolSize limita quantas contas são processadas em paralelo. A
// paginação dentro de cada conta é sequencial (cada página depende do cursor
// da anterior), então o paralelismo existe apenas entre contas.
const workerPoolSize = 5

// Emitter é o contrato do destino dos registros. Implementações precisam ser
// seguras para chamadas concorrentes: os workers emitem cada lote assim que a
// conta termina, sem ordem garantida entre contas.
type Emitter interface {
	Push(stream string, records []domain.OutputRecord) error
}

// Service orquestra uma extração: descobre as contas de anúncio do dono do
// token, busca o relatório de cada conta em um pool limitado de workers,
// mapeia os itens e emite os registros por stream
type Service struct {
	cfg     *config.Config
	client  metaclient.Client
	schema  domain.DestinationSchema
	emitter Emitter
}

func NewService(
	cfg *config.Config,
	client metaclient.Client,
	schema domain.DestinationSchema,
	emitter Emitter,
) *Service {
	return &Service{
		cfg:     cfg,
		client:  client,
		schema:  schema,
		emitter: emitter,
	}
}

// dateParams é o resultado da validação do dateRange configurado: ou um
// time_range JSON com datas ISO, ou um date_preset da Graph API
type dateParams struct {
	timeRange  string
	datePreset string
}

// Run executa a extração completa da stream configurada.
//
// Erros de configuração (stream desconhecida, dateRange malformado) e a falha
// na descoberta de contas são fatais. A falha de busca de uma conta individual
// não aborta a execução: a conta emite zero registros e as demais continuam.
// Erros de mapeamento são fatais; o primeiro erro encontrado é retornado
// depois que todos os workers terminam.
func (s *Service) Run() error {
	streamCfg, err := LookupStream(s.cfg.Tap.Stream)
	if err != nil {
		return err
	}

	dates, err := buildDateParams(s.cfg.Tap.DateRange)
	if err != nil {
		return err
	}

	accountIDs, err := s.retrieveAccountIDs()
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"stream":   s.cfg.Tap.Stream,
		"accounts": len(accountIDs),
	}).Info("IDs de contas de anúncio recuperados")

	total := len(accountIDs)
	semaphore := make(chan struct{}, workerPoolSize)
	var wg sync.WaitGroup

	var errMutex sync.Mutex
	var firstErr error

	for index, accountID := range accountIDs {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(index int, accountID string) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			if err := s.retrieveReportForAccount(streamCfg, dates, accountID, index, total); err != nil {
				errMutex.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMutex.Unlock()
			}
		}(index, accountID)
	}

	// Aguardar todos os workers terminarem
	wg.Wait()

	return firstErr
}

// retrieveAccountIDs descobre o usuário dono do token e pagina pelas suas
// contas de anúncio. Descoberta vazia ou com falha é fatal para a execução.
func (s *Service) retrieveAccountIDs() ([]string, error) {
	user, err := s.client.GetAuthenticatedUser()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("access_token", s.cfg.Meta.AccessToken)
	params.Add("fields", "id")
	params.Add("limit", strconv.Itoa(metaclient.MaxPageSize))

	endpoint := fmt.Sprintf("%s/%s/adaccounts", s.cfg.Meta.URL, user.ID)
	result := s.client.FetchPagedData(endpoint, params)
	if result.Status == metadomain.FetchFailed {
		return nil, errors.New("falha ao listar contas de anúncio do usuário")
	}

	accountIDs := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		id, ok := item.GetString("id")
		if !ok {
			return nil, errors.New("conta de anúncio retornada sem campo id")
		}
		accountIDs = append(accountIDs, id)
	}

	if len(accountIDs) == 0 {
		return nil, errors.New("nenhuma conta de anúncio encontrada para o usuário")
	}

	return accountIDs, nil
}

// retrieveReportForAccount busca, mapeia e emite o relatório de uma conta.
// Uma busca com falha (resultado vazio) ainda emite um lote vazio e retorna
// nil; apenas erros de mapeamento e de emissão sobem para o orquestrador.
func (s *Service) retrieveReportForAccount(
	streamCfg StreamConfig,
	dates dateParams,
	accountID string,
	index, total int,
) error {
	params := s.buildReportParams(streamCfg, dates)

	endpoint := fmt.Sprintf("%s/%s/insights", s.cfg.Meta.URL, accountID)
	result := s.client.FetchPagedData(endpoint, params)
	if !result.Complete() {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"status":     result.Status,
		}).Warn("Busca de relatório incompleta para a conta")
	}

	records := make([]domain.OutputRecord, 0, len(result.Items))
	for _, item := range result.Items {
		record, err := MapRecord(item, s.schema, streamCfg)
		if err != nil {
			return errors.Wrapf(err, "erro ao mapear item da conta %s", accountID)
		}
		records = append(records, record)
	}

	logrus.Infof("[%s] Recuperados %d itens para conta %d/%d (%s) no período %s",
		s.cfg.Tap.Stream, len(records), index+1, total, accountID, s.cfg.Tap.DateRange)

	if err := s.emitter.Push(s.cfg.Tap.Stream, records); err != nil {
		return errors.Wrapf(err, "erro ao emitir registros da conta %s", accountID)
	}

	return nil
}

func (s *Service) buildReportParams(streamCfg StreamConfig, dates dateParams) url.Values {
	params := url.Values{}
	params.Add("access_token", s.cfg.Meta.AccessToken)
	params.Add("limit", strconv.Itoa(metaclient.MaxPageSize))
	params.Add("fields", streamCfg.Fields)
	params.Add("time_increment", "1")
	params.Add("level", string(streamCfg.Level))

	if dates.timeRange != "" {
		params.Add("time_range", dates.timeRange)
	} else {
		params.Add("date_preset", dates.datePreset)
	}

	for key, value := range streamCfg.ExtraParams {
		params.Add(key, value)
	}

	return params
}

// buildDateParams valida o dateRange configurado antes de qualquer chamada de
// rede. Duas datas YYYYMMDD separadas por vírgula viram um time_range com
// datas ISO; um valor sem vírgula é repassado como date_preset da Graph API.
func buildDateParams(dateRange string) (dateParams, error) {
	if dateRange == "" {
		return dateParams{}, errors.New("dateRange não configurado")
	}

	if !strings.Contains(dateRange, ",") {
		return dateParams{datePreset: dateRange}, nil
	}

	parts := strings.Split(dateRange, ",")
	if len(parts) != 2 {
		return dateParams{}, errors.Errorf("dateRange %q inválido: esperadas duas datas YYYYMMDD separadas por vírgula", dateRange)
	}

	since, err := utils.ParseCompactDate(strings.TrimSpace(parts[0]))
	if err != nil {
		return dateParams{}, errors.Wrapf(err, "data inicial inválida em %q", dateRange)
	}

	until, err := utils.ParseCompactDate(strings.TrimSpace(parts[1]))
	if err != nil {
		return dateParams{}, errors.Wrapf(err, "data final inválida em %q", dateRange)
	}

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}",
		since.Format(time.DateOnly), until.Format(time.DateOnly))

	return dateParams{timeRange: timeRange}, nil
}
