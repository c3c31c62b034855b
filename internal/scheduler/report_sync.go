package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-reporting-tap/internal/config"
)

// ReportRunner é a operação executada pelo agendador; implementada pelo
// serviço de relatórios
type ReportRunner interface {
	Run() error
}

// ReportSyncService gerencia o agendamento e a execução recorrente da
// extração de relatórios
type ReportSyncService struct {
	scheduler           *gocron.Scheduler
	appConfig           *config.Config
	runner              ReportRunner
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

// NewReportSyncService cria uma nova instância do serviço de sincronização de relatórios
func NewReportSyncService(runner ReportRunner, appConfig *config.Config) *ReportSyncService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.ReportSync.CronSchedule,
		"sync_enabled":  appConfig.ReportSync.Enabled,
		"stream":        appConfig.Tap.Stream,
	}).Info("Configuração do agendador de relatórios carregada")

	return &ReportSyncService{
		scheduler:   scheduler,
		appConfig:   appConfig,
		runner:      runner,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *ReportSyncService) Start(ctx context.Context) error {
	if !s.appConfig.ReportSync.Enabled {
		logrus.Info("Sincronização agendada de relatórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.appConfig.ReportSync.CronSchedule).Info("Iniciando agendador de relatórios")

	_, err := s.scheduler.Cron(s.appConfig.ReportSync.CronSchedule).Do(func() {
		s.syncReports()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	// Parar o agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// syncReports executa uma extração completa, garantindo uma única execução
// por vez
func (s *ReportSyncService) syncReports() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de relatórios já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.lastSyncError = ""
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.WithFields(logrus.Fields{
		"stream":     s.appConfig.Tap.Stream,
		"date_range": s.appConfig.Tap.DateRange,
	}).Info("Iniciando sincronização de relatórios")

	if err := s.runner.Run(); err != nil {
		s.syncMutex.Lock()
		s.lastSyncError = err.Error()
		s.syncMutex.Unlock()

		logrus.WithError(err).Error("Erro durante a sincronização de relatórios")
		return
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"stream":   s.appConfig.Tap.Stream,
	}).Info("Sincronização de relatórios concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia manualmente uma sincronização de relatórios
func (s *ReportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de relatórios já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de relatórios")
	go s.syncReports()
}

// GetStatus retorna o status atual do agendador
func (s *ReportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.appConfig.ReportSync.Enabled,
		"sync_cron":              s.appConfig.ReportSync.CronSchedule,
		"sync_running":           s.syncRunning,
		"stream":                 s.appConfig.Tap.Stream,
		"date_range":             s.appConfig.Tap.DateRange,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
