package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-reporting-tap/infrastructure/database/postgres"
	"github.com/vfg2006/meta-reporting-tap/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-reporting-tap/infrastructure/repository"
	"github.com/vfg2006/meta-reporting-tap/internal/api"
	"github.com/vfg2006/meta-reporting-tap/internal/config"
	"github.com/vfg2006/meta-reporting-tap/internal/reporting"
	"github.com/vfg2006/meta-reporting-tap/internal/scheduler"
	"github.com/vfg2006/meta-reporting-tap/internal/sink"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	schema, err := reporting.LoadDestinationSchema(cfg.Tap.SchemaPath)
	if err != nil {
		logrus.Fatal(err)
	}

	// O destino dos registros: banco quando habilitado, mensagens singer no
	// stdout caso contrário (logs vão para stderr e não se misturam)
	var emitter reporting.Emitter
	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		reportRecordRepo := repository.NewReportRecordRepository(pgConn)
		emitter = sink.NewPostgresEmitter(reportRecordRepo)
	} else {
		emitter = sink.NewSingerWriter(os.Stdout)
	}

	metaClient := metaclient.NewClient(cfg)
	reportService := reporting.NewService(cfg, metaClient, schema, emitter)

	if !cfg.ReportSync.Enabled {
		// Modo one-shot: roda a extração uma vez e encerra
		if err := reportService.Run(); err != nil {
			logrus.Fatal(err)
		}
		return
	}

	// Modo agendado: cron + servidor de status
	syncService := scheduler.NewReportSyncService(reportService, cfg)
	if err := syncService.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar o agendador de relatórios")
	}
	logrus.Info("Agendador de relatórios iniciado com sucesso")

	server, err := api.New(cfg, syncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetOutput(os.Stderr)
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) postgres.Conn {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
