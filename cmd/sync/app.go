package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/lock"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-sync/internal/config"
	"github.com/vfg2006/traffic-manager-sync/internal/scheduler"
	"github.com/vfg2006/traffic-manager-sync/internal/usecases/syncing"
	"github.com/vfg2006/traffic-manager-sync/pkg/metrics"
)

// app reúne as dependências montadas a partir da configuração
type app struct {
	cfg      *config.Config
	conn     *postgres.Connection
	syncRuns repository.SyncRunRepository
	runner   *scheduler.MetaSyncRunner
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	runnerConfig, err := scheduler.NewRunnerConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	conn, err := pgconn(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	m := metrics.Registry(cfg.Metrics.Namespace)

	accountRepo := repository.NewAccountRepository(conn)
	structureRepo := repository.NewStructureRepository(conn)
	adInsightRepo := repository.NewAdInsightRepository(conn)
	breakdownRepo := repository.NewInsightBreakdownRepository(conn)
	syncRunRepo := repository.NewSyncRunRepository(conn)

	metaClient := metaclient.NewClient(cfg, metaclient.WithMetrics(m))
	metaIntegrator := meta.New(cfg, metaClient)

	syncService := syncing.NewService(metaIntegrator, accountRepo, structureRepo, adInsightRepo, breakdownRepo, m)

	locker := lock.NewLocker(cfg.Redis)

	runner := scheduler.NewMetaSyncRunner(runnerConfig, accountRepo, syncRunRepo, syncService, locker, m)

	return &app{
		cfg:      cfg,
		conn:     conn,
		syncRuns: syncRunRepo,
		runner:   runner,
	}, nil
}

func (a *app) Close() {
	if err := a.conn.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
	}
}

// loadConfig carrega a configuração e aplica o nível de log
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return cfg, nil
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) (*postgres.Connection, error) {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn, nil
}
