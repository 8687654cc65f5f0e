package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/migration"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/migration/migrations"
	"github.com/vfg2006/traffic-manager-sync/internal/api"
	"github.com/vfg2006/traffic-manager-sync/internal/config"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
	"github.com/vfg2006/traffic-manager-sync/internal/scheduler"
	"github.com/vfg2006/traffic-manager-sync/pkg/utils"
)

const defaultBackfillDays = 90

func main() {
	configureLogger()

	if err := newRootCommand().Execute(); err != nil {
		logrus.WithField("error", err.Error()).Error("Sincronização encerrada com erro")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var flags runFlags

	root := &cobra.Command{
		Use:           "ads-sync",
		Short:         "Sincroniza estrutura, insights e breakdowns das contas de anúncios",
		Long:          "Sem argumentos sincroniza o dia de ontem de todas as contas ativas da organização.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), flags)
		},
	}
	flags.register(root)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Sincroniza ontem, os últimos N dias ou um intervalo explícito",
		Example: `  ads-sync run --days 7
  ads-sync run --from 2026-01-01 --to 2026-01-31 --levels account,campaign
  ads-sync run --account act_123456 --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), flags)
		},
	}
	flags.register(runCmd)

	var backfillDays, batchDays int
	backfillCmd := &cobra.Command{
		Use:   "backfill",
		Short: "Recarrega um período longo em janelas, da mais antiga para a mais recente",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.backfillRequest(backfillDays, batchDays)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), req)
		},
	}
	backfillCmd.Flags().IntVar(&backfillDays, "days", defaultBackfillDays, "Quantidade de dias terminando ontem")
	backfillCmd.Flags().IntVar(&batchDays, "batch-days", 0, "Tamanho de cada janela em dias (padrão SYNC_BACKFILL_BATCH_DAYS)")
	backfillCmd.Flags().StringVar(&flags.account, "account", "", "Restringe a uma conta pelo external_id")
	backfillCmd.Flags().StringSliceVar(&flags.levels, "levels", nil, "Níveis de insight (account,campaign,adset,ad)")

	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Executa o agendador e a API de operação",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context())
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica as migrações pendentes do banco",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context())
		},
	}

	root.AddCommand(runCmd, backfillCmd, daemonCmd, migrateCmd)

	return root
}

func runOnce(ctx context.Context, flags runFlags) error {
	req, err := flags.request()
	if err != nil {
		return err
	}

	return execute(ctx, req)
}

func execute(ctx context.Context, req scheduler.RunRequest) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	run, err := app.runner.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Println(utils.PrettyJson(summarize(run)))

	if run.Status == domain.SyncRunStatusPartial {
		logrus.WithField("errors", run.ErrorCount).Warn("Sincronização concluída com falhas parciais")
	}

	return nil
}

func runDaemon(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	syncService := scheduler.NewMetaInsightSyncService(app.runner, app.cfg)
	if err := syncService.Start(ctx); err != nil {
		return err
	}
	logrus.Info("Agendador de sincronização iniciado com sucesso")

	server := api.New(app.cfg, app.conn, app.syncRuns, syncService)
	err = server.Run(ctx)

	syncService.Wait()

	return err
}

func runMigrations(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Database.URL == "" {
		return config.ErrMissingDatabaseURL
	}

	conn, err := pgconn(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()

	applied, err := migration.Apply(ctx, conn, migrations.Files)
	if err != nil {
		return err
	}

	logrus.WithField("applied", len(applied)).Info("Migrações concluídas")
	return nil
}

// summary é o resumo impresso ao final de uma execução pela linha de comando
type summary struct {
	RunID        string               `json:"run_id"`
	Status       domain.SyncRunStatus `json:"status"`
	SyncType     domain.SyncType      `json:"sync_type"`
	DateFrom     string               `json:"date_from"`
	DateTo       string               `json:"date_to"`
	Accounts     int                  `json:"accounts"`
	Stats        domain.SyncStats     `json:"stats"`
	TotalRecords int                  `json:"total_records"`
	Errors       int                  `json:"errors"`
	Duration     string               `json:"duration"`
}

func summarize(run *domain.SyncRun) summary {
	return summary{
		RunID:        run.ID,
		Status:       run.Status,
		SyncType:     run.SyncType,
		DateFrom:     run.DateFrom.Format(time.DateOnly),
		DateTo:       run.DateTo.Format(time.DateOnly),
		Accounts:     run.Accounts,
		Stats:        run.Stats,
		TotalRecords: run.TotalRecords,
		Errors:       run.ErrorCount,
		Duration:     run.Duration.Round(time.Second).String(),
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
