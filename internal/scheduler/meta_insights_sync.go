package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-manager-sync/internal/config"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

// Runner é a execução completa usada pelo agendador
//
//go:generate mockgen -source=meta_insights_sync.go -destination=mocks/runner.go -package=mocks
type Runner interface {
	Run(ctx context.Context, req RunRequest) (*domain.SyncRun, error)
}

// MetaInsightSyncConfig representa a configuração do agendador de sincronização
type MetaInsightSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// MetaInsightSyncService agenda a sincronização diária e aceita disparos manuais
type MetaInsightSyncService struct {
	scheduler           *gocron.Scheduler
	config              MetaInsightSyncConfig
	runner              Runner
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRun             *domain.SyncRun
	lastError           string
	wg                  sync.WaitGroup
}

// NewMetaInsightSyncService cria uma nova instância do serviço de sincronização agendada
func NewMetaInsightSyncService(runner Runner, appConfig *config.Config) *MetaInsightSyncService {
	syncConfig := MetaInsightSyncConfig{
		CronSchedule: appConfig.Sync.CronSchedule,
		LookbackDays: appConfig.Sync.LookbackDays,
		SyncEnabled:  appConfig.Sync.Enabled,
	}

	if syncConfig.LookbackDays <= 0 {
		syncConfig.LookbackDays = 3
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização carregada")

	return &MetaInsightSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		runner:    runner,
		baseCtx:   context.Background(),
	}
}

// Start inicia o agendador
func (s *MetaInsightSyncService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sync(ctx, s.scheduledRequest())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização")
		s.scheduler.Stop()
	}()

	return nil
}

// Wait bloqueia até os disparos manuais em andamento terminarem
func (s *MetaInsightSyncService) Wait() {
	s.wg.Wait()
}

func (s *MetaInsightSyncService) scheduledRequest() RunRequest {
	return RunRequest{Mode: domain.SyncTypeScheduled, Days: s.config.LookbackDays}
}

// sync executa uma rodada, ignorando disparos enquanto outra está em andamento neste processo.
// Entre processos, quem garante exclusividade é a trava do runner.
func (s *MetaInsightSyncService) sync(ctx context.Context, req RunRequest) {
	if !s.begin() {
		logrus.Info("Sincronização já em andamento, ignorando")
		return
	}

	run, err := s.runner.Run(ctx, req)

	s.finish(run, err)

	switch {
	case errors.Is(err, ErrRunInProgress):
		logrus.Info("Sincronização em andamento em outra instância, ignorando")
	case err != nil:
		logrus.WithField("error", err.Error()).Error("Erro ao executar sincronização agendada")
	default:
		logrus.WithFields(logrus.Fields{
			"run_id":        run.ID,
			"status":        run.Status,
			"total_records": run.TotalRecords,
			"errors":        run.ErrorCount,
		}).Info("Sincronização agendada concluída")
	}
}

func (s *MetaInsightSyncService) begin() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()

	return true
}

func (s *MetaInsightSyncService) finish(run *domain.SyncRun, err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastError = ""

	if err != nil {
		s.lastError = err.Error()
		return
	}

	s.lastRun = run
}

// TriggerManualSync inicia uma sincronização em segundo plano. Devolve false se já houver uma rodando.
// Sem dias informados, usa a mesma janela do agendamento.
func (s *MetaInsightSyncService) TriggerManualSync(days int) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização já em andamento, ignorando solicitação manual")
		return false
	}

	req := s.scheduledRequest()
	if days > 0 {
		req = RunRequest{Mode: domain.SyncTypeDays, Days: days}
	}

	logrus.WithField("days", req.Days).Info("Iniciando sincronização manual")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.sync(s.baseCtx, req)
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *MetaInsightSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastError != "" {
		status["last_error"] = s.lastError
	}

	if s.lastRun != nil {
		status["last_run_id"] = s.lastRun.ID
		status["last_run_status"] = s.lastRun.Status
	}

	return status
}
