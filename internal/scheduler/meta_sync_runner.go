package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/lock"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-sync/internal/config"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
	"github.com/vfg2006/traffic-manager-sync/internal/usecases/syncing"
	"github.com/vfg2006/traffic-manager-sync/pkg/log"
	"github.com/vfg2006/traffic-manager-sync/pkg/metrics"
	"github.com/vfg2006/traffic-manager-sync/pkg/utils"
)

const (
	defaultBackfillBatchDays = 14
	defaultLockTTL           = 6 * time.Hour
	metricsJob               = "ads_sync"
)

var (
	ErrRunInProgress = errors.New("já existe uma sincronização em andamento para a organização")
	ErrInvalidDays   = errors.New("número de dias deve ser maior que zero")

	errAccessTokenRejected = errors.New("token de acesso inválido ou expirado")
)

// RunRequest descreve uma execução pedida pela linha de comando, pelo cron ou pela API
type RunRequest struct {
	Mode              domain.SyncType
	Days              int
	From              time.Time
	To                time.Time
	BatchDays         int
	AccountExternalID string
	Levels            []domain.InsightLevel
	ForceStructure    bool
	SkipBreakdowns    bool
}

// RunnerConfig são os parâmetros da execução já convertidos da configuração da aplicação
type RunnerConfig struct {
	OrganizationID    string
	AccountDelay      time.Duration
	BackfillBatchDays int
	BreakdownDaysBack int
	CreativeLimit     int
	Levels            []domain.InsightLevel
	BreakdownTypes    []domain.BreakdownType
	MaterializedView  string
	PushgatewayURL    string
	LockTTL           time.Duration
}

func NewRunnerConfig(cfg *config.Config) (RunnerConfig, error) {
	levels, err := domain.ParseInsightLevels(cfg.Sync.Levels)
	if err != nil {
		return RunnerConfig{}, err
	}

	breakdownTypes, err := domain.ParseBreakdownTypes(cfg.Sync.BreakdownTypes)
	if err != nil {
		return RunnerConfig{}, err
	}

	rc := RunnerConfig{
		OrganizationID:    cfg.Organization.ID,
		AccountDelay:      cfg.Sync.AccountDelay,
		BackfillBatchDays: cfg.Sync.BackfillBatchDays,
		BreakdownDaysBack: cfg.Sync.BreakdownDaysBack,
		CreativeLimit:     cfg.Sync.CreativeBackfillLimit,
		Levels:            levels,
		BreakdownTypes:    breakdownTypes,
		MaterializedView:  cfg.Sync.MaterializedView,
		PushgatewayURL:    cfg.Metrics.PushgatewayURL,
		LockTTL:           cfg.Sync.LockTTL,
	}

	if rc.BackfillBatchDays <= 0 {
		rc.BackfillBatchDays = defaultBackfillBatchDays
	}
	if rc.LockTTL <= 0 {
		rc.LockTTL = defaultLockTTL
	}

	return rc, nil
}

// ResolveWindows transforma o pedido nas janelas de datas a sincronizar, da mais antiga para a mais recente.
// "Ontem" é relativo a now; o dia corrente nunca é sincronizado porque ainda está incompleto.
func ResolveWindows(now time.Time, req RunRequest) ([]domain.DateRange, error) {
	yesterday := now.AddDate(0, 0, -1)

	switch req.Mode {
	case "", domain.SyncTypeYesterday:
		return []domain.DateRange{domain.SingleDay(yesterday)}, nil

	case domain.SyncTypeDays, domain.SyncTypeScheduled:
		dr, err := lastDays(yesterday, req.Days)
		if err != nil {
			return nil, err
		}
		return []domain.DateRange{dr}, nil

	case domain.SyncTypeRange:
		dr, err := domain.NewDateRange(req.From, req.To)
		if err != nil {
			return nil, err
		}
		return []domain.DateRange{dr}, nil

	case domain.SyncTypeBackfill:
		dr, err := lastDays(yesterday, req.Days)
		if err != nil {
			return nil, err
		}

		batchDays := req.BatchDays
		if batchDays <= 0 {
			batchDays = defaultBackfillBatchDays
		}

		return dr.Split(batchDays), nil
	}

	return nil, fmt.Errorf("modo de sincronização desconhecido: %q", req.Mode)
}

func lastDays(yesterday time.Time, n int) (domain.DateRange, error) {
	if n <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: %d", ErrInvalidDays, n)
	}

	return domain.NewDateRange(yesterday.AddDate(0, 0, -(n-1)), yesterday)
}

// MetaSyncRunner executa uma sincronização completa da organização e grava o registro de auditoria
type MetaSyncRunner struct {
	config   RunnerConfig
	accounts repository.AccountRepository
	syncRuns repository.SyncRunRepository
	syncer   syncing.Syncer
	locker   lock.Locker
	metrics  *metrics.Metrics
	sleep    utils.Sleeper
	now      func() time.Time
}

func NewMetaSyncRunner(
	rc RunnerConfig,
	accounts repository.AccountRepository,
	syncRuns repository.SyncRunRepository,
	syncer syncing.Syncer,
	locker lock.Locker,
	m *metrics.Metrics,
) *MetaSyncRunner {
	return &MetaSyncRunner{
		config:   rc,
		accounts: accounts,
		syncRuns: syncRuns,
		syncer:   syncer,
		locker:   locker,
		metrics:  m,
		sleep:    utils.Sleep,
		now:      time.Now,
	}
}

// Run processa janelas e contas em sequência. Só devolve erro para falhas de preparação;
// falhas de contas ficam no SyncRun.
func (r *MetaSyncRunner) Run(ctx context.Context, req RunRequest) (*domain.SyncRun, error) {
	start := r.now()

	if req.BatchDays <= 0 {
		req.BatchDays = r.config.BackfillBatchDays
	}

	windows, err := ResolveWindows(start, req)
	if err != nil {
		return nil, err
	}

	release, err := r.locker.Acquire(ctx, "org:"+r.config.OrganizationID, r.config.LockTTL)
	if errors.Is(err, lock.ErrLocked) {
		return nil, ErrRunInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao obter trava da sincronização: %w", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logrus.WithField("error", err.Error()).Warn("Erro ao liberar trava da sincronização")
		}
	}()

	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	ctx, correlationID := log.WithCorrelationID(ctx)
	ctx = log.ContextWithFields(ctx, log.Fields{"run_id": runID})
	logger := log.ForContext(ctx)

	mode := req.Mode
	if mode == "" {
		mode = domain.SyncTypeYesterday
	}

	accounts, err := r.accounts.ListSyncableAccounts(ctx, r.config.OrganizationID, req.AccountExternalID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contas para sincronização: %w", err)
	}

	run := &domain.SyncRun{
		ID:             runID,
		CorrelationID:  correlationID,
		OrganizationID: r.config.OrganizationID,
		SyncType:       mode,
		DateFrom:       windows[0].Since,
		DateTo:         windows[len(windows)-1].Until,
		Accounts:       len(accounts),
	}

	logger.WithFields(log.Fields{
		"sync_type": mode,
		"windows":   len(windows),
		"accounts":  len(accounts),
		"date_from": run.DateFrom.Format(time.DateOnly),
		"date_to":   run.DateTo.Format(time.DateOnly),
	}).Info("Iniciando execução de sincronização")

	if len(accounts) == 0 {
		logger.Warn("Nenhuma conta ativa encontrada para sincronização")
	}

	reports, abortErr := r.syncWindows(ctx, windows, accounts, req, start)

	run.Finish(reports, r.now().Sub(start), r.now())
	switch {
	case abortErr != nil:
		interrupt(run, string(metaclient.KindAuth), abortErr)
	case ctx.Err() != nil:
		interrupt(run, "", ctx.Err())
	}

	r.finalize(context.WithoutCancel(ctx), run)

	return run, nil
}

func interrupt(run *domain.SyncRun, kind string, cause error) {
	run.ErrorDetails = append(run.ErrorDetails, domain.ErrorDetail{
		Step:    domain.SyncStepAccount,
		Kind:    kind,
		Message: "execução interrompida: " + cause.Error(),
	})
	run.ErrorCount++
	run.Status = domain.SyncRunStatusPartial
}

// syncWindows para na primeira conta rejeitada por token; as demais falhariam do mesmo jeito.
func (r *MetaSyncRunner) syncWindows(ctx context.Context, windows []domain.DateRange, accounts []*domain.AdAccount, req RunRequest, now time.Time) ([]domain.AccountReport, error) {
	levels := req.Levels
	if len(levels) == 0 {
		levels = r.config.Levels
	}

	reports := make([]domain.AccountReport, 0, len(windows)*len(accounts))
	first := true

	for i, window := range windows {
		opts := syncing.Options{
			Levels:            levels,
			BreakdownTypes:    r.config.BreakdownTypes,
			BreakdownDaysBack: r.config.BreakdownDaysBack,
			CreativeLimit:     r.config.CreativeLimit,
			ForceStructure:    req.ForceStructure,
			SkipStructure:     i > 0,
			SkipCreatives:     i > 0,
			SkipBreakdowns:    req.SkipBreakdowns || req.Mode == domain.SyncTypeBackfill,
			Now:               now,
		}

		log.ForContext(ctx).WithFields(log.Fields{
			"window":     i + 1,
			"windows":    len(windows),
			"date_range": window.String(),
		}).Info("Processando janela de datas")

		for _, account := range accounts {
			if account.ExternalID == "" {
				log.ForContext(ctx).WithField("account_id", account.ID).Warn("Conta sem external_id. Pulando.")
				continue
			}

			// pausa entre contas para não estourar o limite de chamadas da conta de negócio
			if !first {
				if err := r.sleep(ctx, r.config.AccountDelay); err != nil {
					return reports, nil
				}
			}
			first = false

			report := r.syncer.SyncAccount(ctx, account, window, opts)
			reports = append(reports, report)

			if report.HasErrorKind(string(metaclient.KindAuth)) {
				log.ForContext(ctx).WithFields(log.Fields{
					"account_id":  account.ID,
					"external_id": account.ExternalID,
				}).Error("Token de acesso rejeitado pela API do Meta, interrompendo a execução")
				return reports, errAccessTokenRejected
			}
		}
	}

	return reports, nil
}

// finalize grava a auditoria, atualiza a visão materializada e publica as métricas.
// Nenhuma dessas falhas invalida os dados já gravados.
func (r *MetaSyncRunner) finalize(ctx context.Context, run *domain.SyncRun) {
	logger := log.ForContext(ctx)

	if err := r.syncRuns.Create(ctx, run); err != nil {
		logger.WithField("error", err.Error()).Error("Erro ao gravar registro de auditoria da sincronização")
	}

	if r.config.MaterializedView != "" {
		if err := r.syncRuns.RefreshMaterializedView(ctx, r.config.MaterializedView); err != nil {
			logger.WithFields(log.Fields{
				"view":  r.config.MaterializedView,
				"error": err.Error(),
			}).Error("Erro ao atualizar visão materializada")
		}
	}

	r.metrics.ObserveRun(run.Duration, run.Status == domain.SyncRunStatusSuccess, r.now())
	if err := metrics.Push(ctx, r.config.PushgatewayURL, metricsJob); err != nil {
		logger.WithField("error", err.Error()).Warn("Erro ao enviar métricas ao Pushgateway")
	}

	logger.WithFields(log.Fields{
		"status":        run.Status,
		"accounts":      run.Accounts,
		"total_records": run.TotalRecords,
		"errors":        run.ErrorCount,
		"duration":      run.Duration.Round(time.Millisecond).String(),
	}).Info("Execução de sincronização concluída")
}
