package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
	"github.com/vfg2006/traffic-manager-sync/internal/usecases/insighting"
	"github.com/vfg2006/traffic-manager-sync/pkg/log"
	"github.com/vfg2006/traffic-manager-sync/pkg/metrics"
)

const (
	defaultBreakdownDaysBack = 2
	defaultCreativeLimit     = 500
)

// Options controla quais etapas rodam para uma conta
type Options struct {
	Levels            []domain.InsightLevel
	BreakdownTypes    []domain.BreakdownType
	BreakdownDaysBack int
	CreativeLimit     int
	ForceStructure    bool
	SkipStructure     bool
	SkipCreatives     bool
	SkipBreakdowns    bool
	Now               time.Time
}

func (o Options) withDefaults() Options {
	if len(o.Levels) == 0 {
		o.Levels = domain.DefaultInsightLevels
	}
	if len(o.BreakdownTypes) == 0 {
		o.BreakdownTypes = domain.AllBreakdownTypes
	}
	if o.BreakdownDaysBack <= 0 {
		o.BreakdownDaysBack = defaultBreakdownDaysBack
	}
	if o.CreativeLimit <= 0 {
		o.CreativeLimit = defaultCreativeLimit
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}

	return o
}

//go:generate mockgen -source=service.go -destination=mocks/syncer.go -package=mocks
type Syncer interface {
	// SyncAccount executa estrutura, criativos, insights, breakdowns e carimbo de uma conta.
	// Nunca devolve erro: falhas ficam no relatório.
	SyncAccount(ctx context.Context, account *domain.AdAccount, dr domain.DateRange, opts Options) domain.AccountReport
}

type Service struct {
	integrator meta.Integrator
	accounts   repository.AccountRepository
	structure  repository.StructureRepository
	insights   repository.AdInsightRepository
	breakdowns repository.InsightBreakdownRepository
	metrics    *metrics.Metrics
}

func NewService(
	integrator meta.Integrator,
	accounts repository.AccountRepository,
	structure repository.StructureRepository,
	insights repository.AdInsightRepository,
	breakdowns repository.InsightBreakdownRepository,
	m *metrics.Metrics,
) *Service {
	return &Service{
		integrator: integrator,
		accounts:   accounts,
		structure:  structure,
		insights:   insights,
		breakdowns: breakdowns,
		metrics:    m,
	}
}

func (s *Service) SyncAccount(ctx context.Context, account *domain.AdAccount, dr domain.DateRange, opts Options) (report domain.AccountReport) {
	opts = opts.withDefaults()
	start := time.Now()

	ctx = log.ContextWithFields(ensureCorrelationID(ctx), accountFields(account))
	logger := log.ForContext(ctx)

	report = domain.AccountReport{
		AccountID:  account.ID,
		ExternalID: account.ExternalID,
		Name:       account.Name,
		DateRange:  dr,
	}

	var total domain.StepReport

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", fmt.Sprint(r)).Error("Falha inesperada ao sincronizar conta")
			total = total.AddFailure(s.failure(ctx, account, domain.SyncStepAccount, "", fmt.Errorf("panic: %v", r)))
		}

		report.Stats = total.Stats
		report.Errors = total.Errors
		report.Duration = time.Since(start)

		status := "success"
		if report.Failed() {
			status = "partial"
		}
		s.metrics.IncAccount(status)

		logger.WithFields(log.Fields{
			"campaigns":  report.Stats.Campaigns,
			"ad_sets":    report.Stats.AdSets,
			"ads":        report.Stats.Ads,
			"creatives":  report.Stats.Creatives,
			"insights":   report.Stats.Insights,
			"breakdowns": report.Stats.Breakdowns,
			"errors":     report.Stats.Errors,
			"duration":   report.Duration.Round(time.Millisecond).String(),
		}).Info("Conta sincronizada")
	}()

	logger.WithField("date_range", dr.String()).Info("Iniciando sincronização da conta")

	switch {
	case opts.SkipStructure:
		logger.Debug("Sincronização de estrutura desativada para esta execução")
	case account.SyncedOn(opts.Now) && !opts.ForceStructure:
		logger.Info("Estrutura já sincronizada hoje, pulando")
	default:
		total = total.Merge(s.syncStructure(ctx, account))
	}

	if !opts.SkipCreatives {
		total = total.Merge(s.syncCreatives(ctx, account, opts.CreativeLimit))
	}

	total = total.Merge(s.syncInsights(ctx, account, dr, opts.Levels))

	if !opts.SkipBreakdowns {
		total = total.Merge(s.syncBreakdowns(ctx, account, dr.Tail(opts.BreakdownDaysBack), opts.BreakdownTypes))
	}

	total = total.Merge(s.stampFreshness(ctx, account, opts.Now))

	return report
}

func (s *Service) syncStructure(ctx context.Context, account *domain.AdAccount) domain.StepReport {
	var step domain.StepReport
	logger := log.ForContext(ctx)

	campaigns, err := s.integrator.GetCampaigns(ctx, account.ExternalID)
	if err != nil {
		step = step.AddFailure(s.failure(ctx, account, domain.SyncStepStructure, "campaigns", err))
	} else {
		n, err := s.structure.UpsertCampaigns(ctx, account.ID, campaigns)
		step.Stats.Campaigns += n
		s.metrics.AddRows("campaigns", n)
		if err != nil {
			step = step.AddFailure(s.failure(ctx, account, domain.SyncStepStructure, "campaigns", err))
		}
	}

	adSets, err := s.integrator.GetAdSets(ctx, account.ExternalID)
	if err != nil {
		step = step.AddFailure(s.failure(ctx, account, domain.SyncStepStructure, "ad_sets", err))
	} else {
		n, err := s.structure.UpsertAdSets(ctx, account.ID, adSets)
		step.Stats.AdSets += n
		s.metrics.AddRows("ad_sets", n)
		if err != nil {
			step = step.AddFailure(s.failure(ctx, account, domain.SyncStepStructure, "ad_sets", err))
		}
	}

	campaignIDs := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		campaignIDs = append(campaignIDs, c.PlatformID)
	}

	ads, err := s.integrator.GetAds(ctx, account.ExternalID, campaignIDs)
	for _, f := range ads.Failures {
		step = step.AddFailure(s.failure(ctx, account, domain.SyncStepStructure, "campaign:"+f.Item, f.Err))
	}
	if err != nil {
		step = step.AddFailure(s.failure(ctx, account, domain.SyncStepStructure, "ads", err))
	}

	if len(ads.Items) > 0 {
		n, err := s.structure.UpsertAds(ctx, account.ID, ads.Items)
		step.Stats.Ads += n
		s.metrics.AddRows("ads", n)
		if err != nil {
			step = step.AddFailure(s.failure(ctx, account, domain.SyncStepStructure, "ads", err))
		}
	}

	logger.WithFields(log.Fields{
		"campaigns": step.Stats.Campaigns,
		"ad_sets":   step.Stats.AdSets,
		"ads":       step.Stats.Ads,
	}).Info("Estrutura sincronizada")

	return step
}

// syncCreatives só busca anúncios que ainda não têm criativo gravado
func (s *Service) syncCreatives(ctx context.Context, account *domain.AdAccount, limit int) domain.StepReport {
	var step domain.StepReport
	logger := log.ForContext(ctx)

	requests, err := s.structure.ListAdsMissingCreative(ctx, account.ID, limit)
	if err != nil {
		return step.AddFailure(s.failure(ctx, account, domain.SyncStepCreatives, "", err))
	}

	if len(requests) == 0 {
		logger.Debug("Nenhum anúncio sem criativo")
		return step
	}

	result := s.integrator.GetCreatives(ctx, requests)
	for _, f := range result.Failures {
		step = step.AddFailure(s.failure(ctx, account, domain.SyncStepCreatives, f.Item, f.Err))
	}

	for _, creative := range result.Items {
		updated, err := s.structure.UpdateCreative(ctx, account.ID, creative)
		if err != nil {
			step = step.AddFailure(s.failure(ctx, account, domain.SyncStepCreatives, creative.AdPlatformID, err))
			continue
		}
		if updated {
			step.Stats.Creatives++
		}
	}

	s.metrics.AddRows("creatives", step.Stats.Creatives)
	logger.WithFields(log.Fields{
		"requested": len(requests),
		"updated":   step.Stats.Creatives,
	}).Info("Criativos sincronizados")

	return step
}

// syncInsights percorre os níveis sobre o intervalo inteiro, já que a atribuição revisa dias passados.
// Quando o intervalo é recusado, cai para um dia por vez.
func (s *Service) syncInsights(ctx context.Context, account *domain.AdAccount, dr domain.DateRange, levels []domain.InsightLevel) domain.StepReport {
	var step domain.StepReport

	for _, level := range levels {
		if ctx.Err() != nil {
			return step.AddFailure(s.failure(ctx, account, domain.SyncStepInsights, string(level), ctx.Err()))
		}

		logger := log.ForContext(ctx).WithField("level", level)

		rows, err := s.integrator.GetInsights(ctx, account.ExternalID, level, dr)
		if err != nil && metaclient.IsDegradable(err) && dr.NumDays() > 1 {
			logger.WithFields(log.Fields{
				"kind":  metaclient.KindOf(err),
				"error": err.Error(),
			}).Warn("Intervalo recusado pela API, buscando dia a dia")

			var byDay domain.BatchResult[metadomain.InsightRow]
			byDay, err = s.integrator.GetInsightsByDay(ctx, account.ExternalID, level, dr)
			rows = byDay.Items
			for _, f := range byDay.Failures {
				step = step.AddFailure(s.failure(ctx, account, domain.SyncStepInsights, fmt.Sprintf("%s:%s", level, f.Item), f.Err))
			}
		}
		if err != nil {
			step = step.AddFailure(s.failure(ctx, account, domain.SyncStepInsights, string(level), err))
			if len(rows) == 0 {
				continue
			}
		}

		insights := make([]domain.Insight, 0, len(rows))
		for i := range rows {
			insight, err := insighting.NormalizeInsight(account.ID, level, &rows[i], account.ResultActionType())
			if err != nil {
				logger.WithField("error", err.Error()).Warn("Linha de insight ignorada")
				continue
			}
			insights = append(insights, insight)
		}

		n, err := s.insights.Upsert(ctx, insights)
		step.Stats.Insights += n
		s.metrics.AddRows("insights", n)
		if err != nil {
			step = step.AddFailure(s.failure(ctx, account, domain.SyncStepInsights, string(level), err))
			continue
		}

		logger.WithFields(log.Fields{
			"rows":       len(rows),
			"written":    n,
			"date_range": dr.String(),
		}).Info("Insights sincronizados")
	}

	return step
}

// syncBreakdowns busca cada tipo de forma independente; a falha de um não impede os outros
func (s *Service) syncBreakdowns(ctx context.Context, account *domain.AdAccount, window domain.DateRange, types []domain.BreakdownType) domain.StepReport {
	var step domain.StepReport

	for _, breakdown := range types {
		if ctx.Err() != nil {
			return step.AddFailure(s.failure(ctx, account, domain.SyncStepBreakdowns, string(breakdown), ctx.Err()))
		}

		logger := log.ForContext(ctx).WithField("breakdown", breakdown)

		rows, err := s.integrator.GetBreakdownInsights(ctx, account.ExternalID, breakdown, window)
		if err != nil {
			step = step.AddFailure(s.failure(ctx, account, domain.SyncStepBreakdowns, string(breakdown), err))
			continue
		}

		items := make([]domain.InsightBreakdown, 0, len(rows))
		for i := range rows {
			item, err := insighting.NormalizeBreakdown(account.ID, breakdown, &rows[i], account.ResultActionType())
			if err != nil {
				logger.WithField("error", err.Error()).Debug("Linha de breakdown ignorada")
				continue
			}
			items = append(items, item)
		}

		n, err := s.breakdowns.Upsert(ctx, items)
		step.Stats.Breakdowns += n
		s.metrics.AddRows("breakdowns", n)
		if err != nil {
			step = step.AddFailure(s.failure(ctx, account, domain.SyncStepBreakdowns, string(breakdown), err))
		}
	}

	return step
}

// stampFreshness roda mesmo com falhas parciais, para distinguir "não sincronizou hoje" de "sincronizou com erros"
func (s *Service) stampFreshness(ctx context.Context, account *domain.AdAccount, now time.Time) domain.StepReport {
	var step domain.StepReport

	if err := s.accounts.UpdateLastSyncedAt(ctx, account.ID, now); err != nil {
		return step.AddFailure(s.failure(ctx, account, domain.SyncStepFreshness, "", err))
	}

	return step
}

func (s *Service) failure(ctx context.Context, account *domain.AdAccount, step domain.SyncStep, item string, err error) domain.ErrorDetail {
	s.metrics.IncError(string(step))

	log.ForContext(ctx).WithFields(log.Fields{
		"step":  step,
		"item":  item,
		"error": err.Error(),
	}).Warn("Falha em etapa da sincronização")

	return domain.ErrorDetail{
		AccountID:   account.ID,
		AccountName: account.Name,
		Step:        step,
		Item:        item,
		Kind:        string(metaclient.KindOf(err)),
		Message:     err.Error(),
	}
}

func accountFields(account *domain.AdAccount) log.Fields {
	return log.Fields{
		"account_id":   account.ID,
		"external_id":  account.ExternalID,
		"account_name": account.Name,
	}
}

// ensureCorrelationID mantém o ID da execução; cria um quando a conta é sincronizada isoladamente
func ensureCorrelationID(ctx context.Context) context.Context {
	if log.GetCorrelationID(ctx) != "" {
		return ctx
	}

	ctx, _ = log.WithCorrelationID(ctx)
	return ctx
}
