package domain

import (
	"time"
)

type SyncType string

const (
	SyncTypeYesterday SyncType = "yesterday"
	SyncTypeDays      SyncType = "days"
	SyncTypeRange     SyncType = "range"
	SyncTypeBackfill  SyncType = "backfill"
	SyncTypeScheduled SyncType = "scheduled"
)

type SyncRunStatus string

const (
	SyncRunStatusSuccess SyncRunStatus = "success"
	SyncRunStatusPartial SyncRunStatus = "partial"
)

type SyncStep string

const (
	SyncStepStructure  SyncStep = "structure"
	SyncStepCreatives  SyncStep = "creatives"
	SyncStepInsights   SyncStep = "insights"
	SyncStepBreakdowns SyncStep = "breakdowns"
	SyncStepFreshness  SyncStep = "freshness"
	SyncStepAccount    SyncStep = "account"
)

// SyncStats conta registros gravados por entidade
type SyncStats struct {
	Campaigns  int `json:"campaigns"`
	AdSets     int `json:"ad_sets"`
	Ads        int `json:"ads"`
	Creatives  int `json:"creatives"`
	Insights   int `json:"insights"`
	Breakdowns int `json:"breakdowns"`
	Errors     int `json:"errors"`
}

// Add devolve a soma sem alterar nenhum dos operandos
func (s SyncStats) Add(o SyncStats) SyncStats {
	return SyncStats{
		Campaigns:  s.Campaigns + o.Campaigns,
		AdSets:     s.AdSets + o.AdSets,
		Ads:        s.Ads + o.Ads,
		Creatives:  s.Creatives + o.Creatives,
		Insights:   s.Insights + o.Insights,
		Breakdowns: s.Breakdowns + o.Breakdowns,
		Errors:     s.Errors + o.Errors,
	}
}

// Records é o total de linhas gravadas, sem contar erros
func (s SyncStats) Records() int {
	return s.Campaigns + s.AdSets + s.Ads + s.Creatives + s.Insights + s.Breakdowns
}

type ErrorDetail struct {
	AccountID   string   `json:"account_id"`
	AccountName string   `json:"account_name,omitempty"`
	Step        SyncStep `json:"step"`
	Item        string   `json:"item,omitempty"`
	Kind        string   `json:"kind,omitempty"`
	Message     string   `json:"message"`
}

// ItemFailure é a falha de um item isolado dentro de um lote (um anúncio, uma campanha, um dia)
type ItemFailure struct {
	Item string
	Err  error
}

// BatchResult carrega o que foi obtido e o que falhou em um lote, sem abortar por item
type BatchResult[T any] struct {
	Items    []T
	Failures []ItemFailure
}

func (b *BatchResult[T]) Fail(item string, err error) {
	b.Failures = append(b.Failures, ItemFailure{Item: item, Err: err})
}

// StepReport é o resultado de uma etapa da sincronização de uma conta
type StepReport struct {
	Stats  SyncStats     `json:"stats"`
	Errors []ErrorDetail `json:"errors,omitempty"`
}

func (r StepReport) Merge(o StepReport) StepReport {
	errs := make([]ErrorDetail, 0, len(r.Errors)+len(o.Errors))
	errs = append(errs, r.Errors...)
	errs = append(errs, o.Errors...)

	return StepReport{Stats: r.Stats.Add(o.Stats), Errors: errs}
}

// AddFailure registra uma falha e incrementa o contador de erros
func (r StepReport) AddFailure(detail ErrorDetail) StepReport {
	r.Errors = append(append([]ErrorDetail(nil), r.Errors...), detail)
	r.Stats.Errors++
	return r
}

type AccountReport struct {
	AccountID  string        `json:"account_id"`
	ExternalID string        `json:"external_id"`
	Name       string        `json:"name"`
	DateRange  DateRange     `json:"date_range"`
	Stats      SyncStats     `json:"stats"`
	Errors     []ErrorDetail `json:"errors,omitempty"`
	Duration   time.Duration `json:"duration"`
}

func (r AccountReport) Failed() bool {
	return len(r.Errors) > 0
}

func (r AccountReport) HasErrorKind(kind string) bool {
	for _, e := range r.Errors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// SyncRun é o registro de auditoria de uma execução. Gravado uma vez, ao final.
type SyncRun struct {
	ID             string        `json:"id"`
	CorrelationID  string        `json:"correlation_id"`
	OrganizationID string        `json:"organization_id"`
	SyncType       SyncType      `json:"sync_type"`
	DateFrom       time.Time     `json:"date_from"`
	DateTo         time.Time     `json:"date_to"`
	Accounts       int           `json:"accounts"`
	TotalRecords   int           `json:"total_records"`
	ErrorCount     int           `json:"error_count"`
	ErrorDetails   []ErrorDetail `json:"error_details"`
	Stats          SyncStats     `json:"stats"`
	Duration       time.Duration `json:"duration"`
	Status         SyncRunStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Finish fecha a execução a partir dos relatórios de conta
func (s *SyncRun) Finish(reports []AccountReport, duration time.Duration, now time.Time) {
	var stats SyncStats
	details := []ErrorDetail{}

	for _, r := range reports {
		stats = stats.Add(r.Stats)
		details = append(details, r.Errors...)
	}

	s.Stats = stats
	s.TotalRecords = stats.Records()
	s.ErrorCount = stats.Errors
	s.ErrorDetails = details
	s.Duration = duration
	s.CreatedAt = now
	s.Status = SyncRunStatusSuccess
	if s.ErrorCount > 0 || len(details) > 0 {
		s.Status = SyncRunStatusPartial
	}
}
