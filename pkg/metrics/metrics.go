package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics guarda os coletores Prometheus usados pelo pipeline.
// Todos os métodos aceitam receptor nil, para que testes e a CLI funcionem sem registro.
type Metrics struct {
	APIRequests    *prometheus.CounterVec
	APILatency     *prometheus.HistogramVec
	APIRetries     *prometheus.CounterVec
	RowsWritten    *prometheus.CounterVec
	SyncErrors     *prometheus.CounterVec
	AccountsSynced *prometheus.CounterVec
	RunDuration    prometheus.Gauge
	LastRunSuccess prometheus.Gauge
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry cria e registra o singleton de métricas com o namespace informado
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total de chamadas à API de anúncios por resultado.",
			}, []string{"result"}),
			APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Latência das chamadas à API de anúncios.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"result"}),
			APIRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_retries_total",
				Help:      "Total de novas tentativas por tipo de erro.",
			}, []string{"kind"}),
			RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_written_total",
				Help:      "Linhas gravadas por entidade.",
			}, []string{"entity"}),
			SyncErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_errors_total",
				Help:      "Falhas parciais por etapa da sincronização.",
			}, []string{"step"}),
			AccountsSynced: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accounts_synced_total",
				Help:      "Contas processadas por status.",
			}, []string{"status"}),
			RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_duration_seconds",
				Help:      "Duração da última execução.",
			}),
			LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_success_timestamp_seconds",
				Help:      "Momento da última execução sem erros.",
			}),
		}

		prometheus.MustRegister(
			metricsInstance.APIRequests,
			metricsInstance.APILatency,
			metricsInstance.APIRetries,
			metricsInstance.RowsWritten,
			metricsInstance.SyncErrors,
			metricsInstance.AccountsSynced,
			metricsInstance.RunDuration,
			metricsInstance.LastRunSuccess,
		)
	})
	return metricsInstance
}

func (m *Metrics) ObserveRequest(result string, d time.Duration) {
	if m == nil {
		return
	}

	m.APIRequests.WithLabelValues(result).Inc()
	m.APILatency.WithLabelValues(result).Observe(d.Seconds())
}

func (m *Metrics) IncRetry(kind string) {
	if m == nil {
		return
	}

	m.APIRetries.WithLabelValues(kind).Inc()
}

func (m *Metrics) AddRows(entity string, n int) {
	if m == nil || n <= 0 {
		return
	}

	m.RowsWritten.WithLabelValues(entity).Add(float64(n))
}

func (m *Metrics) IncError(step string) {
	if m == nil {
		return
	}

	m.SyncErrors.WithLabelValues(step).Inc()
}

func (m *Metrics) IncAccount(status string) {
	if m == nil {
		return
	}

	m.AccountsSynced.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveRun(d time.Duration, success bool, now time.Time) {
	if m == nil {
		return
	}

	m.RunDuration.Set(d.Seconds())
	if success {
		m.LastRunSuccess.Set(float64(now.Unix()))
	}
}

// Push envia as métricas para o Pushgateway. Execuções em lote terminam antes de qualquer scrape.
func Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}

	return push.New(url, job).
		Gatherer(prometheus.DefaultGatherer).
		PushContext(ctx)
}
