package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	metadomain "github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-sync/internal/config"
	"github.com/vfg2006/traffic-manager-sync/pkg/log"
	"github.com/vfg2006/traffic-manager-sync/pkg/metrics"
	"github.com/vfg2006/traffic-manager-sync/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks
type Client interface {
	// FetchJSON faz um GET com throttle e retry e devolve o corpo já sem envelope de erro
	FetchJSON(ctx context.Context, rawURL string) ([]byte, error)
	// FetchAllPages segue paging.next até o fim e concatena os data de cada página
	FetchAllPages(ctx context.Context, rawURL string) ([]jsoniter.RawMessage, error)
}

var DefaultBackoff = []time.Duration{15 * time.Second, 30 * time.Second, 60 * time.Second, 120 * time.Second}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	backoff    []time.Duration
	sleep      utils.Sleeper
	metrics    *metrics.Metrics
}

type Option func(*MetaClient)

func WithHTTPClient(c *http.Client) Option {
	return func(m *MetaClient) { m.httpClient = c }
}

func WithSleeper(s utils.Sleeper) Option {
	return func(m *MetaClient) { m.sleep = s }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *MetaClient) { m.metrics = mt }
}

func NewClient(cfg *config.Config, opts ...Option) *MetaClient {
	timeout := cfg.Sync.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	backoff := cfg.Sync.BackoffSchedule
	if backoff == nil {
		backoff = DefaultBackoff
	}

	// Um token por RequestDelay, compartilhado por todas as chamadas deste cliente.
	// O balde nasce vazio: a primeira chamada também espera o intervalo.
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Sync.RequestDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.Sync.RequestDelay), 1)
		limiter.Allow()
	}

	client := &MetaClient{
		Cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		backoff:    backoff,
		sleep:      utils.Sleep,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// URL monta o endereço de um recurso da Graph API na versão configurada
func (c *MetaClient) URL(path string, params url.Values) string {
	return BuildURL(c.Cfg.Meta.URL, path, params)
}

func BuildURL(baseURL, path string, params url.Values) string {
	base := fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), strings.TrimLeft(path, "/"))
	if len(params) == 0 {
		return base
	}

	return base + "?" + params.Encode()
}

func (c *MetaClient) FetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	return c.fetchWithRetry(ctx, rawURL)
}

func (c *MetaClient) fetchWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	logger := log.ForContext(ctx).WithField("path", redact(rawURL))

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.do(ctx, rawURL)
		if err == nil {
			return body, nil
		}

		if !IsRetryable(err) || attempt >= len(c.backoff) {
			return nil, err
		}

		delay := c.backoff[attempt]
		kind := KindOf(err)
		c.metrics.IncRetry(string(kind))

		logger.WithFields(log.Fields{
			"attempt": attempt + 1,
			"kind":    kind,
			"wait":    delay.String(),
		}).WithError(err).Warn("Erro temporário na API do Meta, aguardando para tentar novamente")

		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (c *MetaClient) do(ctx context.Context, rawURL string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.withToken(rawURL), nil)
	if err != nil {
		return nil, &APIError{Kind: KindPermanent, Message: "erro ao criar a requisição", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = transportError(ctx, err)
		c.metrics.ObserveRequest(resultLabel(err), time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = transportError(ctx, err)
		c.metrics.ObserveRequest(resultLabel(err), time.Since(start))
		return nil, err
	}

	err = checkResponse(resp.StatusCode, body)
	c.metrics.ObserveRequest(resultLabel(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	return body, nil
}

// checkResponse trata o envelope de erro independente do status HTTP;
// a Graph API devolve erros com 200 em algumas rotas.
func checkResponse(status int, body []byte) error {
	var envelope metadomain.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return newEnvelopeError(status, envelope.Error)
	}

	if status >= http.StatusBadRequest {
		return newStatusError(status, body)
	}

	return nil
}

func (c *MetaClient) withToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	if q.Get("access_token") != "" || c.Cfg.Meta.AccessToken == "" {
		return rawURL
	}

	q.Set("access_token", c.Cfg.Meta.AccessToken)
	u.RawQuery = q.Encode()

	return u.String()
}

// redact devolve só o caminho da URL, sem query string nem token
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<url inválida>"
	}

	return u.Path
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}

	if kind := KindOf(err); kind != "" {
		return string(kind)
	}

	return "canceled"
}
