package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	metadomain "github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/domain"
)

// Kind classifica um erro da API uma única vez, no ponto em que o código é conhecido.
// A política de retry e de degradação depende só do Kind.
type Kind string

const (
	KindNetwork         Kind = "network"
	KindTimeout         Kind = "timeout"
	KindRateLimit       Kind = "rate_limit"
	KindTransient       Kind = "transient"
	KindPayloadTooLarge Kind = "payload_too_large"
	KindUnknown         Kind = "unknown"
	KindAuth            Kind = "auth"
	KindPermanent       Kind = "permanent"
)

// Códigos de limite de taxa da Graph API e da Marketing API
var rateLimitCodes = map[int]struct{}{
	4:   {},
	17:  {},
	32:  {},
	613: {},
}

const (
	codeUnknown         = 1
	codeTransient       = 2
	codeInvalidParam    = 100
	subcodeDataTooLarge = 1487534
)

type APIError struct {
	Kind       Kind
	Code       int
	Subcode    int
	Message    string
	HTTPStatus int
	Err        error
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("meta api (%s, código %d/%d): %s", e.Kind, e.Code, e.Subcode, e.Message)
	}

	return fmt.Sprintf("meta api (%s): %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Classify decide o Kind a partir do envelope de erro devolvido pela API
func Classify(details *metadomain.ErrorDetails) Kind {
	if details == nil {
		return KindPermanent
	}

	msg := strings.ToLower(details.Message)

	if details.IsTokenExpired() {
		return KindAuth
	}

	if _, ok := rateLimitCodes[details.Code]; ok || (details.Code >= 80000 && details.Code <= 80014) {
		return KindRateLimit
	}

	switch {
	case details.Code == codeTransient || details.IsTransient:
		return KindTransient
	case details.Code == codeUnknown && strings.Contains(msg, "reduce the amount of data"):
		return KindPayloadTooLarge
	case details.Code == codeInvalidParam && details.ErrorSubcode == subcodeDataTooLarge:
		return KindPayloadTooLarge
	case strings.Contains(msg, "temporarily"):
		return KindTransient
	case details.Code == codeUnknown:
		return KindUnknown
	}

	return KindPermanent
}

func newEnvelopeError(status int, details *metadomain.ErrorDetails) *APIError {
	return &APIError{
		Kind:       Classify(details),
		Code:       details.Code,
		Subcode:    details.ErrorSubcode,
		Message:    details.Message,
		HTTPStatus: status,
	}
}

func newStatusError(status int, body []byte) *APIError {
	kind := KindPermanent
	switch {
	case status == http.StatusTooManyRequests:
		kind = KindRateLimit
	case status == http.StatusUnauthorized:
		kind = KindAuth
	case status >= http.StatusInternalServerError:
		kind = KindTransient
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 300 {
		msg = msg[:300]
	}

	return &APIError{Kind: kind, HTTPStatus: status, Message: fmt.Sprintf("status %d: %s", status, msg)}
}

// transportError converte falhas do http.Client. Cancelamento do contexto não é reclassificado.
func transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Message: "tempo limite da requisição excedido", Err: err}
	}

	return &APIError{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// KindOf devolve o Kind de err, ou "" quando não é um erro da API
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	return ""
}

// IsRetryable indica se vale repetir a mesma requisição depois de esperar
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindTimeout, KindRateLimit, KindTransient:
		return true
	}

	return false
}

// IsAuth indica que o token de acesso foi rejeitado; nenhuma outra conta terá sucesso com ele
func IsAuth(err error) bool {
	return KindOf(err) == KindAuth
}

// IsDegradable indica se a chamada pode ser refeita em partes menores
// (por campanha ou por dia). Limite de taxa e erros permanentes não melhoram dividindo.
func IsDegradable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	switch KindOf(err) {
	case KindPayloadTooLarge, KindUnknown, KindTimeout, KindTransient, KindNetwork:
		return true
	}

	return false
}
