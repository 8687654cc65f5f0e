package log

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger é o subconjunto de logrus usado pelo pipeline
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	fieldsKey        contextKey = "log_fields"
)

type logger struct {
	entry *logrus.Entry
}

// L é o logger base; ForContext deriva dele os campos da execução
var L Logger = New(logrus.StandardLogger())

// New encapsula um *logrus.Logger; nos testes é usado com o logger nulo de hooks/test
func New(base *logrus.Logger) Logger {
	return &logger{entry: logrus.NewEntry(base)}
}

func (l *logger) WithField(key string, value interface{}) Logger {
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

func (l *logger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *logger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *logger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *logger) Error(args ...interface{}) { l.entry.Error(args...) }

// WithCorrelationID gera um ID de correlação novo e o coloca no contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return ContextWithCorrelationID(ctx, correlationID), correlationID
}

// ContextWithCorrelationID propaga um ID de correlação já existente
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(correlationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ContextWithFields acumula campos no contexto. Campos repetidos são sobrescritos
// pelo valor mais recente, sem alterar o contexto pai.
func ContextWithFields(ctx context.Context, fields Fields) context.Context {
	parent, _ := ctx.Value(fieldsKey).(Fields)

	merged := make(Fields, len(parent)+len(fields))
	for k, v := range parent {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return context.WithValue(ctx, fieldsKey, merged)
}

// ForContext devolve o logger com o ID de correlação e os campos acumulados no contexto
func ForContext(ctx context.Context) Logger {
	if ctx == nil {
		return L
	}

	l := L
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		l = l.WithField(string(correlationIDKey), correlationID)
	}
	if fields, ok := ctx.Value(fieldsKey).(Fields); ok && len(fields) > 0 {
		l = l.WithFields(fields)
	}

	return l
}
