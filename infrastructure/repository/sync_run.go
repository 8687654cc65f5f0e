package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const syncRunsTable = "sync_runs sr"

// SQLSTATE devolvidos quando REFRESH ... CONCURRENTLY não é possível:
// view ainda não populada ou sem índice único.
var concurrentRefreshUnsupported = map[pq.ErrorCode]struct{}{
	"0A000": {}, // feature_not_supported
	"55000": {}, // object_not_in_prerequisite_state
}

//go:generate mockgen -source=sync_run.go -destination=mocks/sync_run.go -package=mocks
type SyncRunRepository interface {
	Create(ctx context.Context, run *domain.SyncRun) error
	GetLatest(ctx context.Context, organizationID string) (*domain.SyncRun, error)
	RefreshMaterializedView(ctx context.Context, name string) error
}

type syncRunRepository struct {
	conn postgres.Queryer
}

func NewSyncRunRepository(conn postgres.Queryer) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

func (r *syncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	errorDetails, err := json.Marshal(run.ErrorDetails)
	if err != nil {
		return fmt.Errorf("erro ao serializar detalhes de erro: %w", err)
	}

	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return fmt.Errorf("erro ao serializar estatísticas: %w", err)
	}

	sqlQuery, args, err := squirrel.
		Insert("sync_runs").
		Columns(
			"id", "correlation_id", "organization_id", "sync_type", "date_from", "date_to",
			"accounts", "total_records", "error_count", "error_details", "stats", "duration_ms", "status", "created_at",
		).
		Values(
			run.ID, run.CorrelationID, run.OrganizationID, run.SyncType,
			run.DateFrom.Format(time.DateOnly), run.DateTo.Format(time.DateOnly),
			run.Accounts, run.TotalRecords, run.ErrorCount, string(errorDetails), string(stats),
			run.Duration.Milliseconds(), run.Status, run.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sqlQuery, args...); err != nil {
		return execError(err)
	}

	return nil
}

func (r *syncRunRepository) GetLatest(ctx context.Context, organizationID string) (*domain.SyncRun, error) {
	query, args, err := squirrel.
		Select("sr.id, sr.correlation_id, sr.organization_id, sr.sync_type, sr.date_from, sr.date_to, sr.accounts, sr.total_records, sr.error_count, sr.error_details, sr.stats, sr.duration_ms, sr.status, sr.created_at").
		From(syncRunsTable).
		Where(squirrel.Eq{"sr.organization_id": organizationID}).
		OrderBy("sr.created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run := &domain.SyncRun{}
	var errorDetails, stats []byte
	var durationMs int64

	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&run.ID,
		&run.CorrelationID,
		&run.OrganizationID,
		&run.SyncType,
		&run.DateFrom,
		&run.DateTo,
		&run.Accounts,
		&run.TotalRecords,
		&run.ErrorCount,
		&errorDetails,
		&stats,
		&durationMs,
		&run.Status,
		&run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, execError(err)
	}

	if err := json.Unmarshal(errorDetails, &run.ErrorDetails); err != nil {
		return nil, fmt.Errorf("erro ao ler detalhes de erro: %w", err)
	}
	if err := json.Unmarshal(stats, &run.Stats); err != nil {
		return nil, fmt.Errorf("erro ao ler estatísticas: %w", err)
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond

	return run, nil
}

// RefreshMaterializedView tenta primeiro a forma concorrente, que não bloqueia leitores.
// Na primeira carga a view não está populada e só a forma simples funciona.
func (r *syncRunRepository) RefreshMaterializedView(ctx context.Context, name string) error {
	view := pq.QuoteIdentifier(name)

	_, err := r.conn.Exec(ctx, "REFRESH MATERIALIZED VIEW CONCURRENTLY "+view)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return execError(err)
	}
	if _, ok := concurrentRefreshUnsupported[pqErr.Code]; !ok {
		return execError(err)
	}

	logrus.WithFields(logrus.Fields{
		"view": name,
		"code": pqErr.Code,
	}).Warn("Refresh concorrente indisponível, usando refresh simples")

	if _, err := r.conn.Exec(ctx, "REFRESH MATERIALIZED VIEW "+view); err != nil {
		return execError(err)
	}

	return nil
}
