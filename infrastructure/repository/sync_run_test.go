package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

func TestSyncRunRepository_Create(t *testing.T) {
	conn, mock := newMock(t)

	createdAt := time.Date(2026, 2, 11, 3, 30, 0, 0, time.UTC)
	run := &domain.SyncRun{
		ID:             "run-1",
		CorrelationID:  "corr-1",
		OrganizationID: "org-1",
		SyncType:       domain.SyncTypeYesterday,
		DateFrom:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		DateTo:         time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Accounts:       2,
		TotalRecords:   40,
		ErrorCount:     1,
		ErrorDetails:   []domain.ErrorDetail{{AccountID: "acc-1", Step: domain.SyncStepBreakdowns, Message: "falhou"}},
		Stats:          domain.SyncStats{Insights: 40, Errors: 1},
		Duration:       90 * time.Second,
		Status:         domain.SyncRunStatusPartial,
		CreatedAt:      createdAt,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_runs (id,correlation_id,organization_id,sync_type,date_from,date_to,accounts,total_records,error_count,error_details,stats,duration_ms,status,created_at)")).
		WithArgs(
			"run-1", "corr-1", "org-1", "yesterday", "2026-02-10", "2026-02-10",
			2, 40, 1,
			`[{"account_id":"acc-1","step":"breakdowns","message":"falhou"}]`,
			`{"campaigns":0,"ad_sets":0,"ads":0,"creatives":0,"insights":40,"breakdowns":0,"errors":1}`,
			int64(90000), "partial", createdAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := NewSyncRunRepository(conn).Create(context.Background(), run)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepository_RefreshMaterializedView(t *testing.T) {
	concurrent := regexp.QuoteMeta(`REFRESH MATERIALIZED VIEW CONCURRENTLY "mv_account_daily_performance"`)
	plain := regexp.QuoteMeta(`REFRESH MATERIALIZED VIEW "mv_account_daily_performance"`) + "$"

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "Refresh concorrente",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(concurrent).WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "View não populada cai para o refresh simples",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(concurrent).WillReturnError(&pq.Error{Code: "0A000", Message: "CONCURRENTLY cannot be used when the materialized view is not populated"})
				mock.ExpectExec(plain).WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "View inexistente não tenta de novo",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(concurrent).WillReturnError(&pq.Error{Code: "42P01", Message: "relation does not exist"})
			},
			wantErr: true,
		},
		{
			name: "Erro de conexão não tenta de novo",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(concurrent).WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMock(t)
			tt.setup(mock)

			err := NewSyncRunRepository(conn).RefreshMaterializedView(context.Background(), "mv_account_daily_performance")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSyncRunRepository_GetLatest(t *testing.T) {
	conn, mock := newMock(t)

	columns := []string{"id", "correlation_id", "organization_id", "sync_type", "date_from", "date_to", "accounts", "total_records", "error_count", "error_details", "stats", "duration_ms", "status", "created_at"}
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_runs sr WHERE sr.organization_id = $1 ORDER BY sr.created_at DESC LIMIT 1")).
		WithArgs("org-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"run-1", "corr-1", "org-1", "scheduled", day, day, 3, 120, 0,
			[]byte(`[]`), []byte(`{"insights":120}`), int64(4500), "success", day,
		))

	run, err := NewSyncRunRepository(conn).GetLatest(context.Background(), "org-1")

	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, domain.SyncTypeScheduled, run.SyncType)
	assert.Equal(t, 120, run.Stats.Insights)
	assert.Equal(t, 4500*time.Millisecond, run.Duration)
	assert.Equal(t, domain.SyncRunStatusSuccess, run.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepository_GetLatest_NoRuns(t *testing.T) {
	conn, mock := newMock(t)

	mock.ExpectQuery("FROM sync_runs").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	run, err := NewSyncRunRepository(conn).GetLatest(context.Background(), "org-1")

	assert.NoError(t, err)
	assert.Nil(t, run)
}
