package migration

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/migration/migrations"
)

func TestApply(t *testing.T) {
	files := fstest.MapFS{
		"001_a.sql": {Data: []byte("CREATE TABLE a (id INT)")},
		"002_b.sql": {Data: []byte("CREATE TABLE b (id INT)")},
		"README.md": {Data: []byte("não é migração")},
	}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    []string
		wantErr bool
	}{
		{
			name: "Aplica apenas as pendentes",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM schema_migrations")).
					WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("001_a.sql"))
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT)")).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (version) VALUES ($1)")).
					WithArgs("002_b.sql").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			want: []string{"002_b.sql"},
		},
		{
			name: "Falha desfaz a transação da migração",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM schema_migrations")).
					WillReturnRows(sqlmock.NewRows([]string{"version"}))
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INT)")).
					WillReturnError(errors.New("syntax error"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)

			applied, err := Apply(context.Background(), postgres.Wrap(db), files)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, applied)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, applied)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrations.Files.ReadDir(".")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.Contains(t, names, "001_sync_schema.sql")
	assert.Contains(t, names, "002_account_daily_performance.sql")

	schema, err := migrations.Files.ReadFile("001_sync_schema.sql")
	require.NoError(t, err)
	assert.Contains(t, string(schema), "COALESCE(campaign_platform_id, '')")
}
