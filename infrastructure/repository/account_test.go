package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

func newMock(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return postgres.Wrap(db), mock
}

func TestAccountRepository_ListSyncableAccounts(t *testing.T) {
	columns := []string{"id", "organization_id", "external_id", "name", "objective", "primary_action_type", "target_cost_per_result", "target_roas", "status", "last_synced_at"}
	synced := time.Date(2026, 2, 10, 4, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		externalID string
		setup      func(mock sqlmock.Sqlmock)
		validate   func(t *testing.T, accounts []*domain.AdAccount)
	}{
		{
			name: "Lista contas ativas da organização",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM accounts a WHERE a.organization_id = $1 AND a.status = $2 ORDER BY a.name ASC")).
					WithArgs("org-1", "ACTIVE").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("acc-1", "org-1", "111", "Clínica", nil, "lead", "25.50", nil, "ACTIVE", synced).
						AddRow("acc-2", "org-1", "222", "Loja", "OUTCOME_SALES", nil, nil, "3.5", "ACTIVE", nil))
			},
			validate: func(t *testing.T, accounts []*domain.AdAccount) {
				require.Len(t, accounts, 2)
				assert.Equal(t, "lead", accounts[0].ResultActionType())
				require.NotNil(t, accounts[0].TargetCostPerResult)
				assert.Equal(t, 25.5, *accounts[0].TargetCostPerResult)
				assert.Equal(t, synced, *accounts[0].LastSyncedAt)
				assert.Equal(t, "", accounts[1].ResultActionType())
				assert.Nil(t, accounts[1].LastSyncedAt)
			},
		},
		{
			name:       "Filtra por conta externa sem o prefixo act_",
			externalID: "act_222",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("AND a.external_id = $3")).
					WithArgs("org-1", "ACTIVE", "222").
					WillReturnRows(sqlmock.NewRows(columns))
			},
			validate: func(t *testing.T, accounts []*domain.AdAccount) {
				assert.Empty(t, accounts)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMock(t)
			tt.setup(mock)

			accounts, err := NewAccountRepository(conn).ListSyncableAccounts(context.Background(), "org-1", tt.externalID)

			require.NoError(t, err)
			tt.validate(t, accounts)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_UpdateLastSyncedAt(t *testing.T) {
	now := time.Date(2026, 2, 11, 3, 10, 0, 0, time.UTC)

	tests := []struct {
		name    string
		affected int64
		wantErr  error
	}{
		{name: "Atualiza o carimbo", affected: 1},
		{name: "Conta inexistente", affected: 0, wantErr: ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMock(t)
			mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET last_synced_at = $1, updated_at = NOW() WHERE id = $2")).
				WithArgs(now, "acc-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := NewAccountRepository(conn).UpdateLastSyncedAt(context.Background(), "acc-1", now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
