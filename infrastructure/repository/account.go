package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

const (
	accountsTable = "accounts a"
)

var ErrAccountNotFound = errors.New("account not found")

//go:generate mockgen -source=account.go -destination=mocks/account.go -package=mocks
type AccountRepository interface {
	// ListSyncableAccounts devolve as contas ativas da organização; externalID opcional restringe a uma conta
	ListSyncableAccounts(ctx context.Context, organizationID, externalID string) ([]*domain.AdAccount, error)
	UpdateLastSyncedAt(ctx context.Context, accountID string, syncedAt time.Time) error
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) ListSyncableAccounts(ctx context.Context, organizationID, externalID string) ([]*domain.AdAccount, error) {
	queryBuilder := squirrel.
		Select("a.id, a.organization_id, a.external_id, a.name, a.objective, a.primary_action_type, a.target_cost_per_result, a.target_roas, a.status, a.last_synced_at").
		From(accountsTable).
		Where(squirrel.Eq{"a.organization_id": organizationID, "a.status": domain.AdAccountStatusActive}).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if externalID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.external_id": strings.TrimPrefix(externalID, "act_")})
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.Query(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		return nil, execError(err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc := &domain.AdAccount{}
		if err := rows.Scan(
			&acc.ID,
			&acc.OrganizationID,
			&acc.ExternalID,
			&acc.Name,
			&acc.Objective,
			&acc.PrimaryActionType,
			&acc.TargetCostPerResult,
			&acc.TargetROAS,
			&acc.Status,
			&acc.LastSyncedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}

		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

func (a *accountRepository) UpdateLastSyncedAt(ctx context.Context, accountID string, syncedAt time.Time) error {
	if accountID == "" {
		return errors.New("ID is required")
	}

	sqlQuery, args, err := squirrel.
		Update("accounts").
		Set("last_synced_at", syncedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := a.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return execError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
