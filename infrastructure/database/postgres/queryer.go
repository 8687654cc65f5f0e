package postgres

import (
	"context"
	"database/sql"
)

// Queryer é o subconjunto usado pelos repositórios; cada chamada é auto-commit
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) *sql.Row
}

var _ Conn = (*Connection)(nil)
