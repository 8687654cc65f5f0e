package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/database/postgres"
)

const versionsTable = "schema_migrations"

// Apply executa os arquivos .sql ainda não aplicados, em ordem lexicográfica,
// cada um na sua própria transação. Devolve os nomes aplicados nesta chamada.
func Apply(ctx context.Context, conn postgres.Conn, filesystem fs.FS) ([]string, error) {
	if _, err := conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+versionsTable+` (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return nil, fmt.Errorf("erro ao criar tabela de versões: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(filesystem, ".")
	if err != nil {
		return nil, fmt.Errorf("erro ao ler migrações: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var done []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		if _, ok := applied[name]; ok {
			continue
		}

		sqlBytes, err := fs.ReadFile(filesystem, name)
		if err != nil {
			return done, fmt.Errorf("erro ao ler migração %s: %w", name, err)
		}

		if len(strings.TrimSpace(string(sqlBytes))) == 0 {
			continue
		}

		insertSQL, insertArgs, err := squirrel.
			Insert(versionsTable).
			Columns("version").
			Values(name).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return done, fmt.Errorf("erro ao construir a query: %w", err)
		}

		err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, insertSQL, insertArgs...)
			return err
		})
		if err != nil {
			return done, fmt.Errorf("erro ao aplicar migração %s: %w", name, err)
		}

		logrus.WithField("version", name).Info("Migração aplicada")
		done = append(done, name)
	}

	return done, nil
}

func appliedVersions(ctx context.Context, conn postgres.Queryer) (map[string]struct{}, error) {
	query, args, err := squirrel.
		Select("version").
		From(versionsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar versões aplicadas: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("erro ao ler versão: %w", err)
		}
		applied[version] = struct{}{}
	}

	return applied, rows.Err()
}
