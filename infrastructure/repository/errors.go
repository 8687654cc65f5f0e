package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// upsertChunkSize limita o número de linhas por INSERT para ficar longe do limite de parâmetros do Postgres
const upsertChunkSize = 200

func execError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}

	return fmt.Errorf("failed to execute query: %w", err)
}

// jsonbArg envia JSON em bruto como texto; []byte seria enviado como bytea
func jsonbArg(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}

	return string(raw)
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}

	return s
}
