package utils

import (
	"context"
	"time"
)

// Sleeper permite trocar a espera real nos testes
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep espera d ou até o contexto ser cancelado
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
