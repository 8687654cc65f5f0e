package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-manager-sync/internal/config"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 11, 3, 0, 0, 0, time.UTC)

	locker := NewLocalLocker()
	locker.now = func() time.Time { return now }

	release, err := locker.Acquire(ctx, "org-1", time.Hour)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "org-1", time.Hour)
	assert.ErrorIs(t, err, ErrLocked)

	_, err = locker.Acquire(ctx, "org-2", time.Hour)
	assert.NoError(t, err, "outra organização não compartilha o lock")

	require.NoError(t, release(ctx))
	_, err = locker.Acquire(ctx, "org-1", time.Hour)
	assert.NoError(t, err)
}

func TestLocalLocker_ExpiredLockCanBeTaken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 11, 3, 0, 0, 0, time.UTC)

	locker := NewLocalLocker()
	locker.now = func() time.Time { return now }

	staleRelease, err := locker.Acquire(ctx, "org-1", time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = locker.Acquire(ctx, "org-1", time.Minute)
	require.NoError(t, err)

	// liberar o lock expirado não pode soltar o lock do novo dono
	require.NoError(t, staleRelease(ctx))
	_, err = locker.Acquire(ctx, "org-1", time.Minute)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestNewLocker(t *testing.T) {
	assert.IsType(t, &LocalLocker{}, NewLocker(config.Redis{}))
	assert.IsType(t, &RedisLocker{}, NewLocker(config.Redis{Addr: "localhost:6379"}))
}
