package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-manager-sync/internal/config"
)

// ErrLocked indica que outra execução já detém o lock
var ErrLocked = errors.New("já existe uma sincronização em andamento")

// Release libera o lock adquirido. Chamar mais de uma vez não tem efeito.
type Release func(ctx context.Context) error

//go:generate mockgen -source=lock.go -destination=mocks/lock.go -package=mocks
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// NewLocker usa Redis quando REDIS_ADDR está configurado e um lock em memória caso contrário
func NewLocker(cfg config.Redis) Locker {
	if cfg.Addr == "" {
		logrus.Debug("lock: REDIS_ADDR vazio, usando lock local")
		return NewLocalLocker()
	}

	return NewRedisLocker(cfg)
}

// LocalLocker serializa execuções dentro do mesmo processo
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expires, ok := l.held[key]; ok && l.now().Before(expires) {
		return nil, ErrLocked
	}

	expires := l.now().Add(ttl)
	l.held[key] = expires

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()

			// Só remove se o lock ainda é o nosso; pode ter expirado e sido adquirido por outro
			if current, ok := l.held[key]; ok && current.Equal(expires) {
				delete(l.held, key)
			}
		})
		return nil
	}, nil
}
