package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vfg2006/traffic-manager-sync/internal/config"
)

const keyPrefix = "ads-sync:lock:"

// releaseScript apaga a chave apenas se o token ainda for o de quem adquiriu
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker impede que duas réplicas sincronizem a mesma organização ao mesmo tempo
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(cfg config.Redis) *RedisLocker {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx %s: %w", redisKey, err)
	}

	if !ok {
		return nil, ErrLocked
	}

	var once sync.Once
	return func(ctx context.Context) error {
		var releaseErr error
		once.Do(func() {
			if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil && err != redis.Nil {
				releaseErr = fmt.Errorf("redis release %s: %w", redisKey, err)
			}
		})
		return releaseErr
	}, nil
}
