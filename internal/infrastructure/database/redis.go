package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

type RedisClient struct{ *redis.Client }

func NewRedis(addr, pass string, db int) *RedisClient {
	return &RedisClient{redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (c *RedisClient) Ping(ctx context.Context) error { return c.Client.Ping(ctx).Err() }

// releaseScript deletes the lock key only when still held by this owner, so
// a lock that expired and was re-acquired elsewhere is never released here.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// KeyedLock implements domain.KeyedLocker with Redis SET NX. The TTL bounds
// how long a crashed holder can block other requests for the same student.
type KeyedLock struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	retry  time.Duration
}

// NewKeyedLock creates a Redis-backed per-key advisory lock.
func NewKeyedLock(client *redis.Client, ttl time.Duration) *KeyedLock {
	return &KeyedLock{
		client: client,
		prefix: "gate:lock:",
		ttl:    ttl,
		retry:  25 * time.Millisecond,
	}
}

// Acquire implements domain.KeyedLocker. It polls SET NX until the lock is
// held or ctx is done.
func (l *KeyedLock) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := l.prefix + key
	owner := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, owner, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{lockKey}, owner).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

var _ domain.KeyedLocker = (*KeyedLock)(nil)
