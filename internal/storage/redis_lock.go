package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"UpWatch/internal/config"
)

const lockKey = "checker:run-lock"

// releaseScript deletes the lock only when this run still owns it, in one
// round trip. Without the compare-and-delete another run could acquire the
// key after our Get and lose its lock to our Del.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// runLock is a redis SET NX lock held for the duration of one run, so two
// overlapping scheduled invocations cannot double-report.
type runLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRunLock(cfg *config.RedisConfig, ttl time.Duration, log *slog.Logger) (RunLock, error) {
	client := redis.NewClient(cfg.GetRedisOptions())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis")
	return &runLock{client: client, ttl: ttl}, nil
}

func (l *runLock) Acquire(ctx context.Context, owner string) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey, owner, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis SetNX failed: %w", err)
	}
	return ok, nil
}

// Release is a no-op when the lock expired or was taken over. The TTL covers
// the case where a crashed run never releases.
func (l *runLock) Release(ctx context.Context, owner string) error {
	if err := releaseScript.Run(ctx, l.client, []string{lockKey}, owner).Err(); err != nil {
		return fmt.Errorf("redis release script failed: %w", err)
	}
	return nil
}

func (l *runLock) Close() error {
	return l.client.Close()
}
