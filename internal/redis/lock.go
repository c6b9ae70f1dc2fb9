package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hackgods/counseling-scheduler/internal/session"
)

// ActionLocker is a session.Locker shared by every web node: one SET NX key per action site.
type ActionLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewActionLocker(client *redis.Client, ttl time.Duration) *ActionLocker {
	return &ActionLocker{client: client, ttl: ttl}
}

func (l *ActionLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire action lock: %w", err)
	}
	if !ok {
		return session.ErrLockNotAcquired
	}

	defer func() {
		// released on a fresh context so a cancelled request still frees the key
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = l.release(relCtx, key, token)
	}()

	return fn(ctx)
}

// unlockScript deletes the key only if this holder still owns it.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *ActionLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release action lock: %w", err)
	}
	return nil
}
