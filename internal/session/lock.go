package session

import (
	"context"
	"errors"
	"sync"
)

var ErrLockNotAcquired = errors.New("a request is already in progress")

// Locker runs fn while holding key. A held key fails fast with ErrLockNotAcquired.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// ActionKey names the lock for one action site of one session.
func ActionKey(sid, action string) string {
	return "lock:action:" + sid + ":" + action
}

// LocalLocker guards keys within a single process.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

func (l *LocalLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	if _, busy := l.held[key]; busy {
		l.mu.Unlock()
		return ErrLockNotAcquired
	}
	l.held[key] = struct{}{}
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}()

	return fn(ctx)
}
