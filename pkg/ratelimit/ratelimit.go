package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter answers whether a scoped action is allowed within the current
// window. Implementations count per scope with a fixed window.
type Limiter interface {
	Allow(ctx context.Context, scope string, limit int64, window time.Duration) (allowed bool, count int64, err error)
}

type redisCounter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RedisLimiter counts in Redis so limits hold across replicas.
type RedisLimiter struct {
	counter redisCounter
}

// NewRedisLimiter wraps a redis client as a Limiter.
func NewRedisLimiter(counter redisCounter) *RedisLimiter {
	return &RedisLimiter{counter: counter}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	return l.counter.FixedWindowAllow(ctx, scope, limit, window)
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryLimiter is an in-process fixed-window limiter. It is the fallback for
// single-instance deployments running without Redis; counts reset on restart.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

// NewMemoryLimiter constructs an empty in-process limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.windows[scope]
	if !ok || now.After(entry.resetAt) {
		entry = &memoryWindow{resetAt: now.Add(window)}
		l.windows[scope] = entry
	}

	entry.count++
	if len(l.windows) > 4096 {
		l.evictExpired(now)
	}
	return entry.count <= limit, entry.count, nil
}

func (l *MemoryLimiter) evictExpired(now time.Time) {
	for scope, entry := range l.windows {
		if now.After(entry.resetAt) {
			delete(l.windows, scope)
		}
	}
}
