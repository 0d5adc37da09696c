package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

// CodeStore persists one-time codes keyed by flow type and identifier. Codes
// are single-use: a successful Consume removes the stored value.
type CodeStore interface {
	Put(ctx context.Context, otpType enums.OTPType, identifier, code string, ttl time.Duration) error
	Consume(ctx context.Context, otpType enums.OTPType, identifier, code string) (bool, error)
}

type redisCommands interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	OTPKey(otpType, identifier string) string
}

// RedisStore keeps codes in Redis so verification works across replicas.
type RedisStore struct {
	client redisCommands
}

// NewRedisStore wraps a redis client as a CodeStore.
func NewRedisStore(client redisCommands) *RedisStore {
	return &RedisStore{client: client}
}

// Put implements CodeStore.
func (s *RedisStore) Put(ctx context.Context, otpType enums.OTPType, identifier, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.client.OTPKey(otpType.String(), identifier), code, ttl)
}

// Consume implements CodeStore. An expired or unknown key reads as a plain
// mismatch so callers cannot distinguish the two.
func (s *RedisStore) Consume(ctx context.Context, otpType enums.OTPType, identifier, code string) (bool, error) {
	key := s.client.OTPKey(otpType.String(), identifier)
	stored, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	if err := s.client.Del(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is the in-process fallback for deployments without Redis.
// Codes do not survive restarts.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore constructs an empty in-process code store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func memoryKey(otpType enums.OTPType, identifier string) string {
	return otpType.String() + ":" + identifier
}

// Put implements CodeStore.
func (s *MemoryStore) Put(_ context.Context, otpType enums.OTPType, identifier, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[memoryKey(otpType, identifier)] = memoryEntry{
		code:      code,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Consume implements CodeStore.
func (s *MemoryStore) Consume(_ context.Context, otpType enums.OTPType, identifier, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey(otpType, identifier)
	entry, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(code)) != 1 {
		return false, nil
	}
	delete(s.entries, key)
	return true, nil
}
