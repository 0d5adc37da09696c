package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/pmrathi94/VivahSetu/pkg/config"
)

// NewMemoryManager constructs a session manager backed by a process-local
// map, for deployments without Redis. Sessions do not survive restarts and
// are not shared across replicas.
func NewMemoryManager(cfg config.JWTConfig) (*Manager, error) {
	ttl, err := refreshTTL(cfg)
	if err != nil {
		return nil, err
	}
	store := newMemorySessionStore()
	return &Manager{
		store: store,
		keyer: store,
		ttl:   ttl,
	}, nil
}

type memorySessionEntry struct {
	value     string
	expiresAt time.Time
}

type memorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memorySessionEntry
	now     func() time.Time
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		entries: make(map[string]memorySessionEntry),
		now:     time.Now,
	}
}

func (s *memorySessionStore) AccessSessionKey(accessID string) string {
	return "session:access:" + accessID
}

func (s *memorySessionStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("unsupported session value type %T", value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memorySessionEntry{value: str, expiresAt: s.now().Add(ttl)}
	return nil
}

// Get mirrors the Redis client's miss signal so Manager treats both stores
// the same.
func (s *memorySessionStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", redislib.Nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", redislib.Nil
	}
	return entry.value, nil
}

func (s *memorySessionStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}
