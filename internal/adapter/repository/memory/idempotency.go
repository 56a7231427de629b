package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pocketbank/transfercore/internal/usecase"
)

// IdempotencyStore is the in-memory fallback for deployments without Redis.
// Entries expire lazily on access.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	clock   usecase.Clock
}

type idempotencyEntry struct {
	response  []byte
	expiresAt time.Time
}

// NewIdempotencyStore creates a new in-memory IdempotencyStore.
func NewIdempotencyStore(clock usecase.Clock) *IdempotencyStore {
	return &IdempotencyStore{
		entries: make(map[string]idempotencyEntry),
		clock:   clock,
	}
}

// CheckAndSet atomically checks if key exists, claiming it if not.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	entry, ok := s.entries[key]
	if ok && entry.expiresAt.After(now) {
		return true, entry.response, nil
	}

	s.entries[key] = idempotencyEntry{
		response:  response,
		expiresAt: now.Add(ttl),
	}

	return false, nil, nil
}

// Update stores the final response for a claimed key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = idempotencyEntry{
		response:  response,
		expiresAt: s.clock.Now().Add(ttl),
	}

	return nil
}
