package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Stockify-api/internal/application/ports"
)

var _ ports.TokenRevocationStore = (*MemoryStore)(nil)

// MemoryStore lista de revocación en proceso, para desarrollo y una sola réplica.
// Las entradas vencidas se purgan al revocar.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.entries {
		if !exp.After(now) {
			delete(s.entries, k)
		}
	}
	s.entries[jti] = now.Add(ttl)
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.entries[jti]
	return ok && exp.After(s.now()), nil
}
