package preferences

import (
	"context"
	"sync"
)

// Store loads and saves preferences. Load returns Defaults when nothing is stored.
type Store interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, p Preferences) error
}

// MemoryStore keeps preferences in memory; it does not survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Load(ctx context.Context) (Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FromValues(s.values), nil
}

func (s *MemoryStore) Save(ctx context.Context, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = p.Values()
	return nil
}
