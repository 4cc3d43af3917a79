package cache

import (
	"context"
	"sync"
	"time"

	"club-roster/internal/pkg/errs"
)

// MemoryStore keeps entries in process. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return Entry{}, errs.ErrCacheMiss
	}
	e.Payload = append([]byte(nil), e.Payload...)
	return e, nil
}

func (s *MemoryStore) Set(_ context.Context, entry Entry) error {
	entry.Payload = append([]byte(nil), entry.Payload...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Key] = entry
	return nil
}

// Purge drops entries fetched before cutoff.
func (s *MemoryStore) Purge(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, e := range s.entries {
		if e.FetchedAt.Before(cutoff) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}
