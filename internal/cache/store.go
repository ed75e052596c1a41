package cache

import (
	"context"
	"sync"
	"time"

	"busfinder/internal/domain/models"
)

// Store holds the last successful load of the filter form options.
type Store interface {
	Get(ctx context.Context) (models.FormOptions, bool, error)
	Set(ctx context.Context, opts models.FormOptions) error
	Invalidate(ctx context.Context) error
}

type memoryEntry struct {
	opts      models.FormOptions
	fetchedAt time.Time
}

// MemoryStore keeps options in process. A zero TTL never expires.
type MemoryStore struct {
	TTL time.Duration
	Now func() time.Time

	mu    sync.RWMutex
	entry *memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{TTL: ttl}
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MemoryStore) Get(_ context.Context) (models.FormOptions, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entry == nil {
		return models.FormOptions{}, false, nil
	}
	if s.TTL > 0 && s.now().Sub(s.entry.fetchedAt) >= s.TTL {
		return models.FormOptions{}, false, nil
	}
	return s.entry.opts, true, nil
}

func (s *MemoryStore) Set(_ context.Context, opts models.FormOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = &memoryEntry{opts: opts, fetchedAt: s.now()}
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context) error {
	s.mu.Lock()
	s.entry = nil
	s.mu.Unlock()
	return nil
}
