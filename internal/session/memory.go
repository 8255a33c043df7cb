package session

import (
	"context"
	"sync"
	"time"

	appErrors "mindhaven/pkg/errors"
)

// MemoryStore is an in-process Store used in tests and single-node
// development runs.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	records map[string]memoryEntry
}

type memoryEntry struct {
	record    Record
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		records: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Record, error) {
	s.mu.RLock()
	entry, ok := s.records[token]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, appErrors.ErrSessionNotFound
	}

	record := entry.record
	return &record, nil
}

func (s *MemoryStore) Set(_ context.Context, token string, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[token] = memoryEntry{
		record:    *record,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, token)
	return nil
}

// Len reports live (non-expired) sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	now := time.Now()
	for _, entry := range s.records {
		if now.Before(entry.expiresAt) {
			n++
		}
	}
	return n
}
