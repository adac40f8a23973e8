package store

import (
	"context"
	"sync"

	"singate/internal/validation/models"
)

// InMemoryStore keeps the most recent validation records in a fixed-size
// ring. It is the fallback when no Postgres URL is configured and the
// default backend in tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	records  []models.ValidationRecord
	next     int
	filled   bool
	capacity int
}

// NewInMemoryStore creates a ring holding up to capacity records. Capacity
// must be positive; anything else falls back to 1024.
func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = 1024
	}
	return &InMemoryStore{
		records:  make([]models.ValidationRecord, capacity),
		capacity: capacity,
	}
}

// Append stores one record, evicting the oldest when the ring is full.
func (s *InMemoryStore) Append(ctx context.Context, record models.ValidationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[s.next] = record
	s.next++
	if s.next == s.capacity {
		s.next = 0
		s.filled = true
	}
	return nil
}

// ListRecent returns up to limit records, newest first.
func (s *InMemoryStore) ListRecent(ctx context.Context, limit int) ([]models.ValidationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.size()
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]models.ValidationRecord, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, s.at(size-1-i))
	}
	return out, nil
}

// ListByDigest returns up to limit records with the given digest, newest
// first.
func (s *InMemoryStore) ListByDigest(ctx context.Context, digest string, limit int) ([]models.ValidationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.size()
	if limit <= 0 {
		limit = size
	}

	var out []models.ValidationRecord
	for i := size - 1; i >= 0 && len(out) < limit; i-- {
		if r := s.at(i); r.SINDigest == digest {
			out = append(out, r)
		}
	}
	return out, nil
}

// Health always succeeds for the in-memory backend.
func (s *InMemoryStore) Health(ctx context.Context) error {
	return nil
}

// size returns the number of stored records. Callers must hold the lock.
func (s *InMemoryStore) size() int {
	if s.filled {
		return s.capacity
	}
	return s.next
}

// at returns the i-th record in insertion order (0 = oldest). Callers must
// hold the lock.
func (s *InMemoryStore) at(i int) models.ValidationRecord {
	if s.filled {
		return s.records[(s.next+i)%s.capacity]
	}
	return s.records[i]
}
