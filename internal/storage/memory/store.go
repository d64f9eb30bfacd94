// Package memory holds the process-lifetime review store.
package memory

import (
	"sync"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

// Store is an append-only, insertion-ordered review collection.
// All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

func New() *Store { return &Store{} }

// Seed replaces the contents with a copy of records, keeping their order.
func (s *Store) Seed(records []domain.Review) {
	cp := make([]domain.Review, len(records))
	copy(cp, records)

	s.mu.Lock()
	s.reviews = cp
	s.mu.Unlock()
	observability.SetReviewsStored(len(cp))
}

func (s *Store) Append(r domain.Review) {
	s.mu.Lock()
	s.reviews = append(s.reviews, r)
	n := len(s.reviews)
	s.mu.Unlock()
	observability.SetReviewsStored(n)
}

// Snapshot returns a copy; reordering it does not affect the store.
func (s *Store) Snapshot() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

func (s *Store) Locations() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(map[string]struct{}, 16)
	for _, r := range s.reviews {
		set[r.Location] = struct{}{}
	}
	return set
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}
