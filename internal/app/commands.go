package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

type SubmissionService struct {
	store domain.ReviewStore
	clock clockwork.Clock
}

func NewSubmissionService(st domain.ReviewStore, clock clockwork.Clock) *SubmissionService {
	return &SubmissionService{store: st, clock: clock}
}

// Submit validates a new review and appends it. Validation order: required
// fields first, then location membership. Nothing is stored on error.
func (s *SubmissionService) Submit(body, location string) (domain.Review, error) {
	if body == "" || location == "" {
		observability.ObserveSubmission("missing_fields")
		return domain.Review{}, domain.ErrMissingFields
	}
	if _, ok := s.store.Locations()[location]; !ok {
		observability.ObserveSubmission("invalid_location")
		return domain.Review{}, fmt.Errorf("%w: %s", domain.ErrInvalidLocation, location)
	}

	id := uuid.NewString()
	// Truncated so the stored value matches what clients see.
	now := s.clock.Now().Local().Truncate(time.Second)
	rv := domain.Review{
		ID:        &id,
		Body:      body,
		Location:  location,
		Timestamp: domain.Timestamp{Time: now},
	}
	s.store.Append(rv)
	observability.ObserveSubmission("created")
	return rv, nil
}
