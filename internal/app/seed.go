package app

import (
	"context"
	"fmt"

	"review_analyzer/internal/domain"
)

// LoadSeed reads the startup table from src and maps it to reviews.
func LoadSeed(ctx context.Context, src domain.SeedSource) ([]domain.Review, error) {
	t, err := src.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSeed, err)
	}
	return mapTable(t)
}
