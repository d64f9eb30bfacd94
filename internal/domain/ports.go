package domain

import "context"

// ReviewStore is the in-memory ordered review collection.
type ReviewStore interface {
	Append(r Review)
	Snapshot() []Review
	Locations() map[string]struct{}
	Len() int
}

// SentimentScorer maps review text to polarity scores. Implementations must be
// safe for concurrent use.
type SentimentScorer interface {
	PolarityScores(text string) Sentiment
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// SeedSource supplies the raw startup table; app maps it to reviews.
type SeedSource interface {
	ReadTable(ctx context.Context) (Table, error)
}

// Table is tabular seed data: a header row plus data rows of equal width.
type Table struct {
	Header []string
	Rows   [][]string
}
