package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/storage/memory"
)

// ---- fakes ----

// fakeScorer returns a fixed compound per body and counts calls.
type fakeScorer struct {
	scores map[string]float64
	calls  chan string
}

func (f *fakeScorer) PolarityScores(text string) domain.Sentiment {
	if f.calls != nil {
		f.calls <- text
	}
	return domain.Sentiment{Compound: f.scores[text], Neu: 1}
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*domain.Sentiment); ok {
		*d = v.(domain.Sentiment)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

// brokenCache fails every call, like a Redis that went away after startup.
type brokenCache struct {
	gets, sets int
}

func (c *brokenCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.gets++
	return false, errors.New("connection refused")
}
func (c *brokenCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.sets++
	return errors.New("connection refused")
}
func (c *brokenCache) Del(ctx context.Context, key string) error { return nil }

// ---- helpers ----

func rv(loc, body, ts string) domain.Review {
	t, err := domain.ParseTimestamp(ts)
	if err != nil {
		panic(err)
	}
	return domain.Review{Body: body, Location: loc, Timestamp: t}
}

func seeded(rs ...domain.Review) *memory.Store {
	s := memory.New()
	s.Seed(rs)
	return s
}

func bodies(rs []domain.ScoredReview) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Body
	}
	return out
}

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return &d
}

// ---- tests ----

func TestListReviews_SortsByCompoundDesc(t *testing.T) {
	st := seeded(
		rv("NYC", "meh", "2024-01-01 10:00:00"),
		rv("LA", "great", "2024-01-02 10:00:00"),
		rv("SF", "awful", "2024-01-03 10:00:00"),
	)
	sc := &fakeScorer{scores: map[string]float64{"meh": 0, "great": 0.8, "awful": -0.7}}
	q := app.NewQueryService(st, sc, nil, 0, 4)

	out, err := q.ListReviews(context.Background(), domain.ReviewFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"great", "meh", "awful"}, bodies(out))
	assert.Equal(t, 0.8, out[0].Sentiment.Compound)

	// store order untouched
	snap := st.Snapshot()
	assert.Equal(t, "meh", snap[0].Body)
	assert.Equal(t, "awful", snap[2].Body)
}

func TestListReviews_TiesKeepStoreOrder(t *testing.T) {
	st := seeded(
		rv("NYC", "a", "2024-01-01 10:00:00"),
		rv("NYC", "b", "2024-01-01 10:00:00"),
		rv("NYC", "top", "2024-01-01 10:00:00"),
		rv("NYC", "c", "2024-01-01 10:00:00"),
		rv("NYC", "d", "2024-01-01 10:00:00"),
	)
	sc := &fakeScorer{scores: map[string]float64{"a": 0.5, "b": 0.5, "top": 0.9, "c": 0.5, "d": 0.5}}
	for _, workers := range []int{1, 3} {
		q := app.NewQueryService(st, sc, nil, 0, workers)
		out, err := q.ListReviews(context.Background(), domain.ReviewFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"top", "a", "b", "c", "d"}, bodies(out), "workers=%d", workers)
	}
}

func TestListReviews_Filters(t *testing.T) {
	st := seeded(
		rv("NYC", "Great!", "2024-01-01 10:00:00"),
		rv("LA", "Terrible.", "2024-02-01 10:00:00"),
		rv("NYC", "Fine", "2024-03-01 00:00:00"),
	)
	q := app.NewQueryService(st, &fakeScorer{}, nil, 0, 1)
	ctx := context.Background()

	cases := []struct {
		name string
		f    domain.ReviewFilter
		want []string
	}{
		{"location", domain.ReviewFilter{Location: "NYC"}, []string{"Great!", "Fine"}},
		{"unknown location", domain.ReviewFilter{Location: "Paris"}, []string{}},
		{"start", domain.ReviewFilter{Start: date(t, "2024-01-15")}, []string{"Terrible.", "Fine"}},
		{"end", domain.ReviewFilter{End: date(t, "2024-02-01")}, []string{"Great!"}},
		{"end inclusive at midnight", domain.ReviewFilter{End: date(t, "2024-03-01")}, []string{"Great!", "Terrible.", "Fine"}},
		{"range", domain.ReviewFilter{Start: date(t, "2024-01-15"), End: date(t, "2024-02-15")}, []string{"Terrible."}},
		{"location and range", domain.ReviewFilter{Location: "NYC", Start: date(t, "2024-02-01")}, []string{"Fine"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := q.ListReviews(ctx, tc.f)
			require.NoError(t, err)
			assert.Equal(t, tc.want, bodies(out))
			for _, r := range out {
				if tc.f.Location != "" {
					assert.Equal(t, tc.f.Location, r.Location)
				}
			}
		})
	}
}

func TestListReviews_EmptyStoreReturnsEmptySlice(t *testing.T) {
	q := app.NewQueryService(memory.New(), &fakeScorer{}, nil, 0, 2)
	out, err := q.ListReviews(context.Background(), domain.ReviewFilter{})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestListReviews_CachedScores(t *testing.T) {
	st := seeded(rv("NYC", "good", "2024-01-01 10:00:00"))
	sc := &fakeScorer{scores: map[string]float64{"good": 0.4}, calls: make(chan string, 10)}
	cache := &fakeCache{}
	q := app.NewQueryService(st, sc, cache, 10*time.Minute, 1)

	for i := 0; i < 3; i++ {
		out, err := q.ListReviews(context.Background(), domain.ReviewFilter{})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, 0.4, out[0].Sentiment.Compound)
	}
	assert.Len(t, sc.calls, 1, "scorer should only run on the first miss")
}

func TestListReviews_CanceledContext(t *testing.T) {
	st := seeded(
		rv("NYC", "a", "2024-01-01 10:00:00"),
		rv("NYC", "b", "2024-01-01 10:00:00"),
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := app.NewQueryService(st, &fakeScorer{}, nil, 0, 2)
	_, err := q.ListReviews(ctx, domain.ReviewFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListReviews_CacheErrorsFallBackToScorer(t *testing.T) {
	st := seeded(rv("NYC", "good", "2024-01-01 10:00:00"))
	sc := &fakeScorer{scores: map[string]float64{"good": 0.4}, calls: make(chan string, 10)}
	cache := &brokenCache{}
	q := app.NewQueryService(st, sc, cache, 10*time.Minute, 1)

	for i := 0; i < 2; i++ {
		out, err := q.ListReviews(context.Background(), domain.ReviewFilter{})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, 0.4, out[0].Sentiment.Compound)
	}
	assert.Len(t, sc.calls, 2)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 2, cache.sets)
}
