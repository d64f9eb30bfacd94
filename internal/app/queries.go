package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

type QueryService struct {
	store    domain.ReviewStore
	scorer   domain.SentimentScorer
	cache    domain.Cache // optional
	cacheTTL time.Duration
	workers  int64
}

// NewQueryService wires the read path. cache may be nil; workers < 1 scores serially.
func NewQueryService(st domain.ReviewStore, sc domain.SentimentScorer, c domain.Cache, ttl time.Duration, workers int) *QueryService {
	if workers < 1 {
		workers = 1
	}
	return &QueryService{store: st, scorer: sc, cache: c, cacheTTL: ttl, workers: int64(workers)}
}

// ListReviews filters the store, scores each match and returns them ordered by
// compound score, highest first. Equal scores keep store order.
func (s *QueryService) ListReviews(ctx context.Context, f domain.ReviewFilter) ([]domain.ScoredReview, error) {
	out := make([]domain.ScoredReview, 0, 16)
	for _, r := range s.store.Snapshot() {
		if f.Match(r) {
			out = append(out, domain.ScoredReview{Review: r})
		}
	}

	start := time.Now()
	if err := s.scoreAll(ctx, out); err != nil {
		return nil, err
	}
	observability.ObserveScoring(time.Since(start))

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sentiment.Compound > out[j].Sentiment.Compound
	})
	return out, nil
}

// scoreAll fills in Sentiment for every element, at most s.workers at a time.
func (s *QueryService) scoreAll(ctx context.Context, rs []domain.ScoredReview) error {
	if s.workers == 1 || len(rs) < 2 {
		for i := range rs {
			rs[i].Sentiment = s.score(ctx, rs[i].Body)
		}
		return nil
	}

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	for i := range rs {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			rs[i].Sentiment = s.score(ctx, rs[i].Body)
		}(i)
	}
	wg.Wait()
	return nil
}

func (s *QueryService) score(ctx context.Context, body string) domain.Sentiment {
	if s.cache == nil {
		return s.scorer.PolarityScores(body)
	}
	key := sentimentKey(body)
	var sc domain.Sentiment
	ok, err := s.cache.Get(ctx, key, &sc)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("sentiment cache get failed")
	}
	if ok {
		return sc
	}
	sc = s.scorer.PolarityScores(body)
	if err := s.cache.Set(ctx, key, sc, int(s.cacheTTL.Seconds())); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("sentiment cache set failed")
	}
	return sc
}

func sentimentKey(body string) string {
	sum := sha1.Sum([]byte(body))
	return "sentiment:" + hex.EncodeToString(sum[:])
}
