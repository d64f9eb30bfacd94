// Command ingestor validates a seed file, reports per-location sentiment and,
// when MYSQL_DSN is set, loads the rows into the MySQL reviews table.
package main

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/adapters/remote"
	"review_analyzer/internal/adapters/sentiment"
	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/shared"
	"review_analyzer/internal/storage/csvfile"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

type locationStats struct {
	count    int
	compound float64
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("seed", cfg.SeedFile).
		Int("workers", cfg.ScoreWorkers).
		Msg("ingestor starting")

	// 2) load and validate; a bad row aborts
	var src domain.SeedSource = csvfile.New(cfg.SeedFile)
	if strings.HasPrefix(cfg.SeedFile, "http://") || strings.HasPrefix(cfg.SeedFile, "https://") {
		cl, err := remote.New(cfg.SeedFile, cfg.SeedFetchRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("seed client")
		}
		src = cl
	}
	reviews, err := app.LoadSeed(ctx, src)
	if err != nil {
		log.Fatal().Err(err).Msg("seed invalid")
	}
	log.Info().Int("reviews", len(reviews)).Msg("seed ok")

	// 3) score with a bounded worker pool
	workers := cfg.ScoreWorkers
	if workers < 1 {
		workers = 1
	}
	scorer := sentiment.NewVader()
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		stats = map[string]*locationStats{}
	)
	for _, rv := range reviews {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(rv domain.Review) {
			defer wg.Done()
			defer sem.Release(1)

			c := scorer.PolarityScores(rv.Body).Compound
			mu.Lock()
			st, ok := stats[rv.Location]
			if !ok {
				st = &locationStats{}
				stats[rv.Location] = st
			}
			st.count++
			st.compound += c
			mu.Unlock()
		}(rv)
	}
	wg.Wait()

	locs := make([]string, 0, len(stats))
	for l := range stats {
		locs = append(locs, l)
	}
	sort.Strings(locs)
	for _, l := range locs {
		st := stats[l]
		log.Info().
			Str("location", l).
			Int("reviews", st.count).
			Float64("mean_compound", st.compound/float64(st.count)).
			Msg("location summary")
	}

	// 4) optional load into MySQL
	if cfg.MySQLDSN == "" {
		log.Info().Msg("MYSQL_DSN empty, skipping load")
		return
	}
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	if err := mysqlrepo.New(db).UpsertReviews(ctx, reviews); err != nil {
		log.Fatal().Err(err).Msg("upsert reviews failed")
	}
	log.Info().Int("reviews", len(reviews)).Msg("ingestion completed")
}
