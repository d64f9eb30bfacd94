package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	server "review_analyzer/internal/adapters/http_server"
	"review_analyzer/internal/adapters/observability"
	redisad "review_analyzer/internal/adapters/redis"
	"review_analyzer/internal/adapters/remote"
	"review_analyzer/internal/adapters/sentiment"
	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/shared"
	"review_analyzer/internal/storage/csvfile"
	"review_analyzer/internal/storage/memory"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// seed: any failure here is fatal
	src, closeSrc := seedSource(cfg)
	reviews, err := app.LoadSeed(ctx, src)
	closeSrc()
	if err != nil {
		log.Fatal().Err(err).Msg("load seed failed")
	}
	store := memory.New()
	store.Seed(reviews)
	log.Info().Int("reviews", store.Len()).Int("locations", len(store.Locations())).Msg("store seeded")

	// optional score cache
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, scoring uncached")
			_ = rc.Close()
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	// deps
	q := app.NewQueryService(store, sentiment.NewVader(), cache, cfg.CacheTTL, cfg.ScoreWorkers)
	s := app.NewSubmissionService(store, clockwork.NewRealClock())

	var writeLimit *rate.Limiter
	if cfg.WriteRPS > 0 {
		writeLimit = rate.NewLimiter(rate.Limit(cfg.WriteRPS), cfg.WriteBurst)
	}

	// http
	srv := server.New()
	srv.MountHandlers(&server.Handlers{Q: q, S: s}, server.RateLimit(writeLimit))

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// seedSource picks MySQL when MYSQL_DSN is set, else SEED_FILE as URL or path.
// The returned func releases the source.
func seedSource(cfg shared.Config) (domain.SeedSource, func()) {
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("seeding from mysql")
		return mysqlrepo.New(db), func() { _ = db.Close() }
	}
	return fileSource(cfg), func() {}
}

func fileSource(cfg shared.Config) domain.SeedSource {
	if strings.HasPrefix(cfg.SeedFile, "http://") || strings.HasPrefix(cfg.SeedFile, "https://") {
		cl, err := remote.New(cfg.SeedFile, cfg.SeedFetchRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("seed client")
		}
		log.Info().Str("url", cfg.SeedFile).Msg("seeding from url")
		return cl
	}
	log.Info().Str("path", cfg.SeedFile).Msg("seeding from file")
	return csvfile.New(cfg.SeedFile)
}
