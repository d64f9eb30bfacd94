package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	LogLevel     string
	HTTPAddr     string
	MetricsAddr  string
	SeedFile     string // local path or http(s) URL
	SeedFetchRPS int
	MySQLDSN     string // when set, seed from MySQL instead of SeedFile
	RedisAddr    string // when set, cache sentiment scores
	RedisDB      int
	RedisPass    string
	CacheTTL     time.Duration
	ScoreWorkers int
	WriteRPS     int // 0 disables the POST rate limit
	WriteBurst   int
}

func Load() Config {
	// .env is optional; real env vars win.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		LogLevel:     env("LOG_LEVEL", "info"),
		HTTPAddr:     ":" + env("PORT", "8000"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		SeedFile:     env("SEED_FILE", "data/reviews.csv"),
		SeedFetchRPS: atoi("SEED_FETCH_RPS", 5),
		MySQLDSN:     env("MYSQL_DSN", ""),
		RedisAddr:    env("REDIS_ADDR", ""),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		ScoreWorkers: atoi("SCORE_WORKERS", 8),
		WriteRPS:     atoi("WRITE_RPS", 0),
		WriteBurst:   atoi("WRITE_BURST", 5),
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
