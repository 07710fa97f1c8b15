package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "dummygen/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	LogLevel        slog.Level
	CORSOrigins     []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	// MetricsToken protects /metrics when non-empty.
	MetricsToken    string

	Generation GenerationConfig
	RateLimit  RateLimitConfig
	Redis      RedisConfig
}

// GenerationConfig tunes the generation endpoint.
type GenerationConfig struct {
	// MaxRecords is the upper bound on count enforced by the HTTP layer.
	MaxRecords int
	// StrictConstraints makes invalid constraints fail the batch instead of
	// silently falling back to unconstrained generation.
	StrictConstraints bool
	// FieldsFile is an optional YAML file of extra field definitions.
	FieldsFile string
}

// RateLimitConfig holds per-IP limits for each endpoint class.
type RateLimitConfig struct {
	Disabled          bool
	GeneratePerWindow int
	ReadPerWindow     int
	Window            time.Duration
	CleanupInterval   time.Duration
	Allowlist         []string
}

// RedisConfig configures the optional Redis-backed rate limit store.
// An empty URL keeps rate limiting in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Defaults mirror the public API contract.
const (
	DefaultAddr              = ":8080"
	DefaultMaxRecords        = 1000
	DefaultGeneratePerWindow = 10
	DefaultReadPerWindow     = 100
	DefaultCORSOrigin        = "http://localhost:3000"
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	env := envReader{lookup: lookup}

	cfg := Server{
		Addr:            env.str("DUMMYGEN_ADDR", DefaultAddr),
		LogLevel:        env.level("LOG_LEVEL", slog.LevelInfo),
		CORSOrigins:     platformstrings.DedupeAndTrimLower(env.list("CORS_ORIGINS", []string{DefaultCORSOrigin})),
		RequestTimeout:  env.duration("DUMMYGEN_REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: env.duration("DUMMYGEN_SHUTDOWN_TIMEOUT", 10*time.Second),
		MetricsToken:    env.str("METRICS_TOKEN", ""),
		Generation: GenerationConfig{
			MaxRecords:        env.integer("DUMMYGEN_MAX_RECORDS", DefaultMaxRecords),
			StrictConstraints: env.boolean("DUMMYGEN_STRICT_CONSTRAINTS", false),
			FieldsFile:        env.str("DUMMYGEN_FIELDS_FILE", ""),
		},
		RateLimit: RateLimitConfig{
			Disabled:          env.boolean("RATE_LIMIT_DISABLED", false),
			GeneratePerWindow: env.integer("RATE_LIMIT_GENERATE_PER_WINDOW", DefaultGeneratePerWindow),
			ReadPerWindow:     env.integer("RATE_LIMIT_READ_PER_WINDOW", DefaultReadPerWindow),
			Window:            env.duration("RATE_LIMIT_WINDOW", time.Minute),
			CleanupInterval:   env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
			Allowlist:         env.list("RATE_LIMIT_ALLOWLIST", nil),
		},
		Redis: RedisConfig{
			URL:          env.str("REDIS_URL", ""),
			PoolSize:     env.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: env.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  env.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  env.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: env.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}

	if env.err != nil {
		return Server{}, env.err
	}
	if cfg.Generation.MaxRecords < 1 {
		return Server{}, fmt.Errorf("DUMMYGEN_MAX_RECORDS must be positive, got %d", cfg.Generation.MaxRecords)
	}
	if cfg.RateLimit.Window <= 0 {
		return Server{}, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimit.Window)
	}
	if cfg.RateLimit.CleanupInterval <= 0 {
		return Server{}, fmt.Errorf("RATE_LIMIT_CLEANUP_INTERVAL must be positive, got %s", cfg.RateLimit.CleanupInterval)
	}
	return cfg, nil
}

// envReader records the first parse error so FromEnv can report it once.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (e *envReader) fail(key, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
}

func (e *envReader) str(key, def string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return def
}

func (e *envReader) integer(key string, def int) int {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envReader) boolean(key string, def bool) bool {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return b
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}

func (e *envReader) list(key string, def []string) []string {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	return platformstrings.DedupeAndTrim(platformstrings.SplitTrim(v, ","))
}

func (e *envReader) level(key string, def slog.Level) slog.Level {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		e.fail(key, v, err)
		return def
	}
	return lvl
}
