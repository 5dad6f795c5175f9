// Package config collects the runtime settings of the service from flags,
// with environment fallbacks for the values usually injected by deployment.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Backend names accepted by the -backend flag.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendBolt     = "bolt"
)

// Settings holds everything main needs to assemble the service.
type Settings struct {
	Addr    string
	Backend string

	PostgresURL string
	BoltPath    string

	MaxTTLSeconds  int64
	MaxViewsCap    int64
	MaxContentSize int64
	MaxListLimit   int

	JanitorInterval time.Duration

	RateLimit      float64
	RateLimitBurst int
	TrustProxy     bool

	IDFormat     string
	NanoIDLength int

	LogFormat string
	LogLevel  string
}

func getFromEnvOrDefault(envName string, defaultValue string) string {
	envValue := os.Getenv(envName)
	if envValue != "" {
		return envValue
	}

	return defaultValue
}

// GetConnectionString returns the postgres connection string from the
// POSTGRES_URL environment variable or the given default.
func GetConnectionString(defaultValue string) string {
	return getFromEnvOrDefault("POSTGRES_URL", defaultValue)
}

// Load parses settings from the given argument list.
func Load(args []string) (*Settings, error) {
	var s Settings

	fs := flag.NewFlagSet("vanishbin", flag.ContinueOnError)
	fs.StringVar(&s.Addr, "addr", ":8080", "Address to listen on")
	fs.StringVar(&s.Backend, "backend", BackendPostgres, "Storage backend: postgres, memory or bolt")
	fs.StringVar(&s.PostgresURL, "postgresDB", "", "Connection string for the postgresql backend")
	fs.StringVar(&s.BoltPath, "boltPath", "vanishbin.db", "Database file for the bolt backend")
	fs.Int64Var(&s.MaxTTLSeconds, "maxExpireSeconds", 60*60*24*30, "Max paste lifetime in seconds, 0 for unbounded")
	fs.Int64Var(&s.MaxViewsCap, "maxViews", 10000, "Max view limit a paste may be created with, 0 for unbounded")
	fs.Int64Var(&s.MaxContentSize, "maxDataSize", 1024*1024, "Max request body size in bytes")
	fs.IntVar(&s.MaxListLimit, "maxListLimit", 500, "Max number of pastes a single list request returns")
	fs.DurationVar(&s.JanitorInterval, "janitorInterval", time.Minute, "How often expired pastes are swept, 0 disables the janitor")
	fs.Float64Var(&s.RateLimit, "rateLimit", 0, "Requests per second allowed per client, 0 disables limiting")
	fs.IntVar(&s.RateLimitBurst, "rateLimitBurst", 10, "Burst size of the per client rate limiter")
	fs.BoolVar(&s.TrustProxy, "trustProxy", false, "Trust X-Forwarded-For and X-Real-IP headers")
	fs.StringVar(&s.IDFormat, "idFormat", "nanoid", "Paste id format: nanoid or uuid")
	fs.IntVar(&s.NanoIDLength, "nanoidLength", 12, "Length of generated nanoid paste ids")
	fs.StringVar(&s.LogFormat, "logFormat", getFromEnvOrDefault("LOG_FORMAT", "text"), "Log format: text or json")
	fs.StringVar(&s.LogLevel, "logLevel", getFromEnvOrDefault("LOG_LEVEL", "info"), "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	s.PostgresURL = GetConnectionString(s.PostgresURL)

	if err := s.validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Settings) validate() error {
	switch s.Backend {
	case BackendPostgres, BackendMemory, BackendBolt:
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}

	if s.Backend == BackendBolt && s.BoltPath == "" {
		return fmt.Errorf("boltPath is required for the bolt backend")
	}

	if s.MaxTTLSeconds < 0 {
		return fmt.Errorf("maxExpireSeconds must not be negative")
	}
	if s.MaxViewsCap < 0 {
		return fmt.Errorf("maxViews must not be negative")
	}
	if s.MaxContentSize <= 0 {
		return fmt.Errorf("maxDataSize must be positive")
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("rateLimit must not be negative")
	}

	return nil
}
