// Package config reads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

const (
	LinkStoreSQLite = "sqlite"
	LinkStoreRedis  = "redis"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type Config struct {
	Port      string
	BaseURL   string
	RateLimit int

	DatabasePath     string
	RedisURL         string
	LinkStore        string
	ClickDatabaseURL string

	GeoIPDBPath    string
	AnalyticsToken string
	VisitorHashKey string

	QRCacheSize      int
	LogoMaxBytes     int
	LogoFetchTimeout time.Duration

	LogFormat string
}

// Load reads envFiles (".env" when none are given) without overriding
// variables already set, then parses the environment. A missing env file is
// not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	p := &parser{}
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		BaseURL:   strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		RateLimit: p.int("RATE_LIMIT", 100),

		DatabasePath:     getEnv("DATABASE_PATH", "data/shortener.db"),
		RedisURL:         getEnv("REDIS_URL", ""),
		LinkStore:        strings.ToLower(getEnv("LINK_STORE", LinkStoreSQLite)),
		ClickDatabaseURL: getEnv("CLICK_DATABASE_URL", ""),

		GeoIPDBPath:    getEnv("GEOIP_DB_PATH", ""),
		AnalyticsToken: getEnv("ANALYTICS_TOKEN", ""),
		VisitorHashKey: getEnv("VISITOR_HASH_KEY", ""),

		QRCacheSize:      p.int("QR_CACHE_SIZE", 512),
		LogoMaxBytes:     p.int("LOGO_MAX_BYTES", 1<<20),
		LogoFetchTimeout: p.duration("LOGO_FETCH_TIMEOUT", 5*time.Second),

		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", LogFormatJSON)),
	}
	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.RateLimit, validation.Required, validation.Min(1)),
		validation.Field(&c.DatabasePath, validation.Required),
		validation.Field(&c.LinkStore, validation.In(LinkStoreSQLite, LinkStoreRedis)),
		validation.Field(&c.RedisURL,
			validation.When(c.LinkStore == LinkStoreRedis, validation.Required.Error("is required when LINK_STORE=redis"))),
		validation.Field(&c.VisitorHashKey, validation.When(c.VisitorHashKey != "", validation.Length(16, 0))),
		validation.Field(&c.QRCacheSize, validation.Min(0)),
		validation.Field(&c.LogoMaxBytes, validation.Required, validation.Min(1)),
		validation.Field(&c.LogoFetchTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.LogFormat, validation.In(LogFormatJSON, LogFormatConsole)),
	)
}

// getEnv retrieves an environment variable or returns the default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser collects every malformed value instead of stopping at the first.
type parser struct {
	errs []error
}

func (p *parser) int(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s value %q: must be an integer", key, raw))
		return defaultValue
	}
	return v
}

func (p *parser) duration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s value %q: must be a duration like 5s", key, raw))
		return defaultValue
	}
	return v
}
