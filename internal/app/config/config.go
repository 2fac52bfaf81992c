package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel     LogLeveler   `mapstructure:"LOG_LEVEL"`
	HTTP         HTTP         `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	GDS          GDS          `mapstructure:",squash"`
	Mongo        Mongo        `mapstructure:",squash"`
	Markup       Markup       `mapstructure:",squash"`
	FareCalendar FareCalendar `mapstructure:",squash"`
}

type HTTP struct {
	Port           int           `mapstructure:"HTTP_PORT"`
	Timeout        time.Duration `mapstructure:"HTTP_TIMEOUT"`
	AllowedOrigins []string      `mapstructure:"HTTP_ALLOWED_ORIGINS"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// GDS holds the fare search API configuration. RateLimit is in requests per
// second, 0 disables throttling.
type GDS struct {
	BaseURL          string        `mapstructure:"GDS_BASE_URL"`
	Token            string        `mapstructure:"GDS_TOKEN"`
	Timeout          time.Duration `mapstructure:"GDS_TIMEOUT"`
	RateLimit        int           `mapstructure:"GDS_RATE_LIMIT"`
	RateLimitBackend string        `mapstructure:"GDS_RATE_LIMIT_BACKEND"`
	DefaultCurrency  string        `mapstructure:"GDS_DEFAULT_CURRENCY"`
}

// Mongo holds the markup rule store. An empty URI selects the static rules.
type Mongo struct {
	URI              string        `mapstructure:"MONGO_URI"`
	Database         string        `mapstructure:"MONGO_DATABASE"`
	MarkupCollection string        `mapstructure:"MONGO_MARKUP_COLLECTION"`
	Timeout          time.Duration `mapstructure:"MONGO_TIMEOUT"`
}

type MarkupRule struct {
	ID          string   `mapstructure:"id"`
	Airlines    []string `mapstructure:"airlines"`
	Origin      string   `mapstructure:"origin"`
	MarkupType  string   `mapstructure:"markup_type"`
	MarkupValue float64  `mapstructure:"markup_value"`
	Priority    int      `mapstructure:"priority"`
	Status      string   `mapstructure:"status"`
}

// Markup holds the static rules, given as a JSON array in MARKUP_RULES.
type Markup struct {
	Rules []MarkupRule `mapstructure:"MARKUP_RULES"`
}

type FareCalendar struct {
	CacheTTL     time.Duration `mapstructure:"FARE_CALENDAR_CACHE_TTL"`
	CacheBackend string        `mapstructure:"FARE_CALENDAR_CACHE_BACKEND"`
	Concurrency  int           `mapstructure:"FARE_CALENDAR_CONCURRENCY"`
}
