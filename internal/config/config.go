package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/listings-web/internal/env"
)

// Config holds everything the web process reads from the environment.
type Config struct {
	AppName string
	Port    int

	// Backend listing API
	APIBaseURL       string
	BackendTimeout   time.Duration // 0 leaves the transport default in place
	BackendRPS       float64       // 0 disables the outbound limiter
	BackendBurst     int
	TrustedImageHost string

	// Session token storage; empty RedisAddr keeps tokens in memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration
	CookieSecure  bool

	RateLimitPerMin int
	CORSOrigins     []string

	Log LogConfig
}

type LogConfig struct {
	Level  string
	Format string // "text" or "json"
	Color  bool

	FluentEnabled bool
	FluentHost    string
	FluentPort    int
}

const (
	DefaultAPIBaseURL       = "http://localhost:4000"
	DefaultTrustedImageHost = "photos.zillowstatic.com"
)

// Load reads an optional .env file (envPath or ./.env) and then the process
// environment.
func Load(envPath ...string) (*Config, error) {
	var err error
	if len(envPath) > 0 && envPath[0] != "" {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		AppName: env.Get("APP_NAME", "listings-web"),
		Port:    env.GetInt("PORT", 3000),

		APIBaseURL:       env.Get("API_BASE_URL", DefaultAPIBaseURL),
		BackendTimeout:   env.GetDuration("BACKEND_TIMEOUT", 0),
		BackendRPS:       env.GetFloat("BACKEND_RPS", 0),
		BackendBurst:     env.GetInt("BACKEND_BURST", 1),
		TrustedImageHost: env.Get("TRUSTED_IMAGE_HOST", DefaultTrustedImageHost),

		RedisAddr:     env.Get("REDIS_ADDR", ""),
		RedisPassword: env.Get("REDIS_PASSWORD", ""),
		RedisDB:       env.GetInt("REDIS_DB", 0),
		SessionTTL:    env.GetDuration("SESSION_TTL", 24*time.Hour),
		CookieSecure:  env.GetBool("COOKIE_SECURE", false),

		RateLimitPerMin: env.GetInt("RATE_LIMIT_PER_MIN", 100),
		CORSOrigins:     env.GetList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		Log: LogConfig{
			Level:         env.Get("LOG_LEVEL", "info"),
			Format:        env.Get("LOG_FORMAT", "text"),
			Color:         env.GetBool("LOG_COLOR", true),
			FluentEnabled: env.GetBool("FLUENT_ENABLED", false),
			FluentHost:    env.Get("FLUENT_HOST", ""),
			FluentPort:    env.GetInt("FLUENT_PORT", 24224),
		},
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API_BASE_URL %q is not an absolute URL", cfg.APIBaseURL)
	}
	if cfg.Log.FluentEnabled && cfg.Log.FluentHost == "" {
		slog.Warn("FLUENT_ENABLED is set but FLUENT_HOST is empty; disabling fluent forwarding")
		cfg.Log.FluentEnabled = false
	}
	if cfg.BackendBurst < 1 {
		cfg.BackendBurst = 1
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return cfg, nil
}

func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
