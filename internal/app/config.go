package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	AppAddr         string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`

	OpsAddr string `envconfig:"OPS_ADDR" default:":9090"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	AuthDomain     string        `envconfig:"AUTH_DOMAIN" required:"true"`
	AuthAudience   string        `envconfig:"AUTH_AUDIENCE" required:"true"`
	AuthIssuer     string        `envconfig:"AUTH_ISSUER"`
	AuthJWKSURL    string        `envconfig:"AUTH_JWKS_URL"`
	AuthAlgorithms []string      `envconfig:"AUTH_ALGORITHMS" default:"RS256"`
	AuthJWKSTTL    time.Duration `envconfig:"AUTH_JWKS_TTL" default:"15m"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	RateLimitPerMinute int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`

	SeedOnStart bool `envconfig:"SEED_ON_START" default:"false"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("database url must be provided")
	}
	if strings.TrimSpace(c.AuthAudience) == "" {
		return errors.New("auth audience must be provided")
	}
	c.AuthDomain = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(c.AuthDomain), "https://"), "/")
	if c.AuthDomain == "" {
		return errors.New("auth domain must be provided")
	}
	if c.AuthIssuer == "" {
		c.AuthIssuer = "https://" + c.AuthDomain + "/"
	}
	if c.AuthJWKSURL == "" {
		c.AuthJWKSURL = "https://" + c.AuthDomain + "/.well-known/jwks.json"
	}
	if _, err := url.ParseRequestURI(c.AuthJWKSURL); err != nil {
		return fmt.Errorf("invalid AUTH_JWKS_URL: %w", err)
	}
	for i, alg := range c.AuthAlgorithms {
		c.AuthAlgorithms[i] = strings.ToUpper(strings.TrimSpace(alg))
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("rate limit must be positive")
	}
	if c.SeedOnStart && c.IsProduction() {
		return errors.New("SEED_ON_START is refused in production")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
