package feedkit

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries environment-driven construction parameters. Variables are
// prefixed FEEDKIT_, e.g. FEEDKIT_BASE_URL.
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	StatePath   string        `envconfig:"STATE_PATH"`
	Debug       bool          `envconfig:"DEBUG"`
}

// NewFromEnv constructs a Client from FEEDKIT_* environment variables.
// Explicit options are applied after the environment-derived ones and win
// on conflict.
func NewFromEnv(opts ...Option) (*Client, error) {
	var cfg Config
	if err := envconfig.Process("feedkit", &cfg); err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("FEEDKIT_BASE_URL is required")
	}
	all := []Option{
		WithHTTPTimeout(cfg.HTTPTimeout),
		WithStatePath(cfg.StatePath),
		WithDebugLogging(cfg.Debug),
	}
	all = append(all, opts...)
	return New(cfg.BaseURL, all...)
}
