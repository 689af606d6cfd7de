package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		RetryAttempts  int    `yaml:"retry_attempts"`
		RateLimit      struct {
			MaxTokens    int `yaml:"max_tokens"`
			RefillMillis int `yaml:"refill_millis"`
		} `yaml:"rate_limit"`
	} `yaml:"backend"`

	Rates struct {
		LiveURL        string `yaml:"live_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"rates"`

	Enrich struct {
		Workers int     `yaml:"workers"`
		IBShare float64 `yaml:"ib_share"`
	} `yaml:"enrich"`

	Payout struct {
		MinimumUSD float64 `yaml:"minimum_usd"`
	} `yaml:"payout"`

	Server struct {
		Address        string   `yaml:"address"`
		JWTSecretEnv   string   `yaml:"jwt_secret_env"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url cannot be empty")
	}
	if c.Enrich.Workers <= 0 {
		return fmt.Errorf("enrich.workers must be positive, got %d", c.Enrich.Workers)
	}
	if c.Enrich.IBShare <= 0 || c.Enrich.IBShare > 1 {
		return fmt.Errorf("enrich.ib_share must be in (0, 1], got %.2f", c.Enrich.IBShare)
	}
	if c.Payout.MinimumUSD < 0 {
		return fmt.Errorf("payout.minimum_usd cannot be negative, got %.2f", c.Payout.MinimumUSD)
	}
	return nil
}

// BackendTimeout returns the per-call backend timeout.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// RateTimeout returns the live-rate fetch timeout.
func (c *Config) RateTimeout() time.Duration {
	return time.Duration(c.Rates.TimeoutSeconds) * time.Second
}

// JWTSecret resolves the signing secret from the configured env var.
func (c *Config) JWTSecret() string {
	return os.Getenv(c.Server.JWTSecretEnv)
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = 15
	}
	if c.Backend.RetryAttempts == 0 {
		c.Backend.RetryAttempts = 2
	}
	if c.Backend.RateLimit.MaxTokens == 0 {
		c.Backend.RateLimit.MaxTokens = 20
	}
	if c.Backend.RateLimit.RefillMillis == 0 {
		c.Backend.RateLimit.RefillMillis = 100
	}
	if c.Rates.TimeoutSeconds == 0 {
		c.Rates.TimeoutSeconds = 10
	}
	if c.Enrich.Workers == 0 {
		c.Enrich.Workers = 8
	}
	if c.Enrich.IBShare == 0 {
		c.Enrich.IBShare = 0.33
	}
	if c.Payout.MinimumUSD == 0 {
		c.Payout.MinimumUSD = 75
	}
	if c.Server.Address == "" {
		c.Server.Address = "0.0.0.0:8090"
	}
	if c.Server.JWTSecretEnv == "" {
		c.Server.JWTSecretEnv = "PARTNER_JWT_SECRET"
	}
}
