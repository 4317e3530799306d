package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	ProviderGrok      = "grok"
	ProviderAnthropic = "anthropic"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Port        int    `env:"PORT, default=5001"`
	FrontendURL string `env:"FRONTEND_URL"`

	Market MarketConfig `env:", prefix=COINGECKO_"`
	AI     AIConfig
	Cache  CacheConfig `env:", prefix=CACHE_"`

	RedisURL string `env:"REDIS_URL"`
}

type MarketConfig struct {
	BaseURL      string        `env:"BASE_URL, default=https://api.coingecko.com/api/v3"`
	APIKey       string        `env:"API_KEY"`
	Timeout      time.Duration `env:"TIMEOUT, default=10s"`
	RetryBackoff time.Duration `env:"RETRY_BACKOFF, default=60s"`
}

type AIConfig struct {
	Provider     string        `env:"AI_PROVIDER, default=grok"`
	GrokURL      string        `env:"GROK_API_URL, default=https://api.x.ai/v1/chat/completions"`
	GrokAPIKey   string        `env:"GROK_API_KEY"`
	GrokModel    string        `env:"GROK_MODEL, default=grok-beta"`
	AnthropicKey string        `env:"ANTHROPIC_API_KEY"`
	Timeout      time.Duration `env:"AI_TIMEOUT, default=15s"`
}

type CacheConfig struct {
	Enabled         bool          `env:"ENABLED, default=false"`
	TTL             time.Duration `env:"TTL, default=5m"`
	Backend         string        `env:"BACKEND, default=memory"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL, default=1m"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.Market.Timeout <= 0 {
		return fmt.Errorf("COINGECKO_TIMEOUT must be positive")
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	switch c.AI.Provider {
	case ProviderGrok, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.AI.Provider)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("CACHE_TTL must be positive when caching is enabled")
		}
		switch c.Cache.Backend {
		case BackendMemory:
			if c.Cache.CleanupInterval <= 0 {
				return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive for the memory cache backend")
			}
		case BackendRedis:
			if c.RedisURL == "" {
				return fmt.Errorf("REDIS_URL is required for the redis cache backend")
			}
		default:
			return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
		}
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
