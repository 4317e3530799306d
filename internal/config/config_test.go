package config

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadWith(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{})

	assert.Equal(t, nil, err)
	assert.Equal(t, 5001, cfg.Port)
	assert.Equal(t, ":5001", cfg.Addr())
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.Market.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Market.Timeout)
	assert.Equal(t, 60*time.Second, cfg.Market.RetryBackoff)
	assert.Equal(t, ProviderGrok, cfg.AI.Provider)
	assert.Equal(t, "https://api.x.ai/v1/chat/completions", cfg.AI.GrokURL)
	assert.Equal(t, "", cfg.AI.GrokAPIKey)
	assert.Equal(t, "grok-beta", cfg.AI.GrokModel)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
	assert.Equal(t, false, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.Cache.CleanupInterval)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"PORT":                    "8080",
		"GROK_API_URL":            "https://proxy.local/v1/chat/completions",
		"GROK_API_KEY":            "secret",
		"COINGECKO_BASE_URL":      "http://localhost:9000",
		"COINGECKO_RETRY_BACKOFF": "5s",
		"CACHE_ENABLED":           "true",
		"CACHE_TTL":               "30s",
		"CACHE_BACKEND":           "redis",
		"REDIS_URL":               "redis://localhost:6379/0",
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://proxy.local/v1/chat/completions", cfg.AI.GrokURL)
	assert.Equal(t, "secret", cfg.AI.GrokAPIKey)
	assert.Equal(t, "http://localhost:9000", cfg.Market.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Market.RetryBackoff)
	assert.Equal(t, true, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port not a number", map[string]string{"PORT": "abc"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"unknown provider", map[string]string{"AI_PROVIDER": "gpt"}},
		{"redis without url", map[string]string{"CACHE_ENABLED": "true", "CACHE_BACKEND": "redis"}},
		{"unknown backend", map[string]string{"CACHE_ENABLED": "true", "CACHE_BACKEND": "memcached"}},
		{"zero ttl", map[string]string{"CACHE_ENABLED": "true", "CACHE_TTL": "0s"}},
		{"zero cleanup interval", map[string]string{"CACHE_ENABLED": "true", "CACHE_CLEANUP_INTERVAL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.env)
			assert.NotEqual(t, nil, err)
		})
	}
}
