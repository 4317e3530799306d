package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Alex-dot-c/crypto-track/db"
	"github.com/Alex-dot-c/crypto-track/internal/config"
	"github.com/Alex-dot-c/crypto-track/internal/metrics"
	"github.com/Alex-dot-c/crypto-track/pkg/cache"
	"github.com/Alex-dot-c/crypto-track/pkg/llm"
	"github.com/Alex-dot-c/crypto-track/pkg/market"
)

// NewMarketClient builds the CoinGecko client, wrapped in the response cache
// when caching is enabled. The returned func releases cache connections.
func NewMarketClient(ctx context.Context, cfg *config.Config, rec *metrics.Recorder) (market.Client, func(), error) {
	client := market.NewCoinGeckoClient(market.Options{
		BaseURL:      cfg.Market.BaseURL,
		APIKey:       cfg.Market.APIKey,
		Timeout:      cfg.Market.Timeout,
		RetryBackoff: cfg.Market.RetryBackoff,
		Metrics:      rec,
	})

	if !cfg.Cache.Enabled {
		return client, func() {}, nil
	}

	store, closeStore, err := NewCacheStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("market cache enabled", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
	return market.NewCachedClient(client, store, cfg.Cache.TTL, rec), closeStore, nil
}

func NewCacheStore(ctx context.Context, cfg *config.Config) (cache.Store, func(), error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		client, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("error connecting to Redis: %w", err)
		}
		return cache.NewRedisStore(client), func() { db.CloseRedis(client) }, nil
	default:
		store := cache.NewMemoryStore()
		stop := store.StartCleanup(cfg.Cache.CleanupInterval)
		return store, stop, nil
	}
}

func NewSummarizer(cfg *config.Config, rec *metrics.Recorder) llm.Summarizer {
	if cfg.AI.Provider == config.ProviderAnthropic {
		return llm.NewAnthropicClient(llm.AnthropicOptions{
			APIKey:  cfg.AI.AnthropicKey,
			Timeout: cfg.AI.Timeout,
			Metrics: rec,
		})
	}
	return llm.NewGrokClient(llm.GrokOptions{
		URL:     cfg.AI.GrokURL,
		APIKey:  cfg.AI.GrokAPIKey,
		Model:   cfg.AI.GrokModel,
		Timeout: cfg.AI.Timeout,
		Metrics: rec,
	})
}
