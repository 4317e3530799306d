package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alex-dot-c/crypto-track/pkg/cache"
)

// CachedClient memoizes successful upstream results for a fixed TTL.
// Failures always reach the wrapped client again on the next call.
type CachedClient struct {
	next    Client
	store   cache.Store
	ttl     time.Duration
	metrics Recorder
}

func NewCachedClient(next Client, store cache.Store, ttl time.Duration, metrics Recorder) *CachedClient {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &CachedClient{next: next, store: store, ttl: ttl, metrics: metrics}
}

func MarketsKey(page, perPage int) string {
	return fmt.Sprintf("markets:%d:%d", page, perPage)
}

func ChartKey(assetID string, days int, interval string) string {
	if interval == "" {
		interval = "auto"
	}
	return fmt.Sprintf("chart:%s:%d:%s", assetID, days, interval)
}

func (c *CachedClient) FetchTopAssets(ctx context.Context, page, perPage int) (AssetList, error) {
	key := MarketsKey(page, perPage)

	if b, ok := c.lookup(ctx, "markets", key); ok {
		assets, err := ParseAssets(b)
		if err == nil {
			return assets, nil
		}
		slog.Warn("discarding unreadable cached markets entry", "key", key, "error", err)
	}

	assets, err := c.next.FetchTopAssets(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(assets)
	if err != nil {
		slog.Warn("error encoding markets for cache", "key", key, "error", err)
		return assets, nil
	}
	c.save(ctx, key, b)
	return assets, nil
}

func (c *CachedClient) FetchHistory(ctx context.Context, assetID string, days int, interval string) (ChartSeries, error) {
	key := ChartKey(assetID, days, interval)

	if b, ok := c.lookup(ctx, "market_chart", key); ok {
		return ChartSeries(b), nil
	}

	chart, err := c.next.FetchHistory(ctx, assetID, days, interval)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, chart)
	return chart, nil
}

func (c *CachedClient) lookup(ctx context.Context, op, key string) ([]byte, bool) {
	b, ok, err := c.store.Get(ctx, key)
	if err != nil {
		slog.Warn("cache lookup failed, going upstream", "key", key, "error", err)
		ok = false
	}
	c.metrics.RecordCache(op, ok)
	return b, ok
}

func (c *CachedClient) save(ctx context.Context, key string, b []byte) {
	if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}
