package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Alex-dot-c/crypto-track/internal/app"
	"github.com/Alex-dot-c/crypto-track/internal/config"
	"github.com/Alex-dot-c/crypto-track/pkg/market"
)

// warmer pre-fills the shared market cache so the first API requests after a
// deploy do not all hit CoinGecko at once.
func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	if !cfg.Cache.Enabled {
		slog.Error("cache is disabled, nothing to warm", "hint", "set CACHE_ENABLED=true")
		return
	}
	if cfg.Cache.Backend != config.BackendRedis {
		slog.Warn("warming an in-process cache only lasts as long as this command", "backend", cfg.Cache.Backend)
	}

	client, closeClient, err := app.NewMarketClient(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("error creating market client: %v", err)
	}
	defer closeClient()

	var warmed, errors int

	for _, perPage := range []int{market.TopListPerPage, market.ResolvePerPage} {
		assets, err := client.FetchTopAssets(ctx, 1, perPage)
		if err != nil {
			slog.Error("error fetching markets", "per_page", perPage, "error", err)
			errors++
			continue
		}
		slog.Info("markets cached", "per_page", perPage, "count", len(assets))
		warmed++

		if perPage != market.TopListPerPage {
			continue
		}

		for _, a := range assets {
			if a.ID == "" {
				continue
			}
			// The history route asks for daily points, the aggregate chart
			// leaves granularity to CoinGecko.
			for _, interval := range []string{market.IntervalDaily, ""} {
				_, err := client.FetchHistory(ctx, a.ID, market.DefaultDays, interval)
				if err != nil {
					slog.Error("error fetching chart", "coin_id", a.ID, "interval", interval, "error", err)
					errors++
					continue
				}
				warmed++
			}
		}
	}

	slog.Info("warm complete", "warmed", warmed, "errors", errors)
}
