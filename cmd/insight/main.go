package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/Alex-dot-c/crypto-track/internal/app"
	"github.com/Alex-dot-c/crypto-track/internal/config"
	"github.com/Alex-dot-c/crypto-track/internal/insight"
)

func main() {
	prompt := flag.String("prompt", "", "coin name or symbol to look up, e.g. bitcoin")
	flag.Parse()

	if *prompt == "" && flag.NArg() > 0 {
		*prompt = strings.Join(flag.Args(), " ")
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	marketClient, closeMarket, err := app.NewMarketClient(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("error creating market client: %v", err)
	}
	defer closeMarket()

	aggregator := insight.NewAggregator(marketClient, app.NewSummarizer(cfg, nil))

	result, err := aggregator.BuildAggregate(ctx, *prompt)
	if err != nil {
		log.Fatalf("error building insight: %v", err)
	}

	slog.Info("insight built", "prompt", *prompt, "coin_found", result.Coin != nil, "chart_found", result.Chart != nil)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("error encoding result: %v", err)
	}
}
