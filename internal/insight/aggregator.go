package insight

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Alex-dot-c/crypto-track/pkg/apperr"
	"github.com/Alex-dot-c/crypto-track/pkg/market"
)

const (
	chartDays    = 30
	noAIResponse = "No AI response"
)

type MarketClient interface {
	FetchTopAssets(ctx context.Context, page, perPage int) (market.AssetList, error)
	FetchHistory(ctx context.Context, assetID string, days int, interval string) (market.ChartSeries, error)
}

type AIClient interface {
	Summarize(ctx context.Context, prompt string) string
}

// Result is the combined answer for one prompt. Coin is nil when the prompt
// matched no asset; Chart is nil when there is no coin or its history failed.
type Result struct {
	AI    string             `json:"ai"`
	Coin  *market.Asset      `json:"coin"`
	Chart market.ChartSeries `json:"chart"`
}

type Aggregator struct {
	market MarketClient
	ai     AIClient
}

func NewAggregator(market MarketClient, ai AIClient) *Aggregator {
	return &Aggregator{market: market, ai: ai}
}

// BuildAggregate runs the AI leg and the market leg side by side. Only an
// empty prompt is an error; upstream failures leave fields empty.
func (a *Aggregator) BuildAggregate(ctx context.Context, prompt string) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apperr.Validation("No prompt provided")
	}

	res := &Result{AI: noAIResponse}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer recoverLeg("ai")
		res.AI = a.ai.Summarize(ctx, prompt)
	}()

	go func() {
		defer wg.Done()
		defer recoverLeg("market")
		res.Coin, res.Chart = a.lookupCoin(ctx, prompt)
	}()

	wg.Wait()
	return res, nil
}

// recoverLeg keeps a panicking leg from taking the process down; the
// request-level recovery middleware never sees panics on these goroutines.
func recoverLeg(leg string) {
	if r := recover(); r != nil {
		slog.Error("insight leg panicked", "leg", leg, "panic", r)
	}
}

func (a *Aggregator) lookupCoin(ctx context.Context, prompt string) (*market.Asset, market.ChartSeries) {
	assets, err := a.market.FetchTopAssets(ctx, 1, market.ResolvePerPage)
	if err != nil {
		slog.Error("coingecko markets failed", "error", err)
		return nil, nil
	}

	coin, ok := Resolve(prompt, assets)
	if !ok {
		slog.Info("prompt matched no coin", "prompt", normalizePrompt(prompt))
		return nil, nil
	}

	chart, err := a.market.FetchHistory(ctx, coin.ID, chartDays, "")
	if err != nil {
		slog.Error("coingecko chart failed", "coin_id", coin.ID, "error", err)
		return &coin, nil
	}
	return &coin, chart
}
