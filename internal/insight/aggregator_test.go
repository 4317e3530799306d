package insight

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/Alex-dot-c/crypto-track/pkg/apperr"
	"github.com/Alex-dot-c/crypto-track/pkg/market"
	"github.com/go-playground/assert/v2"
)

const testChart = `{"prices":[[1700000000000,67000.5]]}`

type fakeMarket struct {
	mu           sync.Mutex
	assets       market.AssetList
	assetsErr    error
	chart        market.ChartSeries
	chartErr     error
	assetCalls   int
	chartCalls   int
	lastPerPage  int
	lastChartID  string
	lastDays     int
	lastInterval string
}

func (f *fakeMarket) FetchTopAssets(ctx context.Context, page, perPage int) (market.AssetList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assetCalls++
	f.lastPerPage = perPage
	return f.assets, f.assetsErr
}

func (f *fakeMarket) FetchHistory(ctx context.Context, assetID string, days int, interval string) (market.ChartSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chartCalls++
	f.lastChartID = assetID
	f.lastDays = days
	f.lastInterval = interval
	return f.chart, f.chartErr
}

type fakeAI struct {
	mu     sync.Mutex
	answer string
	panics bool
	calls  int
}

func (f *fakeAI) Summarize(ctx context.Context, prompt string) string {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.panics {
		panic("ai exploded")
	}
	return f.answer
}

func healthyMarket() *fakeMarket {
	return &fakeMarket{assets: testAssets, chart: market.ChartSeries(testChart)}
}

func TestBuildAggregate_EmptyPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\t\n"} {
		m := healthyMarket()
		ai := &fakeAI{answer: "summary"}
		agg := NewAggregator(m, ai)

		res, err := agg.BuildAggregate(context.Background(), prompt)

		assert.Equal(t, true, apperr.IsValidation(err))
		assert.Equal(t, true, res == nil)
		assert.Equal(t, 0, ai.calls)
		assert.Equal(t, 0, m.assetCalls)
		assert.Equal(t, 0, m.chartCalls)
	}
}

func TestBuildAggregate_AllHealthy(t *testing.T) {
	m := healthyMarket()
	agg := NewAggregator(m, &fakeAI{answer: "Bitcoin rose 3% this week."})

	res, err := agg.BuildAggregate(context.Background(), "bitcoin")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Bitcoin rose 3% this week.", res.AI)
	assert.NotEqual(t, nil, res.Coin)
	assert.Equal(t, "bitcoin", res.Coin.ID)
	assert.Equal(t, testChart, string(res.Chart))

	assert.Equal(t, market.ResolvePerPage, m.lastPerPage)
	assert.Equal(t, "bitcoin", m.lastChartID)
	assert.Equal(t, 30, m.lastDays)
	assert.Equal(t, "", m.lastInterval)
}

func TestBuildAggregate_AIDegraded(t *testing.T) {
	agg := NewAggregator(healthyMarket(), &fakeAI{answer: "Grok API error: 500"})

	res, err := agg.BuildAggregate(context.Background(), "bitcoin")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Grok API error: 500", res.AI)
	assert.Equal(t, "bitcoin", res.Coin.ID)
	assert.Equal(t, testChart, string(res.Chart))
}

func TestBuildAggregate_AIPanics(t *testing.T) {
	agg := NewAggregator(healthyMarket(), &fakeAI{panics: true})

	res, err := agg.BuildAggregate(context.Background(), "btc")

	assert.Equal(t, nil, err)
	assert.Equal(t, noAIResponse, res.AI)
	assert.Equal(t, "bitcoin", res.Coin.ID)
}

func TestBuildAggregate_NoMatch(t *testing.T) {
	m := healthyMarket()
	agg := NewAggregator(m, &fakeAI{answer: "Nothing found."})

	res, err := agg.BuildAggregate(context.Background(), "doesnotexist")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Nothing found.", res.AI)
	assert.Equal(t, true, res.Coin == nil)
	assert.Equal(t, true, res.Chart == nil)
	assert.Equal(t, 0, m.chartCalls)

	b, _ := json.Marshal(res)
	assert.Equal(t, `{"ai":"Nothing found.","coin":null,"chart":null}`, string(b))
}

func TestBuildAggregate_MarketListFails(t *testing.T) {
	m := &fakeMarket{assetsErr: &apperr.UpstreamError{Provider: "coingecko", Status: 503}}
	agg := NewAggregator(m, &fakeAI{answer: "summary"})

	res, err := agg.BuildAggregate(context.Background(), "bitcoin")

	assert.Equal(t, nil, err)
	assert.Equal(t, "summary", res.AI)
	assert.Equal(t, true, res.Coin == nil)
	assert.Equal(t, true, res.Chart == nil)
	assert.Equal(t, 0, m.chartCalls)
}

func TestBuildAggregate_ChartFails(t *testing.T) {
	m := &fakeMarket{assets: testAssets, chartErr: &apperr.UpstreamError{Provider: "coingecko", Status: 429, Retried: true}}
	agg := NewAggregator(m, &fakeAI{answer: "summary"})

	res, err := agg.BuildAggregate(context.Background(), "ETH")

	assert.Equal(t, nil, err)
	assert.Equal(t, "summary", res.AI)
	assert.Equal(t, "ethereum", res.Coin.ID)
	assert.Equal(t, true, res.Chart == nil)
}

func TestResultJSON_PassesAssetThrough(t *testing.T) {
	raw := `{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":67000.5}`
	assets, err := market.ParseAssets([]byte("[" + raw + "]"))
	assert.Equal(t, nil, err)

	m := &fakeMarket{assets: assets, chart: market.ChartSeries(testChart)}
	res, _ := NewAggregator(m, &fakeAI{answer: "ok"}).BuildAggregate(context.Background(), "btc")

	b, err := json.Marshal(res)
	assert.Equal(t, nil, err)
	assert.Equal(t, `{"ai":"ok","coin":`+raw+`,"chart":`+testChart+`}`, string(b))
}
