package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/buger/jsonparser"
)

const (
	DefaultDays       = 30
	MaxPerPage        = 250
	TopListPerPage    = 10
	ResolvePerPage    = 250
	defaultVsCurrency = "usd"

	// IntervalDaily asks CoinGecko for one point per day. An empty interval
	// leaves the granularity to CoinGecko.
	IntervalDaily = "daily"
)

// Asset is one entry of the markets listing. Only the identifying fields are
// decoded; Raw keeps the upstream object so price, market cap, rank and the
// rest pass through untouched.
type Asset struct {
	ID     string
	Symbol string
	Name   string
	Raw    json.RawMessage
}

func (a Asset) MarshalJSON() ([]byte, error) {
	if len(a.Raw) > 0 {
		return a.Raw, nil
	}
	return json.Marshal(struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	}{a.ID, a.Symbol, a.Name})
}

// AssetList is ordered by market cap, descending, as returned upstream.
type AssetList []Asset

// ChartSeries is the market_chart payload, passed through as-is.
type ChartSeries []byte

func (c ChartSeries) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

type Client interface {
	FetchTopAssets(ctx context.Context, page, perPage int) (AssetList, error)
	FetchHistory(ctx context.Context, assetID string, days int, interval string) (ChartSeries, error)
}

// Recorder receives per-call upstream measurements.
type Recorder interface {
	RecordUpstream(provider, operation, outcome string, seconds float64)
	RecordRetry(provider, operation string)
	RecordCache(operation string, hit bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordUpstream(string, string, string, float64) {}
func (nopRecorder) RecordRetry(string, string)                     {}
func (nopRecorder) RecordCache(string, bool)                       {}

// ParseAssets decodes a markets response body. Objects are kept even when
// they lack an id; non-object entries are skipped.
func ParseAssets(body []byte) (AssetList, error) {
	assets := AssetList{}
	var itemErr error

	_, err := jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if itemErr != nil {
			return
		}
		if err != nil {
			itemErr = err
			return
		}
		if dataType != jsonparser.Object {
			slog.Warn("skipping non-object markets entry", "type", dataType.String(), "offset", offset)
			return
		}

		a := Asset{Raw: append(json.RawMessage(nil), value...)}
		a.ID, _ = jsonparser.GetString(value, "id")
		a.Symbol, _ = jsonparser.GetString(value, "symbol")
		a.Name, _ = jsonparser.GetString(value, "name")
		assets = append(assets, a)
	})
	if err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}
	if itemErr != nil {
		return nil, fmt.Errorf("decode markets: %w", itemErr)
	}
	return assets, nil
}

// ParseChart checks that a market_chart body is a JSON object.
func ParseChart(body []byte) (ChartSeries, error) {
	_, dataType, _, err := jsonparser.Get(body)
	if err != nil {
		return nil, fmt.Errorf("decode market chart: %w", err)
	}
	if dataType != jsonparser.Object {
		return nil, fmt.Errorf("decode market chart: expected object, got %s", dataType)
	}
	return ChartSeries(body), nil
}
