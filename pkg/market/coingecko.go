package market

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Alex-dot-c/crypto-track/pkg/apperr"
)

const (
	DefaultBaseURL      = "https://api.coingecko.com/api/v3"
	DefaultTimeout      = 10 * time.Second
	DefaultRetryBackoff = 60 * time.Second

	providerName = "coingecko"
)

type Options struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	RetryBackoff time.Duration
	Metrics      Recorder
}

type CoinGeckoClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
	metrics    Recorder
}

func NewCoinGeckoClient(opts Options) *CoinGeckoClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if opts.Metrics == nil {
		opts.Metrics = nopRecorder{}
	}
	return &CoinGeckoClient{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		backoff:    opts.RetryBackoff,
		metrics:    opts.Metrics,
	}
}

func (c *CoinGeckoClient) Name() string {
	return "CoinGecko"
}

func (c *CoinGeckoClient) FetchTopAssets(ctx context.Context, page, perPage int) (AssetList, error) {
	if page < 1 {
		return nil, apperr.Validation("invalid page %d", page)
	}
	if perPage < 1 || perPage > MaxPerPage {
		return nil, apperr.Validation("invalid per_page %d", perPage)
	}

	q := url.Values{}
	q.Set("vs_currency", defaultVsCurrency)
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))

	body, err := c.get(ctx, "markets", "/coins/markets", q)
	if err != nil {
		return nil, err
	}

	assets, err := ParseAssets(body)
	if err != nil {
		return nil, &apperr.UpstreamError{Provider: providerName, Status: http.StatusOK, Err: err}
	}
	return assets, nil
}

// FetchHistory loads the market_chart series for assetID. interval is sent
// only when non-empty.
func (c *CoinGeckoClient) FetchHistory(ctx context.Context, assetID string, days int, interval string) (ChartSeries, error) {
	if days < 1 {
		return nil, apperr.Validation("Invalid 'days' parameter")
	}
	if assetID == "" {
		return nil, apperr.Validation("missing coin id")
	}

	q := url.Values{}
	q.Set("vs_currency", defaultVsCurrency)
	q.Set("days", strconv.Itoa(days))
	if interval != "" {
		q.Set("interval", interval)
	}

	body, err := c.get(ctx, "market_chart", "/coins/"+url.PathEscape(assetID)+"/market_chart", q)
	if err != nil {
		return nil, err
	}

	chart, err := ParseChart(body)
	if err != nil {
		return nil, &apperr.UpstreamError{Provider: providerName, Status: http.StatusOK, Err: err}
	}
	return chart, nil
}

// get issues the request and applies the throttle policy: a 429 is retried
// exactly once after the back-off, anything else non-2xx fails immediately.
func (c *CoinGeckoClient) get(ctx context.Context, op, path string, q url.Values) ([]byte, error) {
	endpoint := c.baseURL + path + "?" + q.Encode()

	body, status, err := c.do(ctx, op, endpoint)
	if err != nil {
		return nil, err
	}

	if status == http.StatusTooManyRequests {
		slog.Warn("coingecko rate limit hit, retrying", "operation", op, "backoff", c.backoff)
		c.metrics.RecordRetry(providerName, op)

		if err := waitBackoff(ctx, c.backoff); err != nil {
			return nil, &apperr.TransportError{Provider: providerName, Err: fmt.Errorf("waiting to retry: %w", err)}
		}

		body, status, err = c.do(ctx, op, endpoint)
		if err != nil {
			return nil, err
		}
		if !isSuccess(status) {
			slog.Error("coingecko retry failed", "operation", op, "status", status)
			return nil, &apperr.UpstreamError{Provider: providerName, Status: status, Retried: true}
		}
		return body, nil
	}

	if !isSuccess(status) {
		return nil, &apperr.UpstreamError{Provider: providerName, Status: status}
	}
	return body, nil
}

func (c *CoinGeckoClient) do(ctx context.Context, op, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("coingecko %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(providerName, op, "transport_error", time.Since(start).Seconds())
		return nil, 0, &apperr.TransportError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		c.metrics.RecordUpstream(providerName, op, "transport_error", elapsed)
		return nil, 0, &apperr.TransportError{Provider: providerName, Err: fmt.Errorf("read body: %w", err)}
	}

	outcome := "ok"
	if !isSuccess(resp.StatusCode) {
		outcome = "status_" + strconv.Itoa(resp.StatusCode)
	}
	c.metrics.RecordUpstream(providerName, op, outcome, elapsed)
	slog.Debug("coingecko response", "operation", op, "status", resp.StatusCode, "bytes", len(body))

	return body, resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
