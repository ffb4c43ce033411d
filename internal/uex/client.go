// Package uex fetches and caches the community-maintained pricing
// datasets: fiat MSRP/warbond prices and in-game aUEC buy listings.
package uex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rwxlff/RWX-Ship-Viewer/internal/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	fiatPricesPath = "/vehicles_prices"
	auecPricesPath = "/vehicles_purchases_prices_all"

	maxBodySize    = 20 << 20
	requestTimeout = 30 * time.Second
)

var (
	// ErrFetchFailed reports a rejected request or non-success status.
	ErrFetchFailed = errors.New("uex fetch failed")
	// ErrInvalidResponse reports a response without an ok status or
	// data payload.
	ErrInvalidResponse = errors.New("invalid uex response")
)

// Client fetches the two pricing datasets. Each dataset carries its own
// cache with its own TTL: fiat prices expire quickly because sale
// pricing is volatile, aUEC listings are near-static.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	fiatCache   *store.Cache[[]PriceRow]
	auecCache   *store.Cache[[]AuecRow]
}

// NewClient creates a pricing client over the given API base URL.
func NewClient(baseURL string, rateLimit float64, fiatCache *store.Cache[[]PriceRow], auecCache *store.Cache[[]AuecRow]) *Client {
	if rateLimit <= 0 {
		rateLimit = 1.0
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		fiatCache:   fiatCache,
		auecCache:   auecCache,
	}
}

// envelope is the common upstream response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (c *Client) fetchRows(ctx context.Context, path string, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if env.Status != "ok" || env.Data == nil {
		return fmt.Errorf("%w: status %q", ErrInvalidResponse, env.Status)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// FetchFiatPrices returns the raw fiat price rows, from cache when
// valid, otherwise from upstream with write-through.
func (c *Client) FetchFiatPrices(ctx context.Context) ([]PriceRow, error) {
	if cached, ok := c.fiatCache.Get(ctx); ok {
		return cached, nil
	}

	var rows []PriceRow
	if err := c.fetchRows(ctx, fiatPricesPath, &rows); err != nil {
		return nil, err
	}

	c.fiatCache.Set(ctx, rows)
	log.Info().Int("count", len(rows)).Msg("fiat prices loaded from upstream")
	return rows, nil
}

// FetchAUECPrices returns the raw aUEC listing rows, from cache when
// valid, otherwise from upstream with write-through.
func (c *Client) FetchAUECPrices(ctx context.Context) ([]AuecRow, error) {
	if cached, ok := c.auecCache.Get(ctx); ok {
		return cached, nil
	}

	var rows []AuecRow
	if err := c.fetchRows(ctx, auecPricesPath, &rows); err != nil {
		return nil, err
	}

	c.auecCache.Set(ctx, rows)
	log.Info().Int("count", len(rows)).Msg("aUEC prices loaded from upstream")
	return rows, nil
}

// ClearCache drops both cached datasets.
func (c *Client) ClearCache(ctx context.Context) {
	c.fiatCache.Clear(ctx)
	c.auecCache.Clear(ctx)
}
