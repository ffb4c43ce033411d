// Package catalog fetches and caches the canonical vehicle catalog.
package catalog

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
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	maxBodySize    = 20 << 20
	requestTimeout = 30 * time.Second
)

var (
	// ErrFetchFailed reports a rejected request or non-success status.
	ErrFetchFailed = errors.New("catalog fetch failed")
	// ErrInvalidResponse reports a malformed or empty data payload.
	ErrInvalidResponse = errors.New("invalid catalog response")
)

// Client fetches the vehicle catalog with write-through caching.
type Client struct {
	url         string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	cache       *store.Cache[[]VehicleRecord]
}

// NewClient creates a catalog client. The cache TTL is owned by the
// caller via the store cache it passes in.
func NewClient(url string, rateLimit float64, cache *store.Cache[[]VehicleRecord]) *Client {
	if rateLimit <= 0 {
		rateLimit = 1.0
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		cache:       cache,
	}
}

type catalogResponse struct {
	Data []VehicleRecord `json:"data"`
}

// FetchCatalog returns the full catalog, from cache when the entry is
// still valid, otherwise from the network with write-through.
func (c *Client) FetchCatalog(ctx context.Context) ([]VehicleRecord, error) {
	if cached, ok := c.cache.Get(ctx); ok {
		log.Info().Int("count", len(cached)).Msg("catalog loaded from cache")
		return cached, nil
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	var parsed catalogResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("%w: empty data payload", ErrInvalidResponse)
	}

	c.cache.Set(ctx, parsed.Data)
	log.Info().Int("count", len(parsed.Data)).Msg("catalog loaded from upstream")
	return parsed.Data, nil
}

// ClearCache drops the cached catalog entry.
func (c *Client) ClearCache(ctx context.Context) {
	c.cache.Clear(ctx)
}
