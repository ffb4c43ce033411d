// Package loaner extracts the ship → substitute-ships mapping from the
// scraped loaner matrix document.
package loaner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rwxlff/RWX-Ship-Viewer/internal/store"
	"github.com/rs/zerolog/log"
)

// ErrTimeout reports that the delegated document fetch did not answer
// within the fixed timeout.
var ErrTimeout = errors.New("loaner matrix fetch timed out")

// Client fetches and caches the loaner matrix.
type Client struct {
	fetcher Fetcher
	timeout time.Duration
	cache   *store.Cache[map[string][]string]
}

// NewClient creates a loaner matrix client. The timeout bounds the
// delegated fetch round trip, which depends on a privileged context
// that might never reply.
func NewClient(fetcher Fetcher, timeout time.Duration, cache *store.Cache[map[string][]string]) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{fetcher: fetcher, timeout: timeout, cache: cache}
}

// FetchMatrix returns the loaner mapping keyed by lowercased ship name,
// from cache when valid, otherwise via the delegated fetch.
func (c *Client) FetchMatrix(ctx context.Context) (map[string][]string, error) {
	if cached, ok := c.cache.Get(ctx); ok {
		return cached, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	doc, err := c.fetcher.FetchHTML(fetchCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("fetching loaner matrix: %w", err)
	}

	matrix, err := ParseMatrix(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing loaner matrix: %w", err)
	}
	if len(matrix) == 0 {
		log.Warn().Msg("loaner matrix table not found")
	}

	c.cache.Set(ctx, matrix)
	log.Info().Int("ships", len(matrix)).Msg("loaner matrix loaded")
	return matrix, nil
}

// ClearCache drops the cached matrix.
func (c *Client) ClearCache(ctx context.Context) {
	c.cache.Clear(ctx)
}
