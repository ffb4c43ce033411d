package loaner

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

const (
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	maxBodySize = 20 << 20
)

// Fetcher delivers the raw loaner matrix document. The matrix source
// sits behind a CORS policy the viewer context cannot bypass, so the
// fetch is delegated to a privileged collaborator; this interface is
// that delegation boundary.
type Fetcher interface {
	FetchHTML(ctx context.Context) (string, error)
}

// HTTPFetcher is the production fetcher: a plain privileged GET of the
// support-site article.
type HTTPFetcher struct {
	url        string
	httpClient *http.Client
}

// NewHTTPFetcher creates a fetcher for the given document URL. The
// client carries no timeout of its own; the caller enforces the fixed
// delegation timeout through the context.
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{
		url:        url,
		httpClient: &http.Client{},
	}
}

func (f *HTTPFetcher) FetchHTML(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
