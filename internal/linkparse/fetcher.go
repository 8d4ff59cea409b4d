package linkparse

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/dateplanhq/dateplan/backend/pkg/config"
)

// Fetcher performs bounded HTTP GETs with a browser User-Agent and returns
// parsed documents. One fetch per call, no caching, no retries: each parse
// request sees the live page.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher from parser configuration.
func NewFetcher(cfg config.ParserConfig) *Fetcher {
	return NewFetcherWithClient(cfg, nil)
}

// NewFetcherWithClient allows overriding the HTTP client (used for tests).
func NewFetcherWithClient(cfg config.ParserConfig, client *http.Client) *Fetcher {
	if client == nil {
		maxRedirects := cfg.MaxRedirects
		client = &http.Client{
			Timeout: cfg.FetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		}
	}
	return &Fetcher{
		client:    client,
		userAgent: cfg.UserAgent,
	}
}

// Document fetches a URL and parses the response body as HTML.
func (f *Fetcher) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// FinalURL fetches a URL following redirects and returns the URL of the last
// response. The body is discarded.
func (f *Fetcher) FinalURL(ctx context.Context, rawURL string) (string, error) {
	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	return resp, nil
}
