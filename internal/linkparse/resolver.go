package linkparse

import (
	"context"
	"net/url"

	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/observability"
)

// ResolveRedirect expands a shortener URL by following its redirects and
// returning the final observed URL. Resolution is best effort: on any failure
// (network error, timeout, redirect loop) the original URL is returned so the
// rest of the pipeline can still classify and extract from it.
func ResolveRedirect(ctx context.Context, fetcher *Fetcher, rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || !IsShortenerURL(parsed) {
		return rawURL
	}

	resolved, err := fetcher.FinalURL(ctx, rawURL)
	if err != nil {
		observability.LoggerFromContext(ctx).Debug().
			Err(err).
			Str("url", rawURL).
			Msg("redirect resolution failed, using original URL")
		return rawURL
	}
	if resolved == "" {
		return rawURL
	}
	return resolved
}
