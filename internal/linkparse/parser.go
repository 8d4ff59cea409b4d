package linkparse

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/observability"
	"github.com/dateplanhq/dateplan/backend/pkg/config"
	"github.com/dateplanhq/dateplan/backend/pkg/errors"
)

// Service runs the full parse pipeline: validate, resolve redirects,
// classify, extract, normalize. It is stateless; concurrent Parse calls
// share nothing but the HTTP client.
type Service struct {
	fetcher *Fetcher
	metrics *observability.Metrics
}

// NewService creates a parse service from parser configuration. metrics may
// be nil.
func NewService(cfg config.ParserConfig, metrics *observability.Metrics) *Service {
	return &Service{fetcher: NewFetcher(cfg), metrics: metrics}
}

// NewServiceWithClient allows overriding the HTTP client (used for tests).
func NewServiceWithClient(cfg config.ParserConfig, client *http.Client, metrics *observability.Metrics) *Service {
	return &Service{fetcher: NewFetcherWithClient(cfg, client), metrics: metrics}
}

// Parse turns a shared link into an activity suggestion. The debug flag
// keeps extraction provenance attached to the response; otherwise it is
// stripped before returning.
//
// Error contract: a missing URL is a validation error, a syntactically
// invalid URL is an internal error, and a failed fetch on the generic
// fallback path is an external error. Every other failure degrades into a
// partially-populated suggestion.
func (s *Service) Parse(ctx context.Context, rawURL string, debug bool) (*entities.Suggestion, error) {
	if rawURL == "" {
		return nil, errors.NewValidationError("URL is required")
	}

	original, err := url.Parse(rawURL)
	if err != nil || original.Scheme == "" || original.Host == "" {
		return nil, errors.NewInternalError("invalid URL format", err)
	}

	originalWasShortener := IsShortenerURL(original)
	resolvedURL := ResolveRedirect(ctx, s.fetcher, rawURL)

	resolved, err := url.Parse(resolvedURL)
	if err != nil {
		resolved = original
		resolvedURL = rawURL
	}

	provider := Classify(resolved, originalWasShortener)

	logger := observability.LoggerFromContext(ctx)
	logger.Info().
		Str("provider", string(provider)).
		Str("url", rawURL).
		Str("resolved_url", resolvedURL).
		Msg("parsing link")

	var suggestion *entities.Suggestion
	switch provider {
	case ProviderGoogleMaps:
		suggestion = ExtractGoogleMaps(ctx, s.fetcher, resolvedURL)
	case ProviderAppleMaps:
		suggestion = ExtractAppleMaps(ctx, resolvedURL)
	case ProviderInstagram:
		suggestion = ExtractInstagram(ctx, resolvedURL)
	case ProviderYelp:
		suggestion = ExtractYelp(ctx, s.fetcher, resolvedURL)
	case ProviderTripAdvisor:
		suggestion = ExtractTripAdvisor(ctx, s.fetcher, resolvedURL)
	default:
		suggestion, err = ExtractGeneric(ctx, s.fetcher, resolvedURL)
		if err != nil {
			observability.RecordParseMetric(ctx, s.metrics, string(provider), true)
			return nil, err
		}
	}

	degraded := suggestion.Metadata != nil && suggestion.Metadata.Degraded
	observability.RecordParseMetric(ctx, s.metrics, string(provider), degraded)

	if !debug {
		suggestion.Metadata = nil
	}

	return suggestion, nil
}
