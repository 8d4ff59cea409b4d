package linkparse

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/observability"
)

// Apple Maps sometimes appends coordinates to the q parameter value
// ("Blue Bottle Coffee 37.7749,-122.4194").
var trailingCoordsPattern = regexp.MustCompile(`\s*-?\d+\.?\d*\s*,\s*-?\d+\.?\d*\s*$`)

// ExtractFromAppleMapsURL reads the q and place query parameters. Apple Maps
// links carry their payload in the query string rather than the path, so the
// URL alone yields the place name.
func ExtractFromAppleMapsURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	query := parsed.Query()

	name := query.Get("q")
	if name == "" {
		name = query.Get("place")
	}
	name = trailingCoordsPattern.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// ExtractAppleMaps builds a suggestion from an Apple Maps link without ever
// fetching the page. The location stays the fixed sentinel, Apple Maps pages
// expose no scrapeable address.
func ExtractAppleMaps(ctx context.Context, resolvedURL string) *entities.Suggestion {
	signals := map[string]string{}

	title := ExtractFromAppleMapsURL(resolvedURL)
	if title != "" {
		signals["title"] = "q_param"
	} else {
		title = "Location from Apple Maps"
	}

	category := DetermineCategory(title, "")

	observability.LoggerFromContext(ctx).Debug().
		Str("url", resolvedURL).
		Str("title", title).
		Msg("apple maps URL extraction")

	return &entities.Suggestion{
		Title:         title,
		Description:   "Location found on Apple Maps",
		Category:      category,
		Location:      "See Apple Maps link",
		URL:           resolvedURL,
		EstimatedCost: EstimateCostByCategory(category),
		Excitement:    0,
		Duration:      EstimateDurationByCategory(category),
		Metadata: &entities.SuggestionMetadata{
			Provider:    string(ProviderAppleMaps),
			ResolvedURL: resolvedURL,
			Degraded:    false,
			Signals:     signals,
		},
	}
}
