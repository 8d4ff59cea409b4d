package linkparse

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/observability"
)

// instagramCanonicalHost is the host normalized links use regardless of the
// shortener or mobile host they arrived with.
const instagramCanonicalHost = "www.instagram.com"

// ExtractInstagram never fetches the target page; Instagram blocks
// unauthenticated scraping. It normalizes the URL, pulls a username from the
// path when one is present, and returns a mostly-empty suggestion flagged
// for manual completion. This path never returns an error to the caller.
func ExtractInstagram(ctx context.Context, rawURL string) *entities.Suggestion {
	signals := map[string]string{}

	normalized, username, err := normalizeInstagramURL(rawURL)
	if err != nil {
		observability.LoggerFromContext(ctx).Debug().Err(err).
			Str("url", rawURL).
			Msg("instagram normalization failed, using fallback suggestion")
		return instagramFallback(rawURL)
	}
	signals["url"] = "normalized"

	title := "Instagram Post"
	description := "Content shared from Instagram. Please add details about this activity manually."
	if username != "" {
		title = fmt.Sprintf("Instagram Post by @%s", username)
		description = fmt.Sprintf("Content shared by @%s on Instagram. Please add details about this activity manually.", username)
		signals["username"] = "path"
	}

	return &entities.Suggestion{
		Title:               title,
		Description:         description,
		Category:            defaultCategory,
		Location:            "",
		URL:                 normalized,
		EstimatedCost:       0,
		Excitement:          0,
		Duration:            EstimateDurationByCategory(defaultCategory),
		Source:              "Instagram",
		ManualInputRequired: true,
		Metadata: &entities.SuggestionMetadata{
			Provider:    string(ProviderInstagram),
			ResolvedURL: normalized,
			Signals:     signals,
		},
	}
}

// normalizeInstagramURL canonicalizes the host, strips tracking parameters,
// and extracts the author username from the path when the first segment is a
// profile rather than a content type marker.
func normalizeInstagramURL(rawURL string) (normalized, username string, err error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}

	parsed.Host = instagramCanonicalHost
	parsed.Scheme = "https"

	query := parsed.Query()
	for key := range query {
		if strings.HasPrefix(key, "utm_") || key == "igshid" || key == "igsh" {
			query.Del(key)
		}
	}
	parsed.RawQuery = query.Encode()

	segments := strings.FieldsFunc(parsed.Path, func(r rune) bool { return r == '/' })
	if len(segments) > 0 {
		switch segments[0] {
		case "p", "reel", "reels", "tv":
			// content permalinks carry no username in the path
		case "stories":
			if len(segments) > 1 {
				username = segments[1]
			}
		default:
			username = segments[0]
		}
	}

	return parsed.String(), username, nil
}

func instagramFallback(rawURL string) *entities.Suggestion {
	return &entities.Suggestion{
		Title:               "Instagram Post",
		Description:         "Content shared from Instagram. Please add details about this activity manually.",
		Category:            defaultCategory,
		URL:                 rawURL,
		EstimatedCost:       0,
		Excitement:          0,
		Duration:            EstimateDurationByCategory(defaultCategory),
		Source:              "Instagram",
		ManualInputRequired: true,
		Metadata: &entities.SuggestionMetadata{
			Provider:    string(ProviderInstagram),
			ResolvedURL: rawURL,
			Degraded:    true,
			Signals:     map[string]string{},
		},
	}
}
