package linkparse

import (
	"net/url"
	"strings"
)

// Provider identifies which extraction strategy handles a URL.
type Provider string

const (
	ProviderGoogleMaps  Provider = "google_maps"
	ProviderAppleMaps   Provider = "apple_maps"
	ProviderInstagram   Provider = "instagram"
	ProviderYelp        Provider = "yelp"
	ProviderTripAdvisor Provider = "tripadvisor"
	ProviderGeneric     Provider = "generic"
)

// IsShortenerURL reports whether a URL matches a known shortener pattern that
// should be resolved before classification. Google hands out goo.gl,
// maps.app.goo.gl and g.co/kgs links for shared places.
func IsShortenerURL(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	switch {
	case host == "goo.gl" || strings.HasSuffix(host, ".goo.gl"):
		return true
	case host == "g.co" && strings.HasPrefix(u.Path, "/kgs"):
		return true
	}
	return false
}

// Classify selects the extraction provider for a resolved URL. Order matters:
// Google's generic /search results share a host with Maps, and Instagram has
// to win over Generic because it takes the manual-input path instead of a
// scrape that would reliably fail.
func Classify(resolved *url.URL, originalWasShortener bool) Provider {
	host := strings.ToLower(resolved.Hostname())
	path := resolved.Path

	switch {
	case strings.Contains(host, "google.com") && (strings.Contains(path, "/maps") || strings.Contains(path, "/search")),
		strings.Contains(host, "maps.google"),
		strings.Contains(host, "goo.gl"),
		strings.Contains(host, "maps.app.goo.gl"),
		originalWasShortener:
		return ProviderGoogleMaps

	case strings.Contains(host, "maps.apple.com"):
		return ProviderAppleMaps

	case strings.Contains(host, "instagram.com"), strings.Contains(host, "instagr.am"):
		return ProviderInstagram

	case strings.Contains(host, "yelp.com"):
		return ProviderYelp

	case strings.Contains(host, "tripadvisor.com"):
		return ProviderTripAdvisor

	default:
		return ProviderGeneric
	}
}
