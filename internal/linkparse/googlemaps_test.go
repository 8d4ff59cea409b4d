package linkparse

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dateplanhq/dateplan/backend/pkg/config"
)

func testParserConfig() config.ParserConfig {
	return config.ParserConfig{
		FetchTimeout: 5 * time.Second,
		MaxRedirects: 5,
		UserAgent:    "test-agent",
	}
}

func TestExtractFromGoogleMapsURL_PlaceWithCoordinates(t *testing.T) {
	info := ExtractFromGoogleMapsURL("https://www.google.com/maps/place/Central+Park/@40.785091,-73.968285,15z")

	assert.Equal(t, "Central Park", info.PlaceName)
	require.True(t, info.HasCoords)
	assert.InDelta(t, 40.785091, info.Lat, 1e-9)
	assert.InDelta(t, -73.968285, info.Lng, 1e-9)
}

func TestExtractFromGoogleMapsURL_SearchFormat(t *testing.T) {
	info := ExtractFromGoogleMapsURL("https://www.google.com/maps/search/coffee+shops+near+me")
	assert.Equal(t, "coffee shops near me", info.PlaceName)
	assert.False(t, info.HasCoords)
}

func TestExtractFromGoogleMapsURL_QueryParam(t *testing.T) {
	info := ExtractFromGoogleMapsURL("https://maps.google.com/?q=Griffith+Observatory")
	assert.Equal(t, "Griffith Observatory", info.PlaceName)
}

func TestExtractFromGoogleMapsURL_PercentEncoding(t *testing.T) {
	info := ExtractFromGoogleMapsURL("https://www.google.com/maps/place/Joe%27s+Pizza/@40.730599,-73.986581,17z")
	assert.Equal(t, "Joe's Pizza", info.PlaceName)
}

func TestExtractFromGoogleMapsURL_EmbeddedAddress(t *testing.T) {
	info := ExtractFromGoogleMapsURL("https://www.google.com/maps/place/Joe's+Diner,+123+Main+St,+Springfield")

	assert.Equal(t, "Joe's Diner", info.PlaceName)
	assert.Equal(t, "123 Main St, Springfield", info.Address)
}

func TestExtractFromGoogleMapsURL_Invalid(t *testing.T) {
	info := ExtractFromGoogleMapsURL("://not a url")
	assert.Empty(t, info.PlaceName)
	assert.False(t, info.HasCoords)
}

const mapsPlaceHTML = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Griffith Observatory · Google Maps">
<meta property="og:description" content="★★★★★ · Observatory">
<meta property="og:image" content="https://lh5.googleusercontent.com/p/photo=w408-h240-k-no">
<meta name="name" content="Griffith Observatory · 2800 E Observatory Rd, Los Angeles, CA 90027">
</head><body></body></html>`

func TestExtractGoogleMaps_ScrapedPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, mapsPlaceHTML)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion := ExtractGoogleMaps(context.Background(), fetcher, server.URL+"/maps/place/Griffith+Observatory")

	assert.Equal(t, "Griffith Observatory", suggestion.Title)
	assert.Equal(t, "2800 E Observatory Rd, Los Angeles, CA 90027", suggestion.Location)
	assert.Equal(t, 10, suggestion.Excitement)
	require.NotNil(t, suggestion.ImageURL)
	assert.Equal(t, "https://lh5.googleusercontent.com/p/photo=w1200-h630-p-k-no", *suggestion.ImageURL)
	require.NotNil(t, suggestion.Metadata)
	assert.False(t, suggestion.Metadata.Degraded)
	assert.Equal(t, string(ProviderGoogleMaps), suggestion.Metadata.Provider)
}

func TestExtractGoogleMaps_FetchFailureDegradesToURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion := ExtractGoogleMaps(context.Background(), fetcher, server.URL+"/maps/place/Central+Park/@40.785091,-73.968285,15z")

	assert.Equal(t, "Central Park", suggestion.Title)
	assert.Equal(t, "See Google Maps link", suggestion.Location)
	assert.Equal(t, 0, suggestion.Excitement)
	assert.Nil(t, suggestion.ImageURL)
	require.NotNil(t, suggestion.Metadata)
	assert.True(t, suggestion.Metadata.Degraded)
}

func TestSynthesizeGoogleDescription(t *testing.T) {
	assert.Equal(t, "Observatory · Excitement: 10/10",
		synthesizeGoogleDescription("Observatory", "addr", 5, 10, ""))

	assert.Equal(t, "Observatory · 2800 E Observatory Rd",
		synthesizeGoogleDescription("Observatory", "2800 E Observatory Rd", 0, 0, ""))

	assert.Equal(t, "Location found on Google Maps",
		synthesizeGoogleDescription("", "See Google Maps link", 0, 0, ""))

	// hours outside the plausible length band are dropped
	assert.Equal(t, "Observatory",
		synthesizeGoogleDescription("Observatory", "", 0, 0, "Open"))
	assert.Equal(t, "Observatory · Open until 10 PM",
		synthesizeGoogleDescription("Observatory", "", 0, 0, "Open until 10 PM"))
}

func TestMergeGoogleTitle(t *testing.T) {
	assert.Equal(t, "Central Park", mergeGoogleTitle("Central Park", "Google Maps"))
	assert.Equal(t, "Central Park", mergeGoogleTitle("Central Park", "Central Park NYC"))
	assert.Equal(t, "Central Park NYC", mergeGoogleTitle("", "Central Park NYC"))
	assert.Equal(t, "Location from Google Maps", mergeGoogleTitle("", "Google Maps"))
	assert.Equal(t, "Location from Google Maps", mergeGoogleTitle("", ""))
}

func TestRatingFromDescription(t *testing.T) {
	signals := map[string]string{}

	assert.Equal(t, 4.0, ratingFromDescription("★★★★ · Restaurant", &signals))
	assert.Equal(t, "star_glyphs", signals["rating"])

	assert.Equal(t, 4.6, ratingFromDescription("4.6 stars, great spot", &signals))
	assert.Equal(t, 5.0, ratingFromDescription("9.9 out of something", &signals))
	assert.Equal(t, 0.0, ratingFromDescription("no rating here", &signals))
}

func TestRatingFromDescriptionIgnoresBareIntegers(t *testing.T) {
	signals := map[string]string{}

	assert.Equal(t, 0.0, ratingFromDescription("Open 24 hours a day", &signals))
	assert.Equal(t, 0.0, ratingFromDescription("Founded in 1987 · Museum", &signals))
	assert.NotContains(t, signals, "rating")

	// a glyph run still wins even when an integer is present
	assert.Equal(t, 3.0, ratingFromDescription("★★★ · Open 24 hours", &signals))
	assert.Equal(t, "star_glyphs", signals["rating"])
}
