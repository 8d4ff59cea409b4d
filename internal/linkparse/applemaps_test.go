package linkparse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromAppleMapsURL(t *testing.T) {
	name := ExtractFromAppleMapsURL("https://maps.apple.com/?q=Blue+Bottle+Coffee")
	assert.Equal(t, "Blue Bottle Coffee", name)
}

func TestExtractFromAppleMapsURL_PlaceParam(t *testing.T) {
	name := ExtractFromAppleMapsURL("https://maps.apple.com/?place=Golden+Gate+Park")
	assert.Equal(t, "Golden Gate Park", name)
}

func TestExtractFromAppleMapsURL_StripsTrailingCoordinates(t *testing.T) {
	name := ExtractFromAppleMapsURL("https://maps.apple.com/?q=Blue+Bottle+Coffee+37.7749,-122.4194")
	assert.Equal(t, "Blue Bottle Coffee", name)
}

func TestExtractAppleMaps(t *testing.T) {
	suggestion := ExtractAppleMaps(context.Background(), "https://maps.apple.com/?q=Glen+Ivy+Hot+Springs+Spa")

	assert.Equal(t, "Glen Ivy Hot Springs Spa", suggestion.Title)
	assert.Equal(t, "See Apple Maps link", suggestion.Location)
	assert.Equal(t, "Relaxation", suggestion.Category)
	assert.Equal(t, 0, suggestion.Excitement)
	require.NotNil(t, suggestion.Metadata)
	assert.False(t, suggestion.Metadata.Degraded)
}

func TestExtractAppleMaps_NeverFetchesThePage(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
	}))
	defer server.Close()

	suggestion := ExtractAppleMaps(context.Background(), server.URL+"/?q=Somewhere")

	assert.Equal(t, "Somewhere", suggestion.Title)
	assert.Equal(t, "See Apple Maps link", suggestion.Location)
	assert.Zero(t, fetches)
}

func TestExtractAppleMaps_NoQueryParameters(t *testing.T) {
	suggestion := ExtractAppleMaps(context.Background(), "https://maps.apple.com/")

	assert.Equal(t, "Location from Apple Maps", suggestion.Title)
	assert.Equal(t, "See Apple Maps link", suggestion.Location)
	assert.Equal(t, "Location found on Apple Maps", suggestion.Description)
}
