package linkparse

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tripAttractionHTML = `<!DOCTYPE html>
<html><body>
<h1 data-automation="mainH1">Griffith Park Hiking Trails</h1>
<span class="ui_bubble_rating bubble_45"></span>
<div class="format_address">4730 Crystal Springs Dr, Los Angeles, CA</div>
<p class="partial_entry">Fantastic views of the Hollywood sign and the observatory. The trail is steep in places but worth it.</p>
<div class="ui_breadcrumbs"><a href="#">Los Angeles</a><a href="#">Hiking Trails</a></div>
</body></html>`

func TestExtractTripAdvisor_FullScrape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tripAttractionHTML)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion := ExtractTripAdvisor(context.Background(), fetcher, server.URL+"/Attraction_Review")

	assert.Equal(t, "Griffith Park Hiking Trails", suggestion.Title)
	assert.Equal(t, "4730 Crystal Springs Dr, Los Angeles, CA", suggestion.Location)
	// bubble_45 encodes a 4.5 rating
	assert.Equal(t, 9, suggestion.Excitement)
	assert.Equal(t, "Outdoor", suggestion.Category)
	assert.Contains(t, suggestion.Description, "Fantastic views")
	assert.Nil(t, suggestion.ImageURL)
}

func TestExtractTripAdvisor_ReviewExcerptTruncated(t *testing.T) {
	longReview := strings.Repeat("great spot ", 40)
	html := fmt.Sprintf(`<html><body><h1>Museum of Things</h1>
<div data-automation="reviewText">%s</div></body></html>`, longReview)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion := ExtractTripAdvisor(context.Background(), fetcher, server.URL+"/Attraction_Review")

	assert.LessOrEqual(t, len(suggestion.Description), reviewExcerptLimit+3)
	assert.True(t, strings.HasSuffix(suggestion.Description, "..."))
}

func TestExtractTripAdvisor_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion := ExtractTripAdvisor(context.Background(), fetcher, server.URL+"/Attraction_Review")

	assert.Equal(t, "TripAdvisor Activity", suggestion.Title)
	assert.Equal(t, "See TripAdvisor page for details", suggestion.Location)
	assert.Equal(t, 0, suggestion.Excitement)
	require.NotNil(t, suggestion.Metadata)
	assert.True(t, suggestion.Metadata.Degraded)
}

func TestTripAdvisorRating_BubbleEncoding(t *testing.T) {
	doc := docFromHTML(t, `<html><body><span class="ui_bubble_rating bubble_45"></span></body></html>`)
	signals := map[string]string{}
	assert.Equal(t, 4.5, tripAdvisorRating(doc, signals))
	assert.Equal(t, "bubble", signals["rating"])
}

func TestTripAdvisorRating_Decimal(t *testing.T) {
	doc := docFromHTML(t, `<html><body><div class="overallRating">4.0</div></body></html>`)
	signals := map[string]string{}
	assert.Equal(t, 4.0, tripAdvisorRating(doc, signals))
}

func TestTripAdvisorRating_Missing(t *testing.T) {
	doc := docFromHTML(t, `<html><body></body></html>`)
	signals := map[string]string{}
	assert.Equal(t, 0.0, tripAdvisorRating(doc, signals))
}
