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

	apperrors "github.com/dateplanhq/dateplan/backend/pkg/errors"
)

const genericPageHTML = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Sunset Kayak Tour">
<meta property="og:description" content="Paddle through the harbor at golden hour with a small group and an experienced guide.">
<meta property="og:image" content="https://example.com/kayak.jpg">
</head><body></body></html>`

func TestExtractGeneric_OpenGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, genericPageHTML)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion, err := ExtractGeneric(context.Background(), fetcher, server.URL+"/tours/kayak")
	require.NoError(t, err)

	assert.Equal(t, "Sunset Kayak Tour", suggestion.Title)
	assert.Contains(t, suggestion.Description, "Paddle through the harbor")
	assert.Equal(t, "See link for details", suggestion.Location)
	assert.Equal(t, 0.0, suggestion.EstimatedCost)
	assert.Equal(t, 0, suggestion.Excitement)
	assert.Equal(t, 120, suggestion.Duration)
	require.NotNil(t, suggestion.ImageURL)
	assert.Equal(t, "https://example.com/kayak.jpg", *suggestion.ImageURL)
}

func TestExtractGeneric_FallbackSelectors(t *testing.T) {
	html := `<html><head><title>Pottery Workshop | Studio</title></head>
<body><p>Learn wheel throwing in a two hour beginner class.</p>
<img src="/static/pottery.jpg"></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion, err := ExtractGeneric(context.Background(), fetcher, server.URL+"/classes")
	require.NoError(t, err)

	assert.Equal(t, "Pottery Workshop | Studio", suggestion.Title)
	assert.Contains(t, suggestion.Description, "wheel throwing")
	require.NotNil(t, suggestion.ImageURL)
	assert.Equal(t, "/static/pottery.jpg", *suggestion.ImageURL)
}

func TestExtractGeneric_AddressScrape(t *testing.T) {
	html := `<html><head><title>Corner Bistro</title></head>
<body><address>12 Bedford St, New York, NY 10014</address></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion, err := ExtractGeneric(context.Background(), fetcher, server.URL)
	require.NoError(t, err)

	// a scraped address enriches the description but never the location
	assert.Equal(t, "Activity at 12 Bedford St, New York, NY 10014", suggestion.Description)
	assert.Equal(t, "See link for details", suggestion.Location)
	require.NotNil(t, suggestion.Metadata)
	assert.Equal(t, "address_tag", suggestion.Metadata.Signals["address"])
}

func TestExtractGeneric_Truncation(t *testing.T) {
	longTitle := strings.Repeat("t", 150)
	longDescription := strings.Repeat("d", 400)
	html := fmt.Sprintf(`<html><head>
<meta property="og:title" content="%s">
<meta property="og:description" content="%s">
</head><body></body></html>`, longTitle, longDescription)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion, err := ExtractGeneric(context.Background(), fetcher, server.URL)
	require.NoError(t, err)

	assert.Len(t, suggestion.Title, genericTitleLimit+3)
	assert.True(t, strings.HasSuffix(suggestion.Title, "..."))
	assert.Len(t, suggestion.Description, genericDescriptionLimit+3)
}

func TestExtractGeneric_FetchFailureIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(testParserConfig(), server.Client())
	suggestion, err := ExtractGeneric(context.Background(), fetcher, server.URL)

	require.Error(t, err)
	assert.Nil(t, suggestion)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
}
