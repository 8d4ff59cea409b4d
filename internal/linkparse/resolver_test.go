package linkparse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestResolveRedirect_ExpandsShortener(t *testing.T) {
	const finalURL = "https://www.google.com/maps/place/Central+Park"

	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host == "maps.app.goo.gl" {
			return &http.Response{
				StatusCode: http.StatusFound,
				Header:     http.Header{"Location": {finalURL}},
				Body:       http.NoBody,
				Request:    req,
			}, nil
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    req,
		}, nil
	})}

	fetcher := NewFetcherWithClient(testParserConfig(), client)
	resolved := ResolveRedirect(context.Background(), fetcher, "https://maps.app.goo.gl/abc123")

	assert.Equal(t, finalURL, resolved)
}

func TestResolveRedirect_FailureFallsBackToOriginal(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("connection refused")
	})}

	fetcher := NewFetcherWithClient(testParserConfig(), client)
	resolved := ResolveRedirect(context.Background(), fetcher, "https://goo.gl/maps/abc123")

	assert.Equal(t, "https://goo.gl/maps/abc123", resolved)
}

func TestResolveRedirect_NonShortenerSkipsFetch(t *testing.T) {
	fetches := 0
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		fetches++
		return nil, fmt.Errorf("should not be called")
	})}

	fetcher := NewFetcherWithClient(testParserConfig(), client)
	resolved := ResolveRedirect(context.Background(), fetcher, "https://www.yelp.com/biz/somewhere")

	assert.Equal(t, "https://www.yelp.com/biz/somewhere", resolved)
	assert.Zero(t, fetches)
}

func TestResolveRedirect_InvalidURL(t *testing.T) {
	fetcher := NewFetcherWithClient(testParserConfig(), &http.Client{})
	assert.Equal(t, "://broken", ResolveRedirect(context.Background(), fetcher, "://broken"))
}
