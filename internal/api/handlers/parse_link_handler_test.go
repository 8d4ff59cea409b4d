package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dateplanhq/dateplan/backend/internal/api/handlers"
	"github.com/dateplanhq/dateplan/backend/internal/linkparse"
	"github.com/dateplanhq/dateplan/backend/pkg/config"
)

func newTestParseHandler(client *http.Client) *handlers.ParseLinkHandler {
	cfg := config.ParserConfig{
		FetchTimeout: 5 * time.Second,
		MaxRedirects: 5,
		UserAgent:    "test-agent",
	}
	return handlers.NewParseLinkHandler(linkparse.NewServiceWithClient(cfg, client, nil))
}

func TestParseLinkHandler_MissingURL(t *testing.T) {
	handler := newTestParseHandler(nil)

	req := httptest.NewRequest("POST", "/api/parse-link", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.ParseLink(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "URL is required", response["error"])
}

func TestParseLinkHandler_InvalidBody(t *testing.T) {
	handler := newTestParseHandler(nil)

	req := httptest.NewRequest("POST", "/api/parse-link", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()

	handler.ParseLink(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseLinkHandler_InvalidURLIsServerError(t *testing.T) {
	handler := newTestParseHandler(nil)

	req := httptest.NewRequest("POST", "/api/parse-link", strings.NewReader(`{"url":"not a url"}`))
	w := httptest.NewRecorder()

	handler.ParseLink(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response["error"])
	assert.NotEmpty(t, response["details"])
}

func TestParseLinkHandler_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta property="og:title" content="Rooftop Cinema"></head><body></body></html>`)
	}))
	defer server.Close()

	handler := newTestParseHandler(server.Client())

	body := fmt.Sprintf(`{"url":%q}`, server.URL+"/events")
	req := httptest.NewRequest("POST", "/api/parse-link", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ParseLink(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Rooftop Cinema", response["title"])
	assert.NotContains(t, response, "_metadata")
}

func TestParseLinkHandler_DebugIncludesMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta property="og:title" content="Rooftop Cinema"></head><body></body></html>`)
	}))
	defer server.Close()

	handler := newTestParseHandler(server.Client())

	body := fmt.Sprintf(`{"url":%q,"debug":true}`, server.URL+"/events")
	req := httptest.NewRequest("POST", "/api/parse-link", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ParseLink(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Contains(t, response, "_metadata")
	metadata := response["_metadata"].(map[string]interface{})
	assert.Equal(t, "generic", metadata["provider"])
}

func TestParseLinkHandler_GenericFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	handler := newTestParseHandler(server.Client())

	body := fmt.Sprintf(`{"url":%q}`, server.URL+"/broken")
	req := httptest.NewRequest("POST", "/api/parse-link", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ParseLink(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response["details"])
}
