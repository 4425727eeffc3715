package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerProcess(t *testing.T) {
	s := NewCatalogueServer(nil, 8)
	h := s.Routes(nil)

	rec := post(t, h, "/v1/process", document)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(REQUEST_ID_HEADER))
	answers := decodeAnswers(t, rec.Body.Bytes())
	require.Len(t, answers, 3)
	assert.Equal(t, 16000.0, answers[0]["route_length"])

	// 相同文档命中缓存
	again := post(t, h, "/v1/process", document)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, rec.Body.String(), again.Body.String())
	assert.Equal(t, int64(2), s.requests.Value())
	assert.Equal(t, int64(1), s.cacheHits.Value())
}

func TestServerProcessBadDocument(t *testing.T) {
	h := NewCatalogueServer(nil, 8).Routes(nil)

	rec := post(t, h, "/v1/process", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "decode document")

	rec = post(t, h, "/v1/process", `{"base_requests": [{"type": "Tram", "name": "T"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServerConnect(t *testing.T) {
	h := NewCatalogueServer(nil, 0).Routes(nil)

	rec := post(t, h, PROCESS_PROCEDURE, document)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	answers := decodeAnswers(t, rec.Body.Bytes())
	require.Len(t, answers, 3)
	assert.Equal(t, map[string]any{"request_id": 2.0, "buses": []any{"1"}}, answers[1])

	rec = post(t, h, PROCESS_PROCEDURE, "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_argument")
}

func TestServerCacheEviction(t *testing.T) {
	s := NewCatalogueServer(nil, 1)
	_, err := s.Process(t.Context(), []byte(document))
	require.NoError(t, err)
	assert.Equal(t, 1, s.cache.Size())

	other := strings.Replace(document, `"name": "2"`, `"name": "3"`, 1)
	_, err = s.Process(t.Context(), []byte(other))
	require.NoError(t, err)
	assert.Equal(t, 1, s.cache.Size())
	assert.Equal(t, int64(0), s.cacheHits.Value())

	disabled := NewCatalogueServer(nil, 0)
	_, err = disabled.Process(t.Context(), []byte(document))
	require.NoError(t, err)
	assert.Equal(t, 0, disabled.cache.Size())
}

func TestServerHealth(t *testing.T) {
	h := NewCatalogueServer(nil, 8).Routes(nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(REQUEST_ID_HEADER, "fixed-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fixed-id", rec.Header().Get(REQUEST_ID_HEADER))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	var health map[string]any
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, 0.0, health["requests"])
}

func TestServerCORS(t *testing.T) {
	h := NewCatalogueServer(nil, 8).Routes([]string{"http://app.example"})
	req := httptest.NewRequest(http.MethodOptions, "/v1/process", nil)
	req.Header.Set("Origin", "http://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
