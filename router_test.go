package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-photo-server/modules/common/gemini"
	processimage "studio-photo-server/modules/process-image"
)

func testRouter() http.Handler {
	provider := gemini.NewProvider(gemini.Options{Backend: "gemini"})
	return newRouter(processimage.NewService(provider, "m"), nil, 1<<20)
}

func TestHealthCheck(t *testing.T) {
	r := testRouter()
	for _, path := range []string{"/", "/health"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, serviceName, body["service"])
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/process-image", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutesWired(t *testing.T) {
	r := testRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scenes", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var snap map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, false, snap["enabled"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "studio_photo_http_requests_total")
}

// API 키 없이 호출하면 일반 에러 메시지로 500
func TestProcessImage_MissingAPIKey(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"image":"/9j/4AAQSkZJRgABAQ==","backgroundPrompt":"a beach"}`
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/process-image", strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to process image. Please try again."}`, rec.Body.String())
}
