package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/config"
	"library-catalog/pkg/container"
)

func newTestRouter(t *testing.T, rateLimit config.RateLimitConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := container.NewContainer(&config.Config{
		App:       config.AppConfig{Environment: "test", Version: "test"},
		Store:     config.StoreConfig{Driver: config.StoreDriverMemory},
		RateLimit: rateLimit,
		Jobs:      config.JobConfig{QueueName: "catalog"},
	})
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	return SetupRouter(c)
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HomeRedirectsToCatalog(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog", w.Header().Get("Location"))

	w = do(r, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Local Library Home")
}

func TestRouter_EmptyListsRender(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	for _, path := range []string{"/catalog/books", "/catalog/authors", "/catalog/genres", "/catalog/bookinstances"} {
		w := do(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_UnknownPathRendersNotFound(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/catalog/nothing/here", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "memory", body["store"])
}

func TestRouter_CreateThenSummary(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	form := url.Values{"name": {"Horror"}}
	req := httptest.NewRequest(http.MethodPost, "/catalog/genre/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusFound, do(r, req).Code)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"genres":1`)
}

func TestRouter_FormSubmissionsAreRateLimited(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{Enabled: true, PerSec: 0.001, Burst: 2})

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/catalog/genre/create", strings.NewReader("name="))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "203.0.113.7:1234"
		return do(r, req).Code
	}

	assert.Equal(t, http.StatusUnprocessableEntity, post())
	assert.Equal(t, http.StatusUnprocessableEntity, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	w := do(r, httptest.NewRequest(http.MethodGet, "/catalog/genres", nil))
	assert.Equal(t, http.StatusOK, w.Code, "reads are not limited")
}

func TestDegradedMessage(t *testing.T) {
	msg := degradedMessage(map[string]string{
		"redis":    "dial tcp: connection refused",
		"database": "database ping failed: timeout",
		"queue":    "ok",
		"search":   "disabled",
	})
	assert.Equal(t, "degraded: database: database ping failed: timeout; redis: dial tcp: connection refused", msg)
}
