package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/SscSPs/cashkeeper/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(logs *bytes.Buffer, mw ...gin.HandlerFunc) *gin.Engine {
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("handler ran")
		c.String(http.StatusOK, "pong")
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	return r
}

func TestStructuredLogging_RequestID(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(middleware.RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"msg":"handler ran"`)
	assert.Contains(t, logs.String(), generated)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(middleware.RequestIDHeader))
}

func TestStructuredLogging_LevelFollowsStatus(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, logs.String(), `"level":"WARN","msg":"Request completed"`)
}

func TestRateLimit(t *testing.T) {
	var logs bytes.Buffer
	rate, err := limiter.NewRateFromFormatted("1-H")
	require.NoError(t, err)
	r := newRouter(&logs, middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.NotEmpty(t, second.Header().Get("X-RateLimit-Reset"))
}

type stubTracker struct{ state domain.SyncState }

func (s stubTracker) State() domain.SyncState { return s.state }

func TestSyncState(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs, middleware.SyncState(stubTracker{state: domain.SyncState{Status: domain.SyncDegraded}}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, string(domain.SyncDegraded), w.Header().Get(middleware.SyncStateHeader))
}
