package utils

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) Logger {
	return NewSlogLogger(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestSlogLogger_LogRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.LogRequest("GET", "/health", 200, "1ms")
	assert.Contains(t, buf.String(), `"level":"INFO"`)

	buf.Reset()
	logger.LogRequest("GET", "/missing", 404, "1ms")
	assert.Contains(t, buf.String(), `"level":"WARN"`)

	buf.Reset()
	logger.LogRequest("GET", "/boom", 500, "1ms")
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestSlogLogger_LogError(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf).With("component", "test")

	logger.LogError(errors.New("fetch failed"), "Failed to load participation", "participation_id", 7)

	out := buf.String()
	assert.Contains(t, out, `"error":"fetch failed"`)
	assert.Contains(t, out, `"component":"test"`)
	assert.Contains(t, out, `"participation_id":7`)
}

func TestContextLogger_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer

	router := gin.New()
	router.Use(ContextLogger(newBufferLogger(&buf)))
	router.GET("/ping", func(c *gin.Context) {
		GetLoggerFromContext(c).Info("pong")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	requestID := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, requestID)
	assert.Contains(t, buf.String(), requestID)
}

func TestContextLogger_KeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ContextLogger(NewSlogLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))))
	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", seen)
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
}
