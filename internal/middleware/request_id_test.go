package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrops/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	var seen string
	r := gin.New()
	r.Use(RequestID(), ContextLogger(zap.New(core)))
	r.GET("/healthz", func(c *gin.Context) {
		seen = contextutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("propagates client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(HeaderRequestID, "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
		assert.Equal(t, "req-123", seen)
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		_, err := uuid.Parse(w.Header().Get(HeaderRequestID))
		assert.NoError(t, err)
	})

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http request", entry.Message)
	assert.Equal(t, "req-123", entry.ContextMap()["request_id"])
	assert.Equal(t, "/healthz", entry.ContextMap()["path"])
	assert.Equal(t, int64(http.StatusOK), entry.ContextMap()["status"])
}
