package middleware

import (
	"time"

	"go-hrops/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger and writes one access log
// line per request. Must run after RequestID.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := contextutil.GetRequestID(c.Request.Context())

		reqLogger := logger.With(zap.String("request_id", rid))
		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// AuthMiddleware may have replaced the logger with a user-scoped one.
		contextutil.GetLogger(c.Request.Context(), reqLogger).Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
