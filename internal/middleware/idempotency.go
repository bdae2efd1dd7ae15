package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-hrops/internal/shared/contextutil"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	idempotencyLockTTL   = 30 * time.Second
	idempotencyCacheTTL  = 24 * time.Hour
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the first successful response of a POST carrying an
// Idempotency-Key (scoped per route and user). A duplicate that arrives while
// the first is still running gets 409 PROCESSING. Requests without the header
// pass through untouched; a nil client disables the middleware.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L().Named("middleware.idempotency"))
		userID := c.GetString(ContextUserIDValidated)
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached cachedResponse
			if jsonErr := json.Unmarshal(val, &cached); jsonErr == nil {
				c.Header("Idempotent-Replayed", "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			// Redis unavailable: serve the request without replay protection.
			log.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		// TTL on the lock so a crashed request cannot block the key forever.
		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "A request with this Idempotency-Key is still being processed", nil)
			c.Abort()
			return
		}
		defer rdb.Del(ctx, lockKey)

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		payload, err := json.Marshal(cachedResponse{Status: status, Body: rec.body.Bytes()})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, payload, idempotencyCacheTTL).Err(); err != nil {
			log.Warn("idempotency store failed", zap.Error(err))
		}
	}
}
