package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go-hrops/internal/middleware"
	"go-hrops/internal/shared/config"
	"go-hrops/internal/shared/connection"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, registers every module on router and
// returns a cleanup that releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency replay disabled")
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L().Named("http")),
	)
	router.GET("/healthz", healthHandler(sqlDB, rdb))

	// 2. Register Modules & Routes
	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

func healthHandler(db *sql.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok"}
		healthy := true
		if err := db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			}
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "UNHEALTHY", "Dependency check failed", checks)
			return
		}
		response.Success(c, http.StatusOK, checks, nil)
	}
}
