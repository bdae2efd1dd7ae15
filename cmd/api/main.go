package main

import (
	"context"
	"time"

	"go-hrops/internal/app"
	"go-hrops/internal/bootstrap"
	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	shutdownTracing, err := bootstrap.SetupTracing(context.Background(), cfg.Tracing)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	}

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	auditLogger := bootstrap.NewStdoutAuditLogger()
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ServiceName:  cfg.Tracing.ServiceName,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
		shutdownTracing,
	)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
