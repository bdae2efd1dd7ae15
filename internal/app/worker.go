package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-hrops/internal/messaging/kafka"
	"go-hrops/internal/messaging/kafka/producer"
	"go-hrops/internal/shared/config"
	"go-hrops/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays committed outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.Kafka.OutboxPollInterval)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()
	<-done

	return nil
}
