package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-hrops/internal/events"
	"go-hrops/internal/messaging/kafka/consumer"
	"go-hrops/internal/notification"
	"go-hrops/internal/rbac"
	"go-hrops/internal/shared/config"
	"go-hrops/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationConsumerGroup = "go-hrops-notifications"

// RunConsumer turns leave/payroll status events into user notifications.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	rbacService, err := rbac.NewDefaultService()
	if err != nil {
		return err
	}
	notificationService := notification.NewService(notification.NewRepository(gormDB), rbacService)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		GroupID:        notificationConsumerGroup,
		GroupTopics:    events.Topics(),
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeStatusEvents(ctx, reader, notificationService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
