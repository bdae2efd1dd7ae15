package consumer

import (
	"context"
	"errors"

	"go-hrops/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// EventSink stores one status event. created is false when the event was
// already stored (redelivery).
type EventSink interface {
	CreateFromEvent(ctx context.Context, payload []byte) (created bool, err error)
}

// ConsumeStatusEvents turns leave and payroll status events into
// notifications until ctx is done.
func ConsumeStatusEvents(
	ctx context.Context,
	reader MessageReader,
	sink EventSink,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.status_events")
	log.Info("status event consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("status event consumer stopped")
				return
			}
			log.Error("fetch status event failed", zap.Error(err))
			continue
		}

		if !handleMessage(ctx, reader, sink, msg, log) {
			// Leave the offset uncommitted; the message is fetched again
			// after a rebalance or restart.
			continue
		}
	}
}

// handleMessage stores msg and commits it. It returns false when the
// message must be retried.
func handleMessage(ctx context.Context, reader MessageReader, sink EventSink, msg kafkago.Message, log *zap.Logger) bool {
	fields := []zap.Field{
		zap.String("topic", msg.Topic),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
		zap.String("event_id", header(msg, "event_id")),
		zap.String("request_id", header(msg, "request_id")),
	}

	created, err := sink.CreateFromEvent(ctx, msg.Value)
	if err != nil {
		// A malformed payload never succeeds; commit it instead of retrying forever.
		if errors.Is(err, events.ErrMalformedEvent) {
			log.Warn("dropping undecodable status event", append(fields, zap.Error(err))...)
		} else {
			log.Error("store notification failed", append(fields, zap.Error(err))...)
			return false
		}
	} else if !created {
		log.Debug("status event already stored, skipping", fields...)
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit status event failed", append(fields, zap.Error(err))...)
		return false
	}

	if created {
		log.Info("notification stored from status event", fields...)
	}
	return true
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
