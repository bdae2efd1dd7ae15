package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-hrops/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	committed []kafkago.Message
	commitErr error
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	if r.commitErr != nil {
		return r.commitErr
	}
	r.committed = append(r.committed, msgs...)
	return nil
}

type fakeSink struct {
	created bool
	err     error
	calls   int
}

func (s *fakeSink) CreateFromEvent(context.Context, []byte) (bool, error) {
	s.calls++
	return s.created, s.err
}

func message() kafkago.Message {
	return kafkago.Message{
		Topic:   events.LeaveStatusChangedTopic,
		Value:   []byte(`{"event_id":"e1","event_type":"leave.status_changed","user_id":5}`),
		Headers: []kafkago.Header{{Key: "event_id", Value: []byte("e1")}},
	}
}

func TestHandleMessage(t *testing.T) {
	tests := []struct {
		name       string
		sink       *fakeSink
		commitErr  error
		wantOK     bool
		wantCommit bool
	}{
		{"stored", &fakeSink{created: true}, nil, true, true},
		{"duplicate is committed", &fakeSink{created: false}, nil, true, true},
		{"malformed is committed", &fakeSink{err: fmt.Errorf("%w: bad json", events.ErrMalformedEvent)}, nil, true, true},
		{"store failure is retried", &fakeSink{err: errors.New("db down")}, nil, false, false},
		{"commit failure", &fakeSink{created: true}, errors.New("rebalance"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeReader{commitErr: tt.commitErr}

			ok := handleMessage(context.Background(), reader, tt.sink, message(), zap.NewNop())

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, 1, tt.sink.calls)
			if tt.wantCommit {
				assert.Len(t, reader.committed, 1)
			} else {
				assert.Empty(t, reader.committed)
			}
		})
	}
}

func TestConsumeStatusEvents_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &fakeSink{}
	ConsumeStatusEvents(ctx, &fakeReader{}, sink, zap.NewNop())

	assert.Zero(t, sink.calls)
}
