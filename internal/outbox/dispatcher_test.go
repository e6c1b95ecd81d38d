package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type stubWriter struct {
	written map[string][]kafka.Message
	err     error
}

func (s *stubWriter) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	if s.err != nil {
		return s.err
	}
	if s.written == nil {
		s.written = make(map[string][]kafka.Message)
	}
	s.written[topic] = append(s.written[topic], msgs...)
	return nil
}

func TestDeliverGroupsByTopic(t *testing.T) {
	writer := &stubWriter{}
	d := &Dispatcher{producer: writer}

	messages := []Message{
		{EventID: 1, AggregateType: "user", AggregateID: "u1", EventType: "user.registered", Topic: "user_events", PartitionKey: "u1", Payload: json.RawMessage(`{"user_id":"u1"}`)},
		{EventID: 2, AggregateType: "exercise", AggregateID: "e1", EventType: "exercise.logged", Topic: "exercise_events", PartitionKey: "u1", Payload: json.RawMessage(`{"exercise_id":"e1"}`)},
		{EventID: 3, AggregateType: "exercise", AggregateID: "e2", EventType: "exercise.logged", Topic: "exercise_events", PartitionKey: "u1", Payload: json.RawMessage(`{"exercise_id":"e2"}`)},
	}

	require.NoError(t, d.deliver(context.Background(), messages))

	require.Len(t, writer.written["user_events"], 1)
	require.Len(t, writer.written["exercise_events"], 2)

	first := writer.written["user_events"][0]
	require.Equal(t, []byte("u1"), first.Key)
	require.JSONEq(t, `{"user_id":"u1"}`, string(first.Value))

	var eventType string
	for _, h := range first.Headers {
		if h.Key == "event_type" {
			eventType = string(h.Value)
		}
	}
	require.Equal(t, "user.registered", eventType)
}

func TestDeliverPropagatesWriterFailure(t *testing.T) {
	boom := errors.New("broker unavailable")
	d := &Dispatcher{producer: &stubWriter{err: boom}}

	err := d.deliver(context.Background(), []Message{
		{EventID: 1, Topic: "user_events", PartitionKey: "u1", Payload: json.RawMessage(`{}`)},
	})
	require.ErrorIs(t, err, boom)
}
