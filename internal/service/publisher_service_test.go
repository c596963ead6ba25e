package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"study-companion-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
)

func TestPublisherDeliversActivityEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "TEST_ACTIVITY")
	assert.NoError(t, err)

	svc := NewPublisherService("TEST_ACTIVITY", pubSub)

	sent := events.BaseEvent{
		Type:       events.TypeSessionCreated,
		Data:       map[string]interface{}{"session_id": "abc"},
		OccurredAt: time.Now(),
	}
	assert.NoError(t, svc.Publish(ctx, sent))

	select {
	case msg := <-messages:
		var got events.BaseEvent
		assert.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, events.TypeSessionCreated, got.Type)
		assert.Equal(t, "abc", got.Data["session_id"])
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

type recordingLogger struct {
	nopLogger
	entries chan string
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.entries <- message
}

func TestConsumerRecordsActivity(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec := &recordingLogger{entries: make(chan string, 1)}
	consumer := NewConsumerService("TEST_ACTIVITY", pubSub, rec)
	go func() {
		_ = consumer.Consume(ctx)
	}()

	publisher := NewPublisherService("TEST_ACTIVITY", pubSub)

	// The consumer subscribes asynchronously; retry until it observes one.
	deadline := time.After(4 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case got := <-rec.entries:
			assert.Equal(t, events.TypeFileIngested, got)
			return
		case <-tick.C:
			_ = publisher.Publish(ctx, events.BaseEvent{
				Type:       events.TypeFileIngested,
				OccurredAt: time.Now(),
			})
		case <-deadline:
			t.Fatal("consumer never recorded the event")
		}
	}
}
