package service

import (
	"context"
	"encoding/json"

	"study-companion-be/internal/pkg/logger"
	"study-companion-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IConsumerService drains activity events off the in-process bus and records
// them through the structured logger. Runs for the lifetime of the process.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	topic      string
	subscriber message.Subscriber
	logger     logger.ILogger
}

func NewConsumerService(topic string, subscriber message.Subscriber, log logger.ILogger) IConsumerService {
	return &consumerService{
		topic:      topic,
		subscriber: subscriber,
		logger:     log,
	}
}

func (s *consumerService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		var event events.BaseEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			s.logger.Warn("activity", "discarding malformed activity event", map[string]interface{}{
				"error": err.Error(),
			})
			msg.Ack()
			continue
		}

		details := event.Data
		if details == nil {
			details = make(map[string]interface{})
		}
		details["occurred_at"] = event.OccurredAt
		s.logger.Info("activity", event.Type, details)

		msg.Ack()
	}

	return nil
}
