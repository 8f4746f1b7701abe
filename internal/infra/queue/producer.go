package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQProducer publishes reminder audit events. When the broker refuses a message
// it hands the event to Fallback so the audit trail is not lost.
type RabbitMQProducer struct {
	Ch       channelPublisher
	Fallback usecase.EventPublisher
}

func NewProducer(ch *amqp.Channel, fallback usecase.EventPublisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch, Fallback: fallback}
}

func (p *RabbitMQProducer) PublishReminderEvent(ctx context.Context, ev entity.ReminderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		ev.Type, // routing key, e.g. reminder.notified
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    ev.ID,
			Timestamp:    ev.OccurredAt,
			Type:         ev.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err == nil {
		return nil
	}

	if p.Fallback != nil {
		log.Printf("[queue] publish of %s failed, writing directly: %v", ev.Type, err)
		return p.Fallback.PublishReminderEvent(ctx, ev)
	}
	return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
}
