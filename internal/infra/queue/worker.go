package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

// Worker drains the reminder event queue into the audit table.
type Worker struct {
	Channel *amqp.Channel
	Events  entity.ReminderEventRepositoryInterface
}

func NewWorker(ch *amqp.Channel, events entity.ReminderEventRepositoryInterface) *Worker {
	return &Worker{Channel: ch, Events: events}
}

// Start consumes until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("[queue] worker consuming '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("[queue] worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("consumer channel for '%s' closed", queueName)
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var ev entity.ReminderEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil || ev.EmployeeID == "" || ev.Type == "" {
		log.Printf("[queue] malformed event dropped to DLQ: %v", err)
		d.Nack(false, false)
		return
	}

	if err := w.Events.Create(ctx, &ev); err != nil {
		log.Printf("[queue] failed to store event %s: %v", ev.ID, err)
		// one redelivery, then the DLX takes it
		d.Nack(false, !d.Redelivered)
		return
	}

	d.Ack(false)
}
