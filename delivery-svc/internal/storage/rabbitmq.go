package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"food-delivery/delivery-svc/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

const NotificationsExchange = "order_notifications"

// AMQPChannel is the subset of *amqp.Channel used for publishing.
type AMQPChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitPublisher fans order notifications out to every bound queue.
type RabbitPublisher struct {
	Channel  AMQPChannel
	Exchange string
}

func NewRabbitPublisher(ch AMQPChannel) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &RabbitPublisher{Channel: ch, Exchange: NotificationsExchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.Channel.PublishWithContext(ctx, p.Exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Type:        event.Type,
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
