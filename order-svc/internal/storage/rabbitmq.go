package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chatchat-order/order-svc/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrdersExchange     = "orders"
	OrdersExchangeType = "topic"
)

type RabbitPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialRabbit connects and declares the durable orders topic exchange.
func DialRabbit(url string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		OrdersExchange,     // name
		OrdersExchangeType, // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("could not declare exchange: %w", err)
	}
	return &RabbitPublisher{conn: conn, ch: ch}, nil
}

// RoutingKey is order.<event type>, e.g. order.order_created.
func RoutingKey(event domain.OrderEvent) string {
	return "order." + event.Type
}

func (p *RabbitPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}
	return p.ch.PublishWithContext(ctx,
		OrdersExchange,
		RoutingKey(event),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			ContentType:  "application/json",
			MessageId:    event.OrderID,
			Body:         body,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
