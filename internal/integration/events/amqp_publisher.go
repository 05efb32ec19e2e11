package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// DefaultExchange is the topic exchange events are published to.
const DefaultExchange = "coach.events"

// AMQPPublisher publishes events to a durable topic exchange. The routing key
// is the event kind, so consumers bind to goal_achieved or level_up.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	timeout  time.Duration
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchange string, timeout time.Duration) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AMQPPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		timeout:  timeout,
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return p, nil
}

// Publish sends the event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event entity.Event) error {
	msg := NewMessage(event)
	body, err := msg.ToJSON()
	if err != nil {
		return err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		msg.Kind,   // routing key
		false,      // mandatory
		false,      // immediate
		publishing(msg, body),
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.InfoContext(ctx, "Published event",
		"kind", msg.Kind,
		"eventId", msg.ID,
		"exchange", p.exchange)

	return nil
}

func publishing(msg Message, body []byte) amqp091.Publishing {
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    msg.ID,
		Type:         msg.Kind,
		Timestamp:    msg.OccurredAt,
		Body:         body,
	}
}

// Healthy reports whether the broker connection is open.
func (p *AMQPPublisher) Healthy() bool {
	return p.conn != nil && !p.conn.IsClosed()
}

// Close releases the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
