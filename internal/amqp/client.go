package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"reimburse/internal/core"
)

// Client publishes rendered forms to a durable queue behind a direct exchange.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// NewClient connects to the broker and makes sure the forms exchange and
// queue exist before anything is published.
func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Client{conn: conn, channel: ch, exchangeName: exchangeName, queueName: queueName}
	if err := c.declareFormsRoute(); err != nil {
		c.Close()
		return nil, fmt.Errorf("declare forms route: %w", err)
	}
	return c, nil
}

// declareFormsRoute binds the durable forms queue to a direct exchange,
// routed by queue name.
func (c *Client) declareFormsRoute() error {
	const (
		durable    = true
		autoDelete = false
		internal   = false
		exclusive  = false
		noWait     = false
	)
	if err := c.channel.ExchangeDeclare(c.exchangeName, amqp091.ExchangeDirect, durable, autoDelete, internal, noWait, nil); err != nil {
		return fmt.Errorf("exchange %s: %w", c.exchangeName, err)
	}
	if _, err := c.channel.QueueDeclare(c.queueName, durable, autoDelete, exclusive, noWait, nil); err != nil {
		return fmt.Errorf("queue %s: %w", c.queueName, err)
	}
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, noWait, nil); err != nil {
		return fmt.Errorf("bind %s to %s: %w", c.queueName, c.exchangeName, err)
	}
	return nil
}

// Deliver publishes a rendered form as a persistent JSON message.
func (c *Client) Deliver(ctx context.Context, f core.RenderedForm) error {
	msg := NewFormMessage(f)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(ctx, c.exchangeName, c.queueName, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.ID,
			Timestamp:    msg.Timestamp,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish form for %s: %w", f.Username, err)
	}

	slog.InfoContext(ctx, "Published reimbursement form",
		"id", msg.ID,
		"username", f.Username,
		"exchange", c.exchangeName,
		"queue", c.queueName)

	return nil
}

// Close releases the channel and the connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}