package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirinyoku/cinego/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	prefetch   = 50
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// Consumer reads both booking queues with manual acknowledgement.
type Consumer struct {
	cfg     Config
	log     *slog.Logger
	handler events.Handler
}

func NewConsumer(cfg Config, handler events.Handler, log *slog.Logger) *Consumer {
	return &Consumer{cfg: cfg, log: log, handler: handler}
}

// Run consumes until ctx is done, redialing with exponential backoff
// whenever the connection fails.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		conn, err := amqp.Dial(c.cfg.URL)
		if err == nil {
			backoff = minBackoff
			err = c.consume(ctx, conn)
			_ = conn.Close()
		}

		if ctx.Err() != nil {
			return nil
		}

		c.log.Warn("rabbitmq consumer stopped, reconnecting", "error", err, "backoff", backoff)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	return min(d*2, maxBackoff)
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	if err := declare(ch, c.cfg.queues()); err != nil {
		return err
	}

	merged := make(chan amqp.Delivery)
	for _, q := range c.cfg.queues() {
		msgs, err := ch.ConsumeWithContext(ctx, q, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", q, err)
		}
		go func() {
			for d := range msgs {
				select {
				case merged <- d:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))

	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr := <-closed:
			if amqpErr == nil {
				return errors.New("channel closed")
			}
			return amqpErr
		case d := <-merged:
			c.deliver(ctx, d)
		}
	}
}

// deliver acks handled messages. Undecodable or failing ones are dropped
// without requeue so a poison message cannot spin the worker.
func (c *Consumer) deliver(ctx context.Context, d amqp.Delivery) {
	e, err := events.Unmarshal(d.Body)
	if err == nil {
		err = c.handler(ctx, e)
	}

	if err != nil {
		c.log.Error("booking event rejected", "queue", d.RoutingKey, "error", err)
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}
