// Package rabbitmq carries booking events over RabbitMQ: one durable queue
// per event type on the default exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kirinyoku/cinego/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Config struct {
	URL            string
	ConfirmedQueue string
	CancelledQueue string
}

func (c Config) queueFor(t events.Type) (string, error) {
	switch t {
	case events.BookingConfirmed:
		return c.ConfirmedQueue, nil
	case events.BookingCancelled:
		return c.CancelledQueue, nil
	default:
		return "", fmt.Errorf("unknown event type %q", t)
	}
}

func (c Config) queues() []string {
	return []string{c.ConfirmedQueue, c.CancelledQueue}
}

func declare(ch *amqp.Channel, queues []string) error {
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", q, err)
		}
	}
	return nil
}

func publishing(e events.BookingEvent) (amqp.Publishing, error) {
	body, err := e.Marshal()
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.TicketNumber + ":" + string(e.Type),
		Type:         string(e.Type),
		Timestamp:    e.OccurredAt,
		Body:         body,
	}, nil
}

// Publisher keeps one connection and channel open and redials after the
// broker drops them.
type Publisher struct {
	cfg Config
	log *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg Config, log *slog.Logger) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"

	p := &Publisher{cfg: cfg, log: log}
	if err := p.connect(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return p, nil
}

// connect must be called with mu held or before the publisher is shared.
func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("channel open: %w", err)
	}

	if err := declare(ch, p.cfg.queues()); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) Publish(ctx context.Context, e events.BookingEvent) error {
	const op = "rabbitmq.Publisher.Publish"

	queue, err := p.cfg.queueFor(e.Type)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	msg, err := publishing(e)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		p.log.Warn("rabbitmq connection lost, redialing")
		p.closeLocked()
		if err := p.connect(); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
	}

	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (p *Publisher) closeLocked() error {
	var errs []error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
		p.conn = nil
	}
	return errors.Join(errs...)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closeLocked()
}
