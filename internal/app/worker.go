package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirinyoku/cinego/internal/broker/kafka"
	"github.com/kirinyoku/cinego/internal/broker/rabbitmq"
	"github.com/kirinyoku/cinego/internal/config"
	"github.com/kirinyoku/cinego/internal/events"
	"golang.org/x/sync/errgroup"
)

// TicketLogger is the ticket worker's handler: one log record per event.
func TicketLogger(logger *slog.Logger) events.Handler {
	return func(_ context.Context, e events.BookingEvent) error {
		switch e.Type {
		case events.BookingConfirmed, events.BookingCancelled:
		default:
			return fmt.Errorf("unknown event type %q", e.Type)
		}
		logger.Info("ticket", "record", events.TicketLine(e))
		return nil
	}
}

// RunWorker consumes booking events from the configured broker until a
// signal arrives.
func RunWorker(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	handler := TicketLogger(logger)
	g, gCtx := errgroup.WithContext(ctx)

	switch cfg.Broker.Kind {
	case config.BrokerRabbitMQ:
		c := rabbitmq.NewConsumer(RabbitConfig(cfg.Broker), handler, logger)
		g.Go(func() error { return c.Run(gCtx) })
	case config.BrokerKafka:
		c, err := kafka.NewConsumer(KafkaConfig(cfg.Broker), handler, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize kafka consumer: %w", err)
		}
		g.Go(func() error { return c.Run(gCtx) })
		g.Go(func() error {
			<-gCtx.Done()
			return c.Close()
		})
	default:
		return fmt.Errorf("ticket worker needs BROKER=rabbitmq or kafka, got %q", cfg.Broker.Kind)
	}

	logger.Info("ticket worker started", "broker", cfg.Broker.Kind)

	return g.Wait()
}
