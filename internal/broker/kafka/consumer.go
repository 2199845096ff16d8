package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/kirinyoku/cinego/internal/events"
)

// Consumer reads the booking topic as part of a consumer group.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler events.Handler
	log     *slog.Logger
}

func NewConsumer(cfg Config, handler events.Handler, log *slog.Logger) (*Consumer, error) {
	const op = "kafka.NewConsumer"

	sc := sarama.NewConfig()
	sc.Consumer.Return.Errors = true
	sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	sc.Consumer.Offsets.AutoCommit.Enable = true
	sc.Consumer.Offsets.AutoCommit.Interval = time.Second

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, sc)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &Consumer{group: group, topic: cfg.Topic, handler: handler, log: log}, nil
}

// Run joins the group and consumes until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.log.Error("kafka consumer group error", "error", err)
		}
	}()

	h := &groupHandler{handler: c.handler, log: c.log}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.Warn("kafka consume failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type groupHandler struct {
	handler events.Handler
	log     *slog.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			h.process(session.Context(), msg)
			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// process never fails the claim. Bad messages are logged and skipped.
func (h *groupHandler) process(ctx context.Context, msg *sarama.ConsumerMessage) {
	e, err := events.Unmarshal(msg.Value)
	if err == nil {
		err = h.handler(ctx, e)
	}
	if err != nil {
		h.log.Error("booking event skipped",
			"partition", msg.Partition, "offset", msg.Offset, "error", err)
	}
}
