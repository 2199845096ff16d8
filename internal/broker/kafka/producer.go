// Package kafka carries booking events over a single Kafka topic keyed by
// booking id.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/kirinyoku/cinego/internal/events"
)

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

func producerConfig() *sarama.Config {
	c := sarama.NewConfig()
	c.Producer.Return.Successes = true
	c.Producer.Return.Errors = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Retry.Max = 3
	c.Producer.Timeout = 10 * time.Second
	c.Producer.Idempotent = true
	c.Producer.Partitioner = sarama.NewHashPartitioner
	c.Net.MaxOpenRequests = 1
	return c
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *slog.Logger
}

func NewProducer(cfg Config, log *slog.Logger) (*Producer, error) {
	const op = "kafka.NewProducer"

	p, err := sarama.NewSyncProducer(cfg.Brokers, producerConfig())
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return newProducer(p, cfg.Topic, log), nil
}

func newProducer(p sarama.SyncProducer, topic string, log *slog.Logger) *Producer {
	return &Producer{producer: p, topic: topic, log: log}
}

func message(topic string, e events.BookingEvent) (*sarama.ProducerMessage, error) {
	body, err := e.Marshal()
	if err != nil {
		return nil, err
	}

	return &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(e.Key()),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(e.Type)},
			{Key: []byte("ticket_number"), Value: []byte(e.TicketNumber)},
		},
		Timestamp: e.OccurredAt,
	}, nil
}

// Publish blocks until every in-sync replica has the event. The sarama
// sync producer does not take a context.
func (p *Producer) Publish(_ context.Context, e events.BookingEvent) error {
	const op = "kafka.Producer.Publish"

	msg, err := message(p.topic, e)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	p.log.Debug("booking event published",
		"type", e.Type, "booking_id", e.BookingID, "partition", partition, "offset", offset)

	return nil
}

func (p *Producer) Close() error {
	const op = "kafka.Producer.Close"

	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
