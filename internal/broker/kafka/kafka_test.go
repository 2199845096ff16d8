package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/kirinyoku/cinego/internal/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func sampleEvent() events.BookingEvent {
	return events.BookingEvent{
		Type:         events.BookingConfirmed,
		BookingID:    12,
		UserID:       3,
		SessionID:    42,
		Row:          3,
		Seat:         5,
		Amount:       decimal.NewFromInt(3750),
		TicketNumber: "TK261016-ABCDEF0123",
		OccurredAt:   time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}
}

func TestMessage_KeyedByBooking(t *testing.T) {
	msg, err := message("cinema.bookings", sampleEvent())
	require.NoError(t, err)

	key, err := msg.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "12", string(key))
	assert.Equal(t, "cinema.bookings", msg.Topic)
	assert.Equal(t, []byte("booking.confirmed"), msg.Headers[0].Value)
}

func TestProducer_Publish(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		e, err := events.Unmarshal(val)
		if err != nil {
			return err
		}
		if e.BookingID != 12 {
			return errors.New("wrong booking")
		}
		return nil
	})

	p := newProducer(mp, "cinema.bookings", discard)

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.NoError(t, p.Close())
}

func TestProducer_PublishFailure(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newProducer(mp, "cinema.bookings", discard)

	err := p.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestGroupHandler_Process(t *testing.T) {
	var got []events.BookingEvent
	h := &groupHandler{
		handler: func(_ context.Context, e events.BookingEvent) error {
			got = append(got, e)
			return nil
		},
		log: discard,
	}

	body, err := sampleEvent().Marshal()
	require.NoError(t, err)

	h.process(context.Background(), &sarama.ConsumerMessage{Value: body})
	h.process(context.Background(), &sarama.ConsumerMessage{Value: []byte("{bad")})

	require.Len(t, got, 1)
	assert.Equal(t, "TK261016-ABCDEF0123", got[0].TicketNumber)
}
