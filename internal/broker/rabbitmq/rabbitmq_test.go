package rabbitmq

import (
	"testing"
	"time"

	"github.com/kirinyoku/cinego/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = Config{ConfirmedQueue: "booking.confirmed", CancelledQueue: "booking.cancelled"}

func TestQueueFor(t *testing.T) {
	q, err := cfg.queueFor(events.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "booking.confirmed", q)

	q, err = cfg.queueFor(events.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, "booking.cancelled", q)

	_, err = cfg.queueFor("booking.moved")
	assert.Error(t, err)
}

func TestPublishing(t *testing.T) {
	at := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	e := events.BookingEvent{
		Type:         events.BookingCancelled,
		BookingID:    7,
		TicketNumber: "TK261016-0011223344",
		Amount:       decimal.NewFromInt(2500),
		OccurredAt:   at,
	}

	msg, err := publishing(e)
	require.NoError(t, err)

	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "booking.cancelled", msg.Type)
	assert.Equal(t, at, msg.Timestamp)

	back, err := events.Unmarshal(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, int64(7), back.BookingID)
}

func TestNextBackoff(t *testing.T) {
	assert.Equal(t, 2*time.Second, nextBackoff(time.Second))
	assert.Equal(t, maxBackoff, nextBackoff(20*time.Second))
	assert.Equal(t, maxBackoff, nextBackoff(maxBackoff))
}
