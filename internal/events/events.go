// Package events describes the booking lifecycle messages sent to the
// message broker after a transaction commits.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/shopspring/decimal"
)

type Type string

const (
	BookingConfirmed Type = "booking.confirmed"
	BookingCancelled Type = "booking.cancelled"
)

type BookingEvent struct {
	Type         Type            `json:"type"`
	BookingID    int64           `json:"booking_id"`
	UserID       int64           `json:"user_id"`
	SessionID    int64           `json:"session_id"`
	Row          int             `json:"row"`
	Seat         int             `json:"seat"`
	Amount       decimal.Decimal `json:"amount"`
	TicketNumber string          `json:"ticket_number"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

func NewBookingEvent(t Type, b domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:         t,
		BookingID:    b.ID,
		UserID:       b.UserID,
		SessionID:    b.SessionID,
		Row:          b.Row,
		Seat:         b.Seat,
		Amount:       b.Amount,
		TicketNumber: b.TicketNumber,
		OccurredAt:   at.UTC(),
	}
}

// Key keeps every event of one booking on the same partition.
func (e BookingEvent) Key() string {
	return strconv.FormatInt(e.BookingID, 10)
}

func (e BookingEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func Unmarshal(body []byte) (BookingEvent, error) {
	var e BookingEvent
	err := json.Unmarshal(body, &e)
	return e, err
}

// Publisher delivers events to a broker. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e BookingEvent) error
	Close() error
}

// Handler processes one consumed event. A returned error rejects the
// message.
type Handler func(ctx context.Context, e BookingEvent) error

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, BookingEvent) error { return nil }
func (Noop) Close() error                                { return nil }

// TicketLine renders the one-line record the ticket worker logs per event.
func TicketLine(e BookingEvent) string {
	return string(e.Type) +
		" | ticket=" + e.TicketNumber +
		" | booking_id=" + strconv.FormatInt(e.BookingID, 10) +
		" | user_id=" + strconv.FormatInt(e.UserID, 10) +
		" | session_id=" + strconv.FormatInt(e.SessionID, 10) +
		" | row=" + strconv.Itoa(e.Row) +
		" | seat=" + strconv.Itoa(e.Seat) +
		" | amount=" + e.Amount.StringFixed(2) +
		" | at=" + e.OccurredAt.Format(time.RFC3339)
}
