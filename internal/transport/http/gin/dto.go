package httpgin

import (
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"error_kind,omitempty"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type PriceResponse struct {
	SessionID int64           `json:"session_id"`
	SeatType  domain.SeatType `json:"seat_type"`
	Price     decimal.Decimal `json:"price"`
}

type PlaceBookingRequest struct {
	SessionID int64 `json:"session_id" binding:"required,gt=0"`
	Row       int   `json:"row" binding:"required,gt=0"`
	Seat      int   `json:"seat" binding:"required,gt=0"`
}

type CancelBookingResponse struct {
	Cancelled bool `json:"cancelled"`
}

type FilmRequest struct {
	Title       string `json:"title" binding:"required"`
	Genre       string `json:"genre"`
	DurationMin int    `json:"duration_min" binding:"required,gt=0"`
	AgeRating   string `json:"age_rating"`
	Description string `json:"description"`
}

type HallRequest struct {
	Name        string `json:"name" binding:"required"`
	Rows        int    `json:"rows" binding:"required,gt=0"`
	SeatsPerRow int    `json:"seats_per_row" binding:"required,gt=0"`
	VIP         bool   `json:"vip"`
}

type SessionRequest struct {
	FilmID    int64           `json:"film_id" binding:"required,gt=0"`
	HallID    int64           `json:"hall_id" binding:"required,gt=0"`
	StartsAt  time.Time       `json:"starts_at" binding:"required"`
	EndsAt    *time.Time      `json:"ends_at"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

// storedResponse is what an Idempotency-Key replays.
type storedResponse struct {
	Status int                  `json:"status"`
	Body   domain.BookingResult `json:"body"`
}
