package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SeatType string

const (
	SeatRegular SeatType = "regular"
	SeatVIP     SeatType = "vip"
)

type SeatStatus string

const (
	SeatFree       SeatStatus = "free"
	SeatOccupied   SeatStatus = "occupied"
	SeatMineActive SeatStatus = "mine_active"
)

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type Film struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	DurationMin int    `json:"duration_min"`
	AgeRating   string `json:"age_rating"`
	Description string `json:"description"`
}

type Hall struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
	VIP         bool   `json:"vip"`
	Capacity    int    `json:"capacity"`
}

type Seat struct {
	HallID int64    `json:"hall_id"`
	Row    int      `json:"row"`
	Number int      `json:"number"`
	Type   SeatType `json:"type"`
}

type HallWithSeats struct {
	Hall
	Seats []Seat `json:"seats"`
}

// Session is a single screening of a film in a hall. The screening occupies
// the half-open interval [StartsAt, EndsAt).
type Session struct {
	ID        int64           `json:"id"`
	FilmID    int64           `json:"film_id"`
	HallID    int64           `json:"hall_id"`
	StartsAt  time.Time       `json:"starts_at"`
	EndsAt    time.Time       `json:"ends_at"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// Date returns the calendar day the session starts on.
func (s Session) Date() time.Time {
	return DayOf(s.StartsAt)
}

type SessionSummary struct {
	Session
	FilmTitle string `json:"film_title"`
	HallName  string `json:"hall_name"`
	Capacity  int    `json:"capacity"`
	FreeSeats int    `json:"free_seats"`
}

type Booking struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	SessionID    int64           `json:"session_id"`
	Row          int             `json:"row"`
	Seat         int             `json:"seat"`
	Status       BookingStatus   `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	TicketNumber string          `json:"ticket_number"`
	CreatedAt    time.Time       `json:"created_at"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
}

type User struct {
	ID           int64           `json:"id"`
	Login        string          `json:"login"`
	PasswordHash string          `json:"-"`
	Role         Role            `json:"role"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SeatState is one entry of a session seat map. BookingID is only set for
// seats held by the requesting user.
type SeatState struct {
	Row       int        `json:"row"`
	Number    int        `json:"number"`
	Type      SeatType   `json:"type"`
	Status    SeatStatus `json:"status"`
	BookingID *int64     `json:"booking_id,omitempty"`
}

type BookingResult struct {
	Success      bool            `json:"success"`
	BookingID    int64           `json:"booking_id,omitempty"`
	TicketNumber string          `json:"ticket_number,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	ErrorKind    ErrorKind       `json:"error_kind,omitempty"`
	ErrorMessage string          `json:"error,omitempty"`
}

type BookingDetail struct {
	ID           int64           `json:"id"`
	TicketNumber string          `json:"ticket_number"`
	SessionID    int64           `json:"session_id"`
	FilmTitle    string          `json:"film_title"`
	StartsAt     time.Time       `json:"starts_at"`
	HallName     string          `json:"hall_name"`
	Row          int             `json:"row"`
	Seat         int             `json:"seat"`
	Amount       decimal.Decimal `json:"amount"`
	Status       BookingStatus   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TicketInfo carries everything a ticket renderer needs for one booking.
type TicketInfo struct {
	BookingID    int64           `json:"booking_id"`
	UserID       int64           `json:"user_id"`
	TicketNumber string          `json:"ticket_number"`
	FilmTitle    string          `json:"film_title"`
	Genre        string          `json:"genre"`
	DurationMin  int             `json:"duration_min"`
	AgeRating    string          `json:"age_rating"`
	StartsAt     time.Time       `json:"starts_at"`
	EndsAt       time.Time       `json:"ends_at"`
	HallName     string          `json:"hall_name"`
	Row          int             `json:"row"`
	Seat         int             `json:"seat"`
	SeatType     SeatType        `json:"seat_type"`
	Amount       decimal.Decimal `json:"amount"`
	Status       BookingStatus   `json:"status"`
	BookedAt     time.Time       `json:"booked_at"`
	BuyerName    string          `json:"buyer_name"`
}
