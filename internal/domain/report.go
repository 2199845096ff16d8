package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report rows. Revenue always excludes cancelled bookings.

type SessionSales struct {
	SessionID int64           `json:"session_id"`
	FilmTitle string          `json:"film_title"`
	StartsAt  time.Time       `json:"starts_at"`
	HallName  string          `json:"hall_name"`
	Sold      int64           `json:"sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type SalesRow struct {
	Date      time.Time       `json:"date"`
	FilmTitle string          `json:"film_title"`
	HallName  string          `json:"hall_name"`
	Tickets   int64           `json:"tickets"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type FilmRevenue struct {
	FilmID   int64           `json:"film_id"`
	Title    string          `json:"title"`
	Genre    string          `json:"genre"`
	Tickets  int64           `json:"tickets"`
	Revenue  decimal.Decimal `json:"revenue"`
	Sessions int64           `json:"sessions"`
}

type HallOccupancy struct {
	HallID   int64           `json:"hall_id"`
	HallName string          `json:"hall_name"`
	Capacity int             `json:"capacity"`
	Sessions int64           `json:"sessions"`
	Sold     int64           `json:"sold"`
	Revenue  decimal.Decimal `json:"revenue"`
	// Percent of offered seats (sessions x capacity) that were sold.
	Percent float64 `json:"percent"`
}

type GenreStats struct {
	Genre    string          `json:"genre"`
	Films    int64           `json:"films"`
	Sessions int64           `json:"sessions"`
	Tickets  int64           `json:"tickets"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type UserActivity struct {
	UserID    int64           `json:"user_id"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Orders    int64           `json:"orders"`
	Active    int64           `json:"active"`
	Cancelled int64           `json:"cancelled"`
	Spent     decimal.Decimal `json:"spent"`
}

type CancelledBooking struct {
	BookingID   int64           `json:"booking_id"`
	CancelledAt time.Time       `json:"cancelled_at"`
	UserName    string          `json:"user_name"`
	FilmTitle   string          `json:"film_title"`
	SessionDate time.Time       `json:"session_date"`
	Refund      decimal.Decimal `json:"refund"`
}

type PeriodSummary struct {
	Sessions      int64           `json:"sessions"`
	TicketsSold   int64           `json:"tickets_sold"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cancellations int64           `json:"cancellations"`
	UniqueBuyers  int64           `json:"unique_buyers"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

type ScheduleRow struct {
	SessionID int64           `json:"session_id"`
	StartsAt  time.Time       `json:"starts_at"`
	EndsAt    time.Time       `json:"ends_at"`
	FilmTitle string          `json:"film_title"`
	HallName  string          `json:"hall_name"`
	Price     decimal.Decimal `json:"price"`
	FreeSeats int             `json:"free_seats"`
}

// BucketRevenue is one bucket of a weekday (0 = Sunday) or hour-of-day
// breakdown.
type BucketRevenue struct {
	Bucket  int             `json:"bucket"`
	Tickets int64           `json:"tickets"`
	Revenue decimal.Decimal `json:"revenue"`
}

// OccupancyPercent is sold seats over offered seats, rounded to one decimal.
func OccupancyPercent(sold, sessions int64, capacity int) float64 {
	offered := sessions * int64(capacity)
	if offered == 0 {
		return 0
	}
	pct := decimal.NewFromInt(sold * 100).Div(decimal.NewFromInt(offered)).Round(1)
	f, _ := pct.Float64()
	return f
}

func AverageTicket(revenue decimal.Decimal, tickets int64) decimal.Decimal {
	if tickets == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(tickets)).Round(2)
}
