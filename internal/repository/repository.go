package repository

import (
	"context"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/shopspring/decimal"
)

type FilmRepo interface {
	Create(ctx context.Context, f *domain.Film) (int64, error)
	Update(ctx context.Context, f *domain.Film) error
	// Delete removes the film together with its sessions.
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Film, error)
	List(ctx context.Context) ([]domain.Film, error)
	// Repertoire lists films that have at least one session on or after from.
	Repertoire(ctx context.Context, from time.Time) ([]domain.Film, error)
	CountBookings(ctx context.Context, filmID int64) (int64, error)
}

type HallRepo interface {
	// NextID returns max(id)+1 and keeps competing creators out until the
	// surrounding transaction ends.
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, h *domain.Hall) error
	CreateSeats(ctx context.Context, seats []domain.Seat) error
	Get(ctx context.Context, id int64) (*domain.Hall, error)
	List(ctx context.Context) ([]domain.Hall, error)
	Delete(ctx context.Context, id int64) error
	Seats(ctx context.Context, hallID int64) ([]domain.Seat, error)
	Seat(ctx context.Context, hallID int64, row, number int) (*domain.Seat, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) (int64, error)
	Update(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Session, error)
	ListByFilm(ctx context.Context, filmID int64, from time.Time) ([]domain.SessionSummary, error)
	// Overlapping returns sessions in the hall whose [start,end) intersects
	// the given interval, skipping excludeID.
	Overlapping(ctx context.Context, hallID int64, start, end time.Time, excludeID int64) ([]domain.Session, error)
	CountByHall(ctx context.Context, hallID int64) (int64, error)
}

type BookingRepo interface {
	// Insert stores an active booking. It returns ErrConflict when the seat
	// already holds an active booking.
	Insert(ctx context.Context, b *domain.Booking) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Booking, error)
	// Cancel flips an active booking to cancelled and reports whether it did.
	Cancel(ctx context.Context, id int64, at time.Time) (bool, error)
	ActiveBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error)
	ActiveBySeat(ctx context.Context, sessionID int64, row, seat int) (*domain.Booking, error)
	CountBySession(ctx context.Context, sessionID int64) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error)
	TicketInfo(ctx context.Context, bookingID int64) (*domain.TicketInfo, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	// Debit subtracts amount only when the balance covers it, otherwise it
	// returns ErrInsufficientFunds and leaves the row untouched.
	Debit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	Credit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
}

type ReportRepo interface {
	DailySales(ctx context.Context, day time.Time) ([]domain.SessionSales, error)
	Sales(ctx context.Context, p domain.Period) ([]domain.SalesRow, error)
	TopFilms(ctx context.Context, p domain.Period, limit int) ([]domain.FilmRevenue, error)
	HallOccupancy(ctx context.Context, p domain.Period) ([]domain.HallOccupancy, error)
	GenreStats(ctx context.Context, p domain.Period) ([]domain.GenreStats, error)
	UserActivity(ctx context.Context, p domain.Period, limit int) ([]domain.UserActivity, error)
	Cancelled(ctx context.Context, p domain.Period) ([]domain.CancelledBooking, error)
	Summary(ctx context.Context, p domain.Period) (*domain.PeriodSummary, error)
	Schedule(ctx context.Context, day time.Time) ([]domain.ScheduleRow, error)
	ByWeekday(ctx context.Context, p domain.Period) ([]domain.BucketRevenue, error)
	ByHour(ctx context.Context, p domain.Period) ([]domain.BucketRevenue, error)
}

// Repos is the set of repositories that take part in one unit of work.
type Repos interface {
	Films() FilmRepo
	Halls() HallRepo
	Sessions() SessionRepo
	Bookings() BookingRepo
	Users() UserRepo
}

type TxOptions struct {
	ReadOnly bool
	// Serializable raises isolation above the default read committed.
	Serializable bool
}

// Store is a storage backend. Repos bound to the store itself run each call
// on its own; RunTx binds them to one transaction.
type Store interface {
	Repos
	Reports() ReportRepo
	RunTx(ctx context.Context, opts TxOptions, fn func(ctx context.Context, tx Repos) error) error
	Close()
}
