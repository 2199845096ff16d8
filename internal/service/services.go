package service

import (
	"context"
	"log/slog"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/events"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/kirinyoku/cinego/internal/service/admin"
	"github.com/kirinyoku/cinego/internal/service/auth"
	"github.com/kirinyoku/cinego/internal/service/availability"
	"github.com/kirinyoku/cinego/internal/service/booking"
	"github.com/kirinyoku/cinego/internal/service/query"
	"github.com/kirinyoku/cinego/internal/service/reports"
)

// SeatCache is the read-through cache of hall layouts and seat occupancy.
type SeatCache interface {
	Occupancy(
		ctx context.Context,
		sessionID int64,
		load func(ctx context.Context) ([]domain.Booking, error),
	) ([]domain.Booking, error)
	Layout(
		ctx context.Context,
		hallID int64,
		load func(ctx context.Context) ([]domain.Seat, error),
	) ([]domain.Seat, error)
	InvalidateSession(ctx context.Context, sessionID int64) error
	InvalidateHall(ctx context.Context, hallID int64) error
}

type Notifier interface {
	PublishSessionChanged(ctx context.Context, sessionID int64) error
}

type Services struct {
	Availability *availability.Service
	Booking      *booking.Service
	Admin        *admin.Service
	Query        *query.Service
	Reports      *reports.Service
	Auth         *auth.Service
}

type Config struct {
	Booking booking.Config
	Query   query.Config
	Auth    auth.Config
}

// Deps are the optional collaborators. Leave a field nil to run without it.
type Deps struct {
	Cache     SeatCache
	Notifier  Notifier
	Publisher events.Publisher
}

func NewServices(store repository.Store, deps Deps, log *slog.Logger, cfg Config) *Services {
	var (
		seatCache    availability.SeatCache
		bookingCache booking.SeatCache
		adminCache   admin.Cache
	)
	if deps.Cache != nil {
		seatCache, bookingCache, adminCache = deps.Cache, deps.Cache, deps.Cache
	}

	var bookingNotifier booking.Notifier
	var adminNotifier admin.Notifier
	if deps.Notifier != nil {
		bookingNotifier, adminNotifier = deps.Notifier, deps.Notifier
	}

	return &Services{
		Availability: availability.New(store, seatCache),
		Booking:      booking.New(store, bookingCache, bookingNotifier, deps.Publisher, log, cfg.Booking),
		Admin:        admin.New(store, adminCache, adminNotifier, log),
		Query:        query.New(store, cfg.Query),
		Reports:      reports.New(store),
		Auth:         auth.New(store, cfg.Auth),
	}
}
