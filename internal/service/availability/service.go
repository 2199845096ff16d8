package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/shopspring/decimal"
)

// SeatCache memoizes the hot reads of a seat map. A nil SeatCache reads
// straight from the store.
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
}

type Service struct {
	store repository.Store
	cache SeatCache
}

func New(store repository.Store, cache SeatCache) *Service {
	return &Service{
		store: store,
		cache: cache,
	}
}

// GetSeatMap classifies every seat of the session's hall exactly once.
//
// Parameters:
//   - ctx: request-scoped context.
//   - sessionID: ID of the session.
//   - userID: ID of the requesting user, or 0 for an anonymous viewer. Seats
//     held by this user are reported as mine_active.
//
// Returns:
//   - []domain.SeatState: one entry per hall seat, ordered by row and number.
//   - error: domain.ErrNotFound if the session does not exist.
func (s *Service) GetSeatMap(ctx context.Context, sessionID, userID int64) ([]domain.SeatState, error) {
	const op = "service.availability.GetSeatMap"

	sess, err := s.store.Sessions().Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, domain.NotFoundf("session %d not found", sessionID))
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	seats, err := s.layout(ctx, sess.HallID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	active, err := s.occupancy(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return BuildSeatMap(seats, active, userID), nil
}

// GetTicketPrice returns the price of one seat of seatType for the session.
//
// Returns:
//   - decimal.Decimal: base price, times 1.5 for VIP seats.
//   - error: domain.ErrNotFound if the session does not exist.
func (s *Service) GetTicketPrice(ctx context.Context, sessionID int64, seatType domain.SeatType) (decimal.Decimal, error) {
	const op = "service.availability.GetTicketPrice"

	sess, err := s.store.Sessions().Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%s:%w", op, domain.NotFoundf("session %d not found", sessionID))
		}

		return decimal.Zero, fmt.Errorf("%s:%w", op, err)
	}

	return domain.TicketPrice(sess.BasePrice, seatType), nil
}

func (s *Service) layout(ctx context.Context, hallID int64) ([]domain.Seat, error) {
	load := func(ctx context.Context) ([]domain.Seat, error) {
		return s.store.Halls().Seats(ctx, hallID)
	}

	if s.cache == nil {
		return load(ctx)
	}

	return s.cache.Layout(ctx, hallID, load)
}

func (s *Service) occupancy(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	load := func(ctx context.Context) ([]domain.Booking, error) {
		return s.store.Bookings().ActiveBySession(ctx, sessionID)
	}

	if s.cache == nil {
		return load(ctx)
	}

	return s.cache.Occupancy(ctx, sessionID, load)
}

// BuildSeatMap joins a hall layout with the active bookings of a session.
// Bookings for seats missing from the layout are ignored, so the result is
// always a partition of seats.
func BuildSeatMap(seats []domain.Seat, active []domain.Booking, userID int64) []domain.SeatState {
	type pos struct{ row, number int }

	held := make(map[pos]domain.Booking, len(active))
	for _, b := range active {
		if b.Status.IsActive() {
			held[pos{b.Row, b.Seat}] = b
		}
	}

	out := make([]domain.SeatState, 0, len(seats))
	for _, seat := range seats {
		st := domain.SeatState{
			Row:    seat.Row,
			Number: seat.Number,
			Type:   seat.Type,
			Status: domain.SeatFree,
		}

		if b, ok := held[pos{seat.Row, seat.Number}]; ok {
			st.Status = domain.SeatOccupied
			if userID != 0 && b.UserID == userID {
				id := b.ID
				st.Status = domain.SeatMineActive
				st.BookingID = &id
			}
		}

		out = append(out, st)
	}

	return out
}
