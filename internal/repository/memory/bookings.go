package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
)

type BookingRepo struct {
	s  *Store
	tx *txn
}

func (r *BookingRepo) Insert(_ context.Context, b *domain.Booking) (int64, error) {
	const op = "memory.BookingRepo.Insert"

	var id int64
	err := r.s.exec(r.tx, func(st *state, tx *txn) error {
		if _, ok := st.sessions[b.SessionID]; !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		if _, ok := st.users[b.UserID]; !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		for _, other := range st.bookings {
			if other.TicketNumber == b.TicketNumber {
				return fmt.Errorf("%s:%w", op, repository.ErrDuplicateTicket)
			}
			if other.Status.IsActive() &&
				other.SessionID == b.SessionID && other.Row == b.Row && other.Seat == b.Seat {
				return fmt.Errorf("%s:%w", op, repository.ErrConflict)
			}
		}

		st.lastBooking++
		id = st.lastBooking

		stored := *b
		stored.ID = id
		stored.Status = domain.BookingActive
		stored.CancelledAt = nil
		st.bookings[id] = stored
		tx.onRollback(func() { delete(st.bookings, id) })

		return nil
	})

	return id, err
}

func (r *BookingRepo) Get(_ context.Context, id int64) (*domain.Booking, error) {
	const op = "memory.BookingRepo.Get"

	var out domain.Booking
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		b, ok := st.bookings[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *BookingRepo) Cancel(_ context.Context, id int64, at time.Time) (bool, error) {
	var done bool
	err := r.s.exec(r.tx, func(st *state, tx *txn) error {
		prev, ok := st.bookings[id]
		if !ok || !prev.Status.IsActive() {
			return nil
		}

		cancelled := prev
		cancelled.Status = domain.BookingCancelled
		cancelled.CancelledAt = &at
		st.bookings[id] = cancelled
		tx.onRollback(func() { st.bookings[id] = prev })

		done = true
		return nil
	})

	return done, err
}

func (r *BookingRepo) ActiveBySession(_ context.Context, sessionID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, b := range st.bookings {
			if b.SessionID == sessionID && b.Status.IsActive() {
				out = append(out, b)
			}
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Seat < out[j].Seat
	})

	return out, err
}

func (r *BookingRepo) ActiveBySeat(_ context.Context, sessionID int64, row, seat int) (*domain.Booking, error) {
	const op = "memory.BookingRepo.ActiveBySeat"

	var out *domain.Booking
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, b := range st.bookings {
			if b.SessionID == sessionID && b.Row == row && b.Seat == seat && b.Status.IsActive() {
				found := b
				out = &found
				return nil
			}
		}
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	})

	return out, err
}

func (r *BookingRepo) CountBySession(_ context.Context, sessionID int64) (int64, error) {
	var n int64
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, b := range st.bookings {
			if b.SessionID == sessionID {
				n++
			}
		}
		return nil
	})

	return n, err
}

func (r *BookingRepo) ListByUser(_ context.Context, userID int64) ([]domain.BookingDetail, error) {
	var out []domain.BookingDetail
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, b := range st.bookings {
			if b.UserID != userID {
				continue
			}

			sess := st.sessions[b.SessionID]
			out = append(out, domain.BookingDetail{
				ID:           b.ID,
				TicketNumber: b.TicketNumber,
				SessionID:    b.SessionID,
				FilmTitle:    st.films[sess.FilmID].Title,
				StartsAt:     sess.StartsAt,
				HallName:     st.halls[sess.HallID].Name,
				Row:          b.Row,
				Seat:         b.Seat,
				Amount:       b.Amount,
				Status:       b.Status,
				CreatedAt:    b.CreatedAt,
			})
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.After(out[j].StartsAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, err
}

func (r *BookingRepo) TicketInfo(_ context.Context, bookingID int64) (*domain.TicketInfo, error) {
	const op = "memory.BookingRepo.TicketInfo"

	var out domain.TicketInfo
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		b, ok := st.bookings[bookingID]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		sess := st.sessions[b.SessionID]
		film := st.films[sess.FilmID]

		seatType := domain.SeatRegular
		for _, seat := range st.seats[sess.HallID] {
			if seat.Row == b.Row && seat.Number == b.Seat {
				seatType = seat.Type
				break
			}
		}

		out = domain.TicketInfo{
			BookingID:    b.ID,
			UserID:       b.UserID,
			TicketNumber: b.TicketNumber,
			FilmTitle:    film.Title,
			Genre:        film.Genre,
			DurationMin:  film.DurationMin,
			AgeRating:    film.AgeRating,
			StartsAt:     sess.StartsAt,
			EndsAt:       sess.EndsAt,
			HallName:     st.halls[sess.HallID].Name,
			Row:          b.Row,
			Seat:         b.Seat,
			SeatType:     seatType,
			Amount:       b.Amount,
			Status:       b.Status,
			BookedAt:     b.CreatedAt,
			BuyerName:    st.users[b.UserID].FullName,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
