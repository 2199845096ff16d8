package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
)

type FilmRepo struct {
	s  *Store
	tx *txn
}

func (r *FilmRepo) Create(_ context.Context, f *domain.Film) (int64, error) {
	var id int64
	err := r.s.exec(r.tx, func(st *state, tx *txn) error {
		st.lastFilm++
		id = st.lastFilm

		film := *f
		film.ID = id
		st.films[id] = film
		tx.onRollback(func() { delete(st.films, id) })

		return nil
	})

	return id, err
}

func (r *FilmRepo) Update(_ context.Context, f *domain.Film) error {
	const op = "memory.FilmRepo.Update"

	return r.s.exec(r.tx, func(st *state, tx *txn) error {
		prev, ok := st.films[f.ID]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		st.films[f.ID] = *f
		tx.onRollback(func() { st.films[f.ID] = prev })

		return nil
	})
}

func (r *FilmRepo) Delete(_ context.Context, id int64) error {
	const op = "memory.FilmRepo.Delete"

	return r.s.exec(r.tx, func(st *state, tx *txn) error {
		prev, ok := st.films[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		for _, b := range st.bookings {
			if st.sessions[b.SessionID].FilmID == id {
				return fmt.Errorf("%s:%w", op, repository.ErrInUse)
			}
		}

		for sid, sess := range st.sessions {
			if sess.FilmID != id {
				continue
			}
			delete(st.sessions, sid)
			tx.onRollback(func() { st.sessions[sid] = sess })
		}

		delete(st.films, id)
		tx.onRollback(func() { st.films[id] = prev })

		return nil
	})
}

func (r *FilmRepo) Get(_ context.Context, id int64) (*domain.Film, error) {
	const op = "memory.FilmRepo.Get"

	var out domain.Film
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		f, ok := st.films[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *FilmRepo) List(_ context.Context) ([]domain.Film, error) {
	var out []domain.Film
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, f := range st.films {
			out = append(out, f)
		}
		return nil
	})

	sortFilms(out)

	return out, err
}

func (r *FilmRepo) Repertoire(_ context.Context, from time.Time) ([]domain.Film, error) {
	var out []domain.Film
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		showing := make(map[int64]bool)
		for _, sess := range st.sessions {
			if !sess.StartsAt.Before(from) {
				showing[sess.FilmID] = true
			}
		}
		for id := range showing {
			out = append(out, st.films[id])
		}
		return nil
	})

	sortFilms(out)

	return out, err
}

func (r *FilmRepo) CountBookings(_ context.Context, filmID int64) (int64, error) {
	var n int64
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, b := range st.bookings {
			if st.sessions[b.SessionID].FilmID == filmID {
				n++
			}
		}
		return nil
	})

	return n, err
}

func sortFilms(films []domain.Film) {
	sort.Slice(films, func(i, j int) bool {
		if films[i].Title != films[j].Title {
			return films[i].Title < films[j].Title
		}
		return films[i].ID < films[j].ID
	})
}

type HallRepo struct {
	s  *Store
	tx *txn
}

// NextID needs no extra locking here: the store lock already excludes other
// writers for the whole transaction.
func (r *HallRepo) NextID(_ context.Context) (int64, error) {
	var id int64
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for hid := range st.halls {
			id = max(id, hid)
		}
		id++
		return nil
	})

	return id, err
}

func (r *HallRepo) Create(_ context.Context, h *domain.Hall) error {
	const op = "memory.HallRepo.Create"

	return r.s.exec(r.tx, func(st *state, tx *txn) error {
		if _, ok := st.halls[h.ID]; ok {
			return fmt.Errorf("%s:%w", op, repository.ErrConflict)
		}

		st.halls[h.ID] = *h
		tx.onRollback(func() { delete(st.halls, h.ID) })

		return nil
	})
}

func (r *HallRepo) CreateSeats(_ context.Context, seats []domain.Seat) error {
	const op = "memory.HallRepo.CreateSeats"

	return r.s.exec(r.tx, func(st *state, tx *txn) error {
		byHall := make(map[int64][]domain.Seat)
		for _, seat := range seats {
			if _, ok := st.halls[seat.HallID]; !ok {
				return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
			}
			byHall[seat.HallID] = append(byHall[seat.HallID], seat)
		}

		for hallID, add := range byHall {
			prev := st.seats[hallID]
			merged := append(append([]domain.Seat(nil), prev...), add...)
			st.seats[hallID] = merged
			tx.onRollback(func() { st.seats[hallID] = prev })
		}

		return nil
	})
}

func (r *HallRepo) Get(_ context.Context, id int64) (*domain.Hall, error) {
	const op = "memory.HallRepo.Get"

	var out domain.Hall
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		h, ok := st.halls[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		out = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *HallRepo) List(_ context.Context) ([]domain.Hall, error) {
	var out []domain.Hall
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, h := range st.halls {
			out = append(out, h)
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, err
}

func (r *HallRepo) Delete(_ context.Context, id int64) error {
	const op = "memory.HallRepo.Delete"

	return r.s.exec(r.tx, func(st *state, tx *txn) error {
		prev, ok := st.halls[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		for _, sess := range st.sessions {
			if sess.HallID == id {
				return fmt.Errorf("%s:%w", op, repository.ErrInUse)
			}
		}

		seats := st.seats[id]
		delete(st.halls, id)
		delete(st.seats, id)
		tx.onRollback(func() {
			st.halls[id] = prev
			st.seats[id] = seats
		})

		return nil
	})
}

func (r *HallRepo) Seats(_ context.Context, hallID int64) ([]domain.Seat, error) {
	var out []domain.Seat
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		out = append(out, st.seats[hallID]...)
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Number < out[j].Number
	})

	return out, err
}

func (r *HallRepo) Seat(_ context.Context, hallID int64, row, number int) (*domain.Seat, error) {
	const op = "memory.HallRepo.Seat"

	var out *domain.Seat
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, seat := range st.seats[hallID] {
			if seat.Row == row && seat.Number == number {
				s := seat
				out = &s
				return nil
			}
		}
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	})

	return out, err
}

type SessionRepo struct {
	s  *Store
	tx *txn
}

func (r *SessionRepo) Create(_ context.Context, sess *domain.Session) (int64, error) {
	const op = "memory.SessionRepo.Create"

	var id int64
	err := r.s.exec(r.tx, func(st *state, tx *txn) error {
		if err := checkSessionRefs(st, sess); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		st.lastSession++
		id = st.lastSession

		stored := *sess
		stored.ID = id
		st.sessions[id] = stored
		tx.onRollback(func() { delete(st.sessions, id) })

		return nil
	})

	return id, err
}

func (r *SessionRepo) Update(_ context.Context, sess *domain.Session) error {
	const op = "memory.SessionRepo.Update"

	return r.s.exec(r.tx, func(st *state, tx *txn) error {
		prev, ok := st.sessions[sess.ID]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		if err := checkSessionRefs(st, sess); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		st.sessions[sess.ID] = *sess
		tx.onRollback(func() { st.sessions[sess.ID] = prev })

		return nil
	})
}

// checkSessionRefs mirrors the foreign keys of the sessions table.
func checkSessionRefs(st *state, sess *domain.Session) error {
	if _, ok := st.films[sess.FilmID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := st.halls[sess.HallID]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SessionRepo) Delete(_ context.Context, id int64) error {
	const op = "memory.SessionRepo.Delete"

	return r.s.exec(r.tx, func(st *state, tx *txn) error {
		prev, ok := st.sessions[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		for _, b := range st.bookings {
			if b.SessionID == id {
				return fmt.Errorf("%s:%w", op, repository.ErrInUse)
			}
		}

		delete(st.sessions, id)
		tx.onRollback(func() { st.sessions[id] = prev })

		return nil
	})
}

func (r *SessionRepo) Get(_ context.Context, id int64) (*domain.Session, error) {
	const op = "memory.SessionRepo.Get"

	var out domain.Session
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		sess, ok := st.sessions[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		out = sess
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *SessionRepo) ListByFilm(_ context.Context, filmID int64, from time.Time) ([]domain.SessionSummary, error) {
	var out []domain.SessionSummary
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, sess := range st.sessions {
			if sess.FilmID != filmID || sess.StartsAt.Before(from) {
				continue
			}
			out = append(out, summarize(st, sess))
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].HallName < out[j].HallName
	})

	return out, err
}

func summarize(st *state, sess domain.Session) domain.SessionSummary {
	hall := st.halls[sess.HallID]
	return domain.SessionSummary{
		Session:   sess,
		FilmTitle: st.films[sess.FilmID].Title,
		HallName:  hall.Name,
		Capacity:  hall.Capacity,
		FreeSeats: hall.Capacity - activeCount(st, sess.ID),
	}
}

func activeCount(st *state, sessionID int64) int {
	n := 0
	for _, b := range st.bookings {
		if b.SessionID == sessionID && b.Status.IsActive() {
			n++
		}
	}
	return n
}

func (r *SessionRepo) Overlapping(
	_ context.Context,
	hallID int64,
	start, end time.Time,
	excludeID int64,
) ([]domain.Session, error) {
	var out []domain.Session
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, sess := range st.sessions {
			if sess.HallID != hallID || sess.ID == excludeID {
				continue
			}
			if domain.Overlaps(start, end, sess.StartsAt, sess.EndsAt) {
				out = append(out, sess)
			}
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })

	return out, err
}

func (r *SessionRepo) CountByHall(_ context.Context, hallID int64) (int64, error) {
	var n int64
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, sess := range st.sessions {
			if sess.HallID == hallID {
				n++
			}
		}
		return nil
	})

	return n, err
}
