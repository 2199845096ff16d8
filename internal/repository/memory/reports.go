package memory

import (
	"context"
	"sort"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/shopspring/decimal"
)

// ReportRepo computes the same aggregates as the SQL reports by scanning
// the in-memory tables.
type ReportRepo struct {
	s *Store
}

// soldRow is one active booking joined with its session, film and hall.
type soldRow struct {
	booking domain.Booking
	session domain.Session
	film    domain.Film
	hall    domain.Hall
}

func (r *ReportRepo) read(fn func(st *state)) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	fn(r.s.st)
}

func activeSold(st *state, keep func(domain.Session) bool) []soldRow {
	var out []soldRow
	for _, b := range st.bookings {
		if !b.Status.IsActive() {
			continue
		}
		sess := st.sessions[b.SessionID]
		if !keep(sess) {
			continue
		}
		out = append(out, soldRow{
			booking: b,
			session: sess,
			film:    st.films[sess.FilmID],
			hall:    st.halls[sess.HallID],
		})
	}
	return out
}

func inPeriod(p domain.Period) func(domain.Session) bool {
	return func(s domain.Session) bool { return p.Contains(s.StartsAt) }
}

func onDay(day time.Time) func(domain.Session) bool {
	d := domain.DayOf(day)
	return func(s domain.Session) bool { return domain.DayOf(s.StartsAt).Equal(d) }
}

func (r *ReportRepo) DailySales(_ context.Context, day time.Time) ([]domain.SessionSales, error) {
	var out []domain.SessionSales
	r.read(func(st *state) {
		keep := onDay(day)
		idx := make(map[int64]int)
		for _, sess := range st.sessions {
			if !keep(sess) {
				continue
			}
			idx[sess.ID] = len(out)
			out = append(out, domain.SessionSales{
				SessionID: sess.ID,
				FilmTitle: st.films[sess.FilmID].Title,
				StartsAt:  sess.StartsAt,
				HallName:  st.halls[sess.HallID].Name,
				Revenue:   decimal.Zero,
			})
		}
		for _, row := range activeSold(st, keep) {
			s := &out[idx[row.session.ID]]
			s.Sold++
			s.Revenue = s.Revenue.Add(row.booking.Amount)
		}
	})

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].HallName < out[j].HallName
	})

	return out, nil
}

func (r *ReportRepo) Sales(_ context.Context, p domain.Period) ([]domain.SalesRow, error) {
	type key struct {
		day  time.Time
		film string
		hall string
	}

	var out []domain.SalesRow
	r.read(func(st *state) {
		idx := make(map[key]int)
		for _, row := range activeSold(st, inPeriod(p)) {
			k := key{day: domain.DayOf(row.session.StartsAt), film: row.film.Title, hall: row.hall.Name}
			i, ok := idx[k]
			if !ok {
				i = len(out)
				idx[k] = i
				out = append(out, domain.SalesRow{Date: k.day, FilmTitle: k.film, HallName: k.hall, Revenue: decimal.Zero})
			}
			out[i].Tickets++
			out[i].Revenue = out[i].Revenue.Add(row.booking.Amount)
		}
	})

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.FilmTitle != b.FilmTitle {
			return a.FilmTitle < b.FilmTitle
		}
		return a.HallName < b.HallName
	})

	return out, nil
}

func (r *ReportRepo) TopFilms(_ context.Context, p domain.Period, limit int) ([]domain.FilmRevenue, error) {
	var out []domain.FilmRevenue
	r.read(func(st *state) {
		keep := inPeriod(p)
		idx := make(map[int64]int)
		for _, sess := range st.sessions {
			if !keep(sess) {
				continue
			}
			i, ok := idx[sess.FilmID]
			if !ok {
				f := st.films[sess.FilmID]
				i = len(out)
				idx[f.ID] = i
				out = append(out, domain.FilmRevenue{FilmID: f.ID, Title: f.Title, Genre: f.Genre, Revenue: decimal.Zero})
			}
			out[i].Sessions++
		}
		for _, row := range activeSold(st, keep) {
			f := &out[idx[row.film.ID]]
			f.Tickets++
			f.Revenue = f.Revenue.Add(row.booking.Amount)
		}
	})

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Title < out[j].Title
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *ReportRepo) HallOccupancy(_ context.Context, p domain.Period) ([]domain.HallOccupancy, error) {
	var out []domain.HallOccupancy
	r.read(func(st *state) {
		keep := inPeriod(p)
		idx := make(map[int64]int)
		for _, sess := range st.sessions {
			if !keep(sess) {
				continue
			}
			i, ok := idx[sess.HallID]
			if !ok {
				h := st.halls[sess.HallID]
				i = len(out)
				idx[h.ID] = i
				out = append(out, domain.HallOccupancy{HallID: h.ID, HallName: h.Name, Capacity: h.Capacity, Revenue: decimal.Zero})
			}
			out[i].Sessions++
		}
		for _, row := range activeSold(st, keep) {
			h := &out[idx[row.hall.ID]]
			h.Sold++
			h.Revenue = h.Revenue.Add(row.booking.Amount)
		}
	})

	for i := range out {
		out[i].Percent = domain.OccupancyPercent(out[i].Sold, out[i].Sessions, out[i].Capacity)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].HallID < out[j].HallID })

	return out, nil
}

func (r *ReportRepo) GenreStats(_ context.Context, p domain.Period) ([]domain.GenreStats, error) {
	var out []domain.GenreStats
	r.read(func(st *state) {
		keep := inPeriod(p)
		idx := make(map[string]int)
		films := make(map[int64]bool)
		for _, sess := range st.sessions {
			if !keep(sess) {
				continue
			}
			f := st.films[sess.FilmID]
			i, ok := idx[f.Genre]
			if !ok {
				i = len(out)
				idx[f.Genre] = i
				out = append(out, domain.GenreStats{Genre: f.Genre, Revenue: decimal.Zero})
			}
			out[i].Sessions++
			if !films[f.ID] {
				films[f.ID] = true
				out[i].Films++
			}
		}
		for _, row := range activeSold(st, keep) {
			g := &out[idx[row.film.Genre]]
			g.Tickets++
			g.Revenue = g.Revenue.Add(row.booking.Amount)
		}
	})

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Genre < out[j].Genre
	})

	return out, nil
}

func (r *ReportRepo) UserActivity(_ context.Context, p domain.Period, limit int) ([]domain.UserActivity, error) {
	var out []domain.UserActivity
	r.read(func(st *state) {
		idx := make(map[int64]int)
		for _, b := range st.bookings {
			if !p.Contains(b.CreatedAt) {
				continue
			}
			i, ok := idx[b.UserID]
			if !ok {
				u := st.users[b.UserID]
				i = len(out)
				idx[u.ID] = i
				out = append(out, domain.UserActivity{UserID: u.ID, FullName: u.FullName, Email: u.Email, Spent: decimal.Zero})
			}
			a := &out[i]
			a.Orders++
			if b.Status.IsActive() {
				a.Active++
				a.Spent = a.Spent.Add(b.Amount)
			} else {
				a.Cancelled++
			}
		}
	})

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Spent.Cmp(out[j].Spent); c != 0 {
			return c > 0
		}
		return out[i].UserID < out[j].UserID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *ReportRepo) Cancelled(_ context.Context, p domain.Period) ([]domain.CancelledBooking, error) {
	var out []domain.CancelledBooking
	r.read(func(st *state) {
		for _, b := range st.bookings {
			if b.Status.IsActive() || b.CancelledAt == nil || !p.Contains(*b.CancelledAt) {
				continue
			}
			sess := st.sessions[b.SessionID]
			out = append(out, domain.CancelledBooking{
				BookingID:   b.ID,
				CancelledAt: *b.CancelledAt,
				UserName:    st.users[b.UserID].FullName,
				FilmTitle:   st.films[sess.FilmID].Title,
				SessionDate: sess.StartsAt,
				Refund:      b.Amount,
			})
		}
	})

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CancelledAt.Equal(out[j].CancelledAt) {
			return out[i].CancelledAt.After(out[j].CancelledAt)
		}
		return out[i].BookingID > out[j].BookingID
	})

	return out, nil
}

func (r *ReportRepo) Summary(_ context.Context, p domain.Period) (*domain.PeriodSummary, error) {
	sum := domain.PeriodSummary{Revenue: decimal.Zero}
	r.read(func(st *state) {
		keep := inPeriod(p)
		for _, sess := range st.sessions {
			if keep(sess) {
				sum.Sessions++
			}
		}

		buyers := make(map[int64]bool)
		for _, b := range st.bookings {
			if !keep(st.sessions[b.SessionID]) {
				continue
			}
			if !b.Status.IsActive() {
				sum.Cancellations++
				continue
			}
			sum.TicketsSold++
			sum.Revenue = sum.Revenue.Add(b.Amount)
			buyers[b.UserID] = true
		}
		sum.UniqueBuyers = int64(len(buyers))
	})

	sum.AverageTicket = domain.AverageTicket(sum.Revenue, sum.TicketsSold)

	return &sum, nil
}

func (r *ReportRepo) Schedule(_ context.Context, day time.Time) ([]domain.ScheduleRow, error) {
	var out []domain.ScheduleRow
	r.read(func(st *state) {
		keep := onDay(day)
		for _, sess := range st.sessions {
			if !keep(sess) {
				continue
			}
			sum := summarize(st, sess)
			out = append(out, domain.ScheduleRow{
				SessionID: sess.ID,
				StartsAt:  sess.StartsAt,
				EndsAt:    sess.EndsAt,
				FilmTitle: sum.FilmTitle,
				HallName:  sum.HallName,
				Price:     sess.BasePrice,
				FreeSeats: sum.FreeSeats,
			})
		}
	})

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].HallName < out[j].HallName
	})

	return out, nil
}

func (r *ReportRepo) ByWeekday(_ context.Context, p domain.Period) ([]domain.BucketRevenue, error) {
	return r.buckets(p, func(t time.Time) int { return int(t.Weekday()) }), nil
}

func (r *ReportRepo) ByHour(_ context.Context, p domain.Period) ([]domain.BucketRevenue, error) {
	return r.buckets(p, func(t time.Time) int { return t.Hour() }), nil
}

func (r *ReportRepo) buckets(p domain.Period, bucketOf func(time.Time) int) []domain.BucketRevenue {
	var out []domain.BucketRevenue
	r.read(func(st *state) {
		idx := make(map[int]int)
		for _, row := range activeSold(st, inPeriod(p)) {
			k := bucketOf(row.session.StartsAt)
			i, ok := idx[k]
			if !ok {
				i = len(out)
				idx[k] = i
				out = append(out, domain.BucketRevenue{Bucket: k, Revenue: decimal.Zero})
			}
			out[i].Tickets++
			out[i].Revenue = out[i].Revenue.Add(row.booking.Amount)
		}
	})

	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })

	return out
}
