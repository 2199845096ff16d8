package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/events"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/kirinyoku/cinego/internal/repository/memory"
	"github.com/kirinyoku/cinego/internal/service/availability"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	clock     = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	sessStart = time.Date(2026, 10, 16, 19, 30, 0, 0, time.UTC)
)

type recorder struct {
	mu          sync.Mutex
	events      []events.BookingEvent
	invalidated []int64
	notified    []int64
	publishErr  error
}

func (r *recorder) Publish(_ context.Context, e events.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.publishErr
}

func (r *recorder) Close() error { return nil }

func (r *recorder) InvalidateSession(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, id)
	return nil
}

func (r *recorder) PublishSessionChanged(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notified = append(r.notified, id)
	return nil
}

type env struct {
	store     *memory.Store
	svc       *Service
	seats     *availability.Service
	rec       *recorder
	userID    int64
	sessionID int64
}

func setup(t *testing.T) env {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore()

	userID, err := store.Users().Create(ctx, &domain.User{
		Login:    "u",
		FullName: "User U",
		Role:     domain.RoleCustomer,
		Balance:  decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	filmID, err := store.Films().Create(ctx, &domain.Film{Title: "Heat", Genre: "crime", DurationMin: 170})
	require.NoError(t, err)

	hall := domain.Hall{ID: 1, Name: "Main", Rows: 4, SeatsPerRow: 6, VIP: true, Capacity: 24}
	require.NoError(t, store.Halls().Create(ctx, &hall))
	require.NoError(t, store.Halls().CreateSeats(ctx, domain.HallSeats(hall.ID, hall.Rows, hall.SeatsPerRow, hall.VIP)))

	sessionID, err := store.Sessions().Create(ctx, &domain.Session{
		FilmID:    filmID,
		HallID:    hall.ID,
		StartsAt:  sessStart,
		EndsAt:    domain.DefaultSessionEnd(sessStart, 170),
		BasePrice: decimal.NewFromInt(2500),
	})
	require.NoError(t, err)

	rec := &recorder{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(store, rec, rec, rec, log, Config{Now: func() time.Time { return clock }})

	return env{
		store:     store,
		svc:       svc,
		seats:     availability.New(store, nil),
		rec:       rec,
		userID:    userID,
		sessionID: sessionID,
	}
}

func (e env) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	u, err := e.store.Users().Get(context.Background(), e.userID)
	require.NoError(t, err)
	return u.Balance
}

func (e env) bookingCount(t *testing.T) int {
	t.Helper()
	n, err := e.store.Bookings().CountBySession(context.Background(), e.sessionID)
	require.NoError(t, err)
	return int(n)
}

func TestScenario_BookVIPSeatThenCancel(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	res, err := e.svc.PlaceBooking(ctx, e.userID, e.sessionID, 3, 5)
	require.NoError(t, err)
	require.True(t, res.Success, res.ErrorMessage)

	assert.True(t, res.Amount.Equal(decimal.NewFromInt(3750)))
	assert.Regexp(t, `^TK261016-[0-9A-F]{10}$`, res.TicketNumber)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(6250)))

	seatMap, err := e.seats.GetSeatMap(ctx, e.sessionID, e.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatMineActive, statusOf(seatMap, 3, 5))

	ok, err := e.svc.CancelBooking(ctx, res.BookingID, e.userID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(10000)))

	seatMap, err = e.seats.GetSeatMap(ctx, e.sessionID, e.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatFree, statusOf(seatMap, 3, 5))

	require.Len(t, e.rec.events, 2)
	assert.Equal(t, events.BookingConfirmed, e.rec.events[0].Type)
	assert.Equal(t, events.BookingCancelled, e.rec.events[1].Type)
	assert.Equal(t, []int64{e.sessionID, e.sessionID}, e.rec.invalidated)
	assert.Equal(t, []int64{e.sessionID, e.sessionID}, e.rec.notified)
}

func TestPlaceBooking_RegularSeatPrice(t *testing.T) {
	e := setup(t)

	res, err := e.svc.PlaceBooking(context.Background(), e.userID, e.sessionID, 1, 1)
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.True(t, res.Amount.Equal(decimal.NewFromInt(2500)))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(7500)))
}

func TestPlaceBooking_FailuresLeaveNoTrace(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, e env) (userID, sessionID int64, row, seat int)
		kind    domain.ErrorKind
	}{
		{
			name: "unknown session",
			prepare: func(t *testing.T, e env) (int64, int64, int, int) {
				return e.userID, 999, 1, 1
			},
			kind: domain.KindNotFound,
		},
		{
			name: "seat outside hall",
			prepare: func(t *testing.T, e env) (int64, int64, int, int) {
				return e.userID, e.sessionID, 9, 1
			},
			kind: domain.KindNotFound,
		},
		{
			name: "non-positive seat",
			prepare: func(t *testing.T, e env) (int64, int64, int, int) {
				return e.userID, e.sessionID, 0, 1
			},
			kind: domain.KindValidation,
		},
		{
			name: "insufficient funds",
			prepare: func(t *testing.T, e env) (int64, int64, int, int) {
				_, err := e.store.Users().Debit(context.Background(), e.userID, decimal.NewFromInt(8000))
				require.NoError(t, err)
				return e.userID, e.sessionID, 1, 1
			},
			kind: domain.KindInsufficientFunds,
		},
		{
			name: "unknown user",
			prepare: func(t *testing.T, e env) (int64, int64, int, int) {
				return 404, e.sessionID, 1, 1
			},
			kind: domain.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t)
			userID, sessionID, row, seat := tt.prepare(t, e)
			before := e.balance(t)

			res, err := e.svc.PlaceBooking(context.Background(), userID, sessionID, row, seat)
			require.NoError(t, err)

			assert.False(t, res.Success)
			assert.Equal(t, tt.kind, res.ErrorKind)
			assert.NotEmpty(t, res.ErrorMessage)
			assert.True(t, e.balance(t).Equal(before))
			assert.Zero(t, e.bookingCount(t))
			assert.Empty(t, e.rec.events)
		})
	}
}

func TestPlaceBooking_SessionAlreadyStarted(t *testing.T) {
	e := setup(t)
	e.svc.now = func() time.Time { return sessStart }

	res, err := e.svc.PlaceBooking(context.Background(), e.userID, e.sessionID, 1, 1)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, domain.KindValidation, res.ErrorKind)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(10000)))
}

func TestPlaceBooking_SeatTaken(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	otherID, err := e.store.Users().Create(ctx, &domain.User{Login: "other", Balance: decimal.NewFromInt(5000)})
	require.NoError(t, err)

	first, err := e.svc.PlaceBooking(ctx, otherID, e.sessionID, 2, 2)
	require.NoError(t, err)
	require.True(t, first.Success)

	res, err := e.svc.PlaceBooking(ctx, e.userID, e.sessionID, 2, 2)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, domain.KindSeatUnavailable, res.ErrorKind)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(10000)))

	seatMap, err := e.seats.GetSeatMap(ctx, e.sessionID, e.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatOccupied, statusOf(seatMap, 2, 2))
}

func TestPlaceBooking_ConcurrentSameSeat(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	const buyers = 8
	var wg sync.WaitGroup
	results := make([]domain.BookingResult, buyers)
	errs := make([]error, buyers)

	start := make(chan struct{})
	for i := range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i], errs[i] = e.svc.PlaceBooking(ctx, e.userID, e.sessionID, 1, 4)
		}()
	}
	close(start)
	wg.Wait()

	wins := 0
	for i, res := range results {
		require.NoError(t, errs[i])
		if res.Success {
			wins++
			continue
		}
		assert.Equal(t, domain.KindSeatUnavailable, res.ErrorKind)
	}

	assert.Equal(t, 1, wins)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(7500)))

	active, err := e.store.Bookings().ActiveBySession(ctx, e.sessionID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestCancelBooking_Idempotent(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	res, err := e.svc.PlaceBooking(ctx, e.userID, e.sessionID, 1, 1)
	require.NoError(t, err)
	require.True(t, res.Success)

	first, err := e.svc.CancelBooking(ctx, res.BookingID, e.userID)
	require.NoError(t, err)
	second, err := e.svc.CancelBooking(ctx, res.BookingID, e.userID)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(10000)))
}

func TestCancelBooking_RefundsStoredAmount(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	res, err := e.svc.PlaceBooking(ctx, e.userID, e.sessionID, 4, 1)
	require.NoError(t, err)
	require.True(t, res.Success)

	sess, err := e.store.Sessions().Get(ctx, e.sessionID)
	require.NoError(t, err)
	sess.BasePrice = decimal.NewFromInt(9000)
	require.NoError(t, e.store.Sessions().Update(ctx, sess))

	ok, err := e.svc.CancelBooking(ctx, res.BookingID, e.userID)
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(10000)))
}

func TestCancelBooking_RejectsWithoutMutation(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	res, err := e.svc.PlaceBooking(ctx, e.userID, e.sessionID, 1, 1)
	require.NoError(t, err)
	require.True(t, res.Success)

	ok, err := e.svc.CancelBooking(ctx, res.BookingID, e.userID+1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.svc.CancelBooking(ctx, 12345, e.userID)
	require.NoError(t, err)
	assert.False(t, ok)

	b, err := e.store.Bookings().Get(ctx, res.BookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingActive, b.Status)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(7500)))
}

func TestPlaceBooking_PublishFailureDoesNotUndoBooking(t *testing.T) {
	e := setup(t)
	e.rec.publishErr = errors.New("broker down")

	res, err := e.svc.PlaceBooking(context.Background(), e.userID, e.sessionID, 1, 1)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 1, e.bookingCount(t))
}

func TestPlaceBooking_StorageFailureIsAnError(t *testing.T) {
	store := failingStore{Store: memory.NewStore(), err: errors.New("connection refused")}
	svc := New(store, nil, nil, nil, nil, Config{})

	_, err := svc.PlaceBooking(context.Background(), 1, 1, 1, 1)

	require.Error(t, err)
	_, isDomain := domain.AsError(err)
	assert.False(t, isDomain)
}

func TestPlaceBooking_SeatLostAfterPreCheck(t *testing.T) {
	e := setup(t)
	svc := New(lostRaceStore{Store: e.store}, e.rec, e.rec, e.rec, nil, Config{Now: func() time.Time { return clock }})

	res, err := svc.PlaceBooking(context.Background(), e.userID, e.sessionID, 1, 1)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, domain.KindSeatUnavailable, res.ErrorKind)
	// the debit ran before the insert failed and must be rolled back
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(10000)))
	assert.Zero(t, e.bookingCount(t))
	assert.Empty(t, e.rec.events)
	assert.Empty(t, e.rec.invalidated)
	assert.Empty(t, e.rec.notified)
}

func TestPlaceBooking_RetriesTakenTicketNumber(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	codes := []string{"TK-A", "TK-A", "TK-A", "TK-B"}
	next := func(time.Time) string {
		c := codes[0]
		codes = codes[1:]
		return c
	}
	svc := New(e.store, nil, nil, nil, nil, Config{Now: func() time.Time { return clock }, TicketNumber: next})

	first, err := svc.PlaceBooking(ctx, e.userID, e.sessionID, 1, 1)
	require.NoError(t, err)
	require.True(t, first.Success)
	assert.Equal(t, "TK-A", first.TicketNumber)

	second, err := svc.PlaceBooking(ctx, e.userID, e.sessionID, 1, 2)
	require.NoError(t, err)
	require.True(t, second.Success, second.ErrorMessage)
	assert.Equal(t, "TK-B", second.TicketNumber)

	assert.Equal(t, 2, e.bookingCount(t))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(5000)))
}

func TestPlaceBooking_TicketNumbersExhausted(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	same := func(time.Time) string { return "TK-SAME" }
	svc := New(e.store, nil, nil, nil, nil, Config{Now: func() time.Time { return clock }, TicketNumber: same})

	_, err := svc.PlaceBooking(ctx, e.userID, e.sessionID, 1, 1)
	require.NoError(t, err)

	_, err = svc.PlaceBooking(ctx, e.userID, e.sessionID, 1, 2)
	require.ErrorIs(t, err, repository.ErrDuplicateTicket)
	assert.Equal(t, 1, e.bookingCount(t))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(7500)))
}

// lostRaceStore behaves as if another buyer took the seat between the
// availability check and the insert.
type lostRaceStore struct {
	repository.Store
}

func (s lostRaceStore) RunTx(
	ctx context.Context,
	opts repository.TxOptions,
	fn func(context.Context, repository.Repos) error,
) error {
	return s.Store.RunTx(ctx, opts, func(ctx context.Context, tx repository.Repos) error {
		return fn(ctx, lostRaceRepos{Repos: tx})
	})
}

type lostRaceRepos struct {
	repository.Repos
}

func (r lostRaceRepos) Bookings() repository.BookingRepo {
	return lostRaceBookings{BookingRepo: r.Repos.Bookings()}
}

type lostRaceBookings struct {
	repository.BookingRepo
}

func (lostRaceBookings) ActiveBySeat(context.Context, int64, int, int) (*domain.Booking, error) {
	return nil, repository.ErrNotFound
}

func (lostRaceBookings) Insert(context.Context, *domain.Booking) (int64, error) {
	return 0, repository.ErrConflict
}

type failingStore struct {
	repository.Store
	err error
}

func (s failingStore) RunTx(context.Context, repository.TxOptions, func(context.Context, repository.Repos) error) error {
	return s.err
}

func statusOf(seats []domain.SeatState, row, number int) domain.SeatStatus {
	for _, s := range seats {
		if s.Row == row && s.Number == number {
			return s.Status
		}
	}
	return ""
}
