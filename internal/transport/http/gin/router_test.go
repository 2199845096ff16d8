package httpgin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository/memory"
	redisrepo "github.com/kirinyoku/cinego/internal/repository/redis"
	"github.com/kirinyoku/cinego/internal/service"
	"github.com/kirinyoku/cinego/internal/service/auth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type testAPI struct {
	t       *testing.T
	router  *gin.Engine
	store   *memory.Store
	svcs    *service.Services
	admin   string
	session int64
}

func newAPI(t *testing.T, d Deps) *testAPI {
	t.Helper()

	store := memory.NewStore()
	svcs := service.NewServices(store, service.Deps{}, discard, service.Config{
		Auth: auth.Config{
			Secret:         "test",
			BcryptCost:     bcrypt.MinCost,
			InitialBalance: decimal.NewFromInt(5000),
		},
	})

	d.Services = svcs
	d.Logger = discard
	api := &testAPI{t: t, router: NewRouter(d), store: store, svcs: svcs}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = store.Users().Create(context.Background(), &domain.User{
		Login: "root", PasswordHash: string(hash), Role: domain.RoleAdmin, FullName: "Admin",
	})
	require.NoError(t, err)
	api.admin = api.login("root", "admin-pass")

	return api
}

func (a *testAPI) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) login(login, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/login", "", LoginRequest{Login: login, Password: password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var sess auth.Session
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &sess))
	return sess.Token
}

func (a *testAPI) customer(login string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/register", "", RegisterRequest{
		Login: login, Password: "secret1", FullName: "Customer " + login,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return a.login(login, "secret1")
}

// schedule creates a 3x4 VIP hall (row 1 regular, rows 2-3 VIP), a film
// and one session two days ahead priced at 1000.
func (a *testAPI) schedule() int64 {
	a.t.Helper()

	w := a.do(http.MethodPost, "/admin/films", a.admin, FilmRequest{Title: "Arrival", Genre: "sci-fi", DurationMin: 116})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var film IDResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &film))

	w = a.do(http.MethodPost, "/admin/halls", a.admin, HallRequest{Name: "Red", Rows: 3, SeatsPerRow: 4, VIP: true})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var hall domain.HallWithSeats
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &hall))
	require.Len(a.t, hall.Seats, 12)
	for _, seat := range hall.Seats {
		want := domain.SeatVIP
		if seat.Row == 1 {
			want = domain.SeatRegular
		}
		require.Equal(a.t, want, seat.Type, "row %d seat %d", seat.Row, seat.Number)
	}

	start := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	w = a.do(http.MethodPost, "/admin/sessions", a.admin, SessionRequest{
		FilmID: film.ID, HallID: hall.ID, StartsAt: start, BasePrice: decimal.NewFromInt(1000),
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var sess IDResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &sess))

	a.session = sess.ID
	return sess.ID
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	api := newAPI(t, Deps{})

	w := api.do(http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBookingFlow(t *testing.T) {
	api := newAPI(t, Deps{})
	sessionID := api.schedule()
	token := api.customer("ann")

	w := api.do(http.MethodGet, fmt.Sprintf("/sessions/%d/price?seat_type=vip", sessionID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1500", decode[PriceResponse](t, w).Price.String())

	w = api.do(http.MethodPost, "/bookings", token, PlaceBookingRequest{SessionID: sessionID, Row: 2, Seat: 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[domain.BookingResult](t, w)
	assert.True(t, res.Success)
	assert.Equal(t, "1500", res.Amount.String())
	assert.NotEmpty(t, res.TicketNumber)

	w = api.do(http.MethodGet, "/me/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3500", decode[BalanceResponse](t, w).Balance.String())

	w = api.do(http.MethodGet, fmt.Sprintf("/sessions/%d/seats", sessionID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	seats := decode[[]domain.SeatState](t, w)
	require.Len(t, seats, 12)
	counts := map[domain.SeatStatus]int{}
	for _, s := range seats {
		counts[s.Status]++
	}
	assert.Equal(t, map[domain.SeatStatus]int{domain.SeatFree: 11, domain.SeatMineActive: 1}, counts)

	w = api.do(http.MethodGet, fmt.Sprintf("/bookings/%d/ticket", res.BookingID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Arrival", decode[domain.TicketInfo](t, w).FilmTitle)

	other := api.customer("bob")
	w = api.do(http.MethodGet, fmt.Sprintf("/bookings/%d/ticket", res.BookingID), other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodPost, "/bookings", other, PlaceBookingRequest{SessionID: sessionID, Row: 2, Seat: 3})
	assert.Equal(t, http.StatusConflict, w.Code)
	failure := decode[domain.BookingResult](t, w)
	assert.False(t, failure.Success)
	assert.Equal(t, domain.KindSeatUnavailable, failure.ErrorKind)

	w = api.do(http.MethodPost, fmt.Sprintf("/bookings/%d/cancel", res.BookingID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[CancelBookingResponse](t, w).Cancelled)

	w = api.do(http.MethodPost, fmt.Sprintf("/bookings/%d/cancel", res.BookingID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[CancelBookingResponse](t, w).Cancelled)

	w = api.do(http.MethodGet, "/me/balance", token, nil)
	assert.Equal(t, "5000", decode[BalanceResponse](t, w).Balance.String())

	w = api.do(http.MethodGet, "/me/bookings", token, nil)
	history := decode[[]domain.BookingDetail](t, w)
	require.Len(t, history, 1)
	assert.Equal(t, domain.BookingCancelled, history[0].Status)
}

func TestPlaceBooking_Failures(t *testing.T) {
	api := newAPI(t, Deps{})
	sessionID := api.schedule()
	token := api.customer("ann")

	tests := []struct {
		name   string
		req    PlaceBookingRequest
		status int
		kind   domain.ErrorKind
	}{
		{"no such session", PlaceBookingRequest{SessionID: 999, Row: 1, Seat: 1}, http.StatusNotFound, domain.KindNotFound},
		{"no such seat", PlaceBookingRequest{SessionID: sessionID, Row: 9, Seat: 1}, http.StatusNotFound, domain.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodPost, "/bookings", token, tt.req)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			res := decode[domain.BookingResult](t, w)
			assert.False(t, res.Success)
			assert.Equal(t, tt.kind, res.ErrorKind)
		})
	}

	// 5000 covers three VIP seats at 1500 but not a fourth.
	for seat := 1; seat <= 3; seat++ {
		w := api.do(http.MethodPost, "/bookings", token, PlaceBookingRequest{SessionID: sessionID, Row: 2, Seat: seat})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := api.do(http.MethodPost, "/bookings", token, PlaceBookingRequest{SessionID: sessionID, Row: 2, Seat: 4})
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, domain.KindInsufficientFunds, decode[domain.BookingResult](t, w).ErrorKind)

	w = api.do(http.MethodPost, "/bookings", token, map[string]any{"session_id": sessionID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/bookings", "", PlaceBookingRequest{SessionID: sessionID, Row: 1, Seat: 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	api := newAPI(t, Deps{})
	token := api.customer("ann")

	w := api.do(http.MethodGet, "/admin/films", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/admin/films", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodGet, "/admin/films", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/admin/films", api.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdmin_ScheduleConflictAndInUse(t *testing.T) {
	api := newAPI(t, Deps{})
	sessionID := api.schedule()

	w := api.do(http.MethodGet, fmt.Sprintf("/films/1/sessions?from=%s", time.Now().Format(time.DateOnly)), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessions := decode[[]domain.SessionSummary](t, w)
	require.Len(t, sessions, 1)

	clash := sessions[0].StartsAt.Add(30 * time.Minute)
	w = api.do(http.MethodPost, "/admin/sessions", api.admin, SessionRequest{
		FilmID: 1, HallID: sessions[0].HallID, StartsAt: clash, BasePrice: decimal.NewFromInt(900),
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(domain.KindScheduleConflict), decode[ErrorResponse](t, w).Kind)

	token := api.customer("ann")
	w = api.do(http.MethodPost, "/bookings", token, PlaceBookingRequest{SessionID: sessionID, Row: 1, Seat: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodDelete, fmt.Sprintf("/admin/sessions/%d", sessionID), api.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(domain.KindInUse), decode[ErrorResponse](t, w).Kind)

	w = api.do(http.MethodDelete, fmt.Sprintf("/admin/halls/%d", sessions[0].HallID), api.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReports(t *testing.T) {
	api := newAPI(t, Deps{})
	sessionID := api.schedule()
	token := api.customer("ann")

	w := api.do(http.MethodPost, "/bookings", token, PlaceBookingRequest{SessionID: sessionID, Row: 1, Seat: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodGet, "/admin/reports/summary", api.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[domain.PeriodSummary](t, w)
	assert.Equal(t, int64(1), sum.TicketsSold)
	assert.Equal(t, "1000", sum.Revenue.String())

	w = api.do(http.MethodGet, "/admin/reports/top-films?limit=5", api.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.FilmRevenue](t, w), 1)

	w = api.do(http.MethodGet, "/admin/reports/sales?from=2026-10-20&to=2026-10-01", api.admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodGet, "/admin/reports/sales?from=yesterday", api.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestETag_NotModified(t *testing.T) {
	api := newAPI(t, Deps{})
	api.schedule()

	w := api.do(http.MethodGet, "/films", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tag := w.Header().Get("ETag")
	require.NotEmpty(t, tag)

	w = api.do(http.MethodGet, "/films", "", nil, "If-None-Match", tag)
	assert.Equal(t, http.StatusNotModified, w.Code)
}

type fakeLimiter struct{ allowed bool }

func (f fakeLimiter) Allow(context.Context, string) (redisrepo.Decision, error) {
	return redisrepo.Decision{Allowed: f.allowed, RetryAfter: 1500 * time.Millisecond}, nil
}

func TestRateLimit(t *testing.T) {
	api := newAPI(t, Deps{Limiter: fakeLimiter{allowed: false}})
	sessionID := api.schedule()
	token := api.customer("ann")

	w := api.do(http.MethodPost, "/bookings", token, PlaceBookingRequest{SessionID: sessionID, Row: 1, Seat: 1})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

type memIdem struct {
	values map[string]string
}

func (m *memIdem) Begin(_ context.Context, key string) (redisrepo.IdemState, string, error) {
	v, ok := m.values[key]
	switch {
	case !ok:
		m.values[key] = ""
		return redisrepo.IdemNew, "", nil
	case v == "":
		return redisrepo.IdemInProgress, "", nil
	default:
		return redisrepo.IdemDone, v, nil
	}
}

func (m *memIdem) Save(_ context.Context, key, payload string) error {
	m.values[key] = payload
	return nil
}

func (m *memIdem) Release(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func TestIdempotencyKey_Replays(t *testing.T) {
	idem := &memIdem{values: map[string]string{}}
	api := newAPI(t, Deps{Idem: idem})
	sessionID := api.schedule()
	token := api.customer("ann")
	req := PlaceBookingRequest{SessionID: sessionID, Row: 1, Seat: 2}

	first := api.do(http.MethodPost, "/bookings", token, req, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := api.do(http.MethodPost, "/bookings", token, req, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "k-1", second.Header().Get("Idempotency-Key"))
	assert.Equal(t,
		decode[domain.BookingResult](t, first).BookingID,
		decode[domain.BookingResult](t, second).BookingID)

	w := api.do(http.MethodGet, "/me/balance", token, nil)
	assert.Equal(t, "4000", decode[BalanceResponse](t, w).Balance.String())

	// a failed attempt releases its key
	failed := api.do(http.MethodPost, "/bookings", token, PlaceBookingRequest{SessionID: 999, Row: 1, Seat: 1},
		"Idempotency-Key", "k-2")
	require.Equal(t, http.StatusNotFound, failed.Code)
	_, held := idem.values[redisrepo.KeyIdempotency(2, "k-2")]
	assert.False(t, held)
}

func TestRespondErr(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.NotFoundf("x"), http.StatusNotFound},
		{domain.SeatUnavailablef("x"), http.StatusConflict},
		{domain.InsufficientFundsf("x"), http.StatusPaymentRequired},
		{domain.ScheduleConflictf("x"), http.StatusConflict},
		{domain.InUsef("x"), http.StatusConflict},
		{fmt.Errorf("wrap:%w", domain.Validationf("x")), http.StatusUnprocessableEntity},
		{fmt.Errorf("wrap:%w", auth.ErrInvalidCredentials), http.StatusUnauthorized},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondErr(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestEtagMatches(t *testing.T) {
	tag := `W/"abc"`

	assert.True(t, etagMatches(`W/"abc"`, tag))
	assert.True(t, etagMatches(`"abc"`, tag))
	assert.True(t, etagMatches(`"x", W/"abc"`, tag))
	assert.True(t, etagMatches(`*`, tag))
	assert.False(t, etagMatches(``, tag))
	assert.False(t, etagMatches(`W/"abd"`, tag))
}
