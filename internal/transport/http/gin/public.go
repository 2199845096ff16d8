package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/service"
	"github.com/kirinyoku/cinego/internal/service/auth"
)

// @Summary  Register a customer account
// @Tags     auth
// @Param    req body  RegisterRequest true "payload"
// @Success  201 {object} domain.User
// @Failure  422 {object} ErrorResponse
// @Router   /auth/register [post]
func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		u, err := svcs.Auth.Register(c.Request.Context(), auth.RegisterInput{
			Login:    req.Login,
			Password: req.Password,
			FullName: req.FullName,
			Email:    req.Email,
			Phone:    req.Phone,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// @Summary  Log in and receive a bearer token
// @Tags     auth
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} auth.Session
// @Failure  401 {object} ErrorResponse
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		sess, err := svcs.Auth.Login(c.Request.Context(), req.Login, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// @Summary  Films with sessions on or after a date
// @Tags     browse
// @Param    from query string false "YYYY-MM-DD, default today"
// @Success  200 {array} domain.Film
// @Router   /films [get]
func handleRepertoire(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, ok := parseDate(c, "from")
		if !ok {
			return
		}
		films, err := svcs.Query.Repertoire(c.Request.Context(), from)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, films, "public, max-age=60")
	}
}

// @Summary  Sessions of a film with free seat counts
// @Tags     browse
// @Param    id   path  int    true  "Film ID"
// @Param    from query string false "YYYY-MM-DD, default today"
// @Success  200 {array} domain.SessionSummary
// @Failure  404 {object} ErrorResponse
// @Router   /films/{id}/sessions [get]
func handleFilmSessions(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		filmID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		from, ok := parseDate(c, "from")
		if !ok {
			return
		}
		sessions, err := svcs.Query.FilmSessions(c.Request.Context(), filmID, from)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, sessions, "public, max-age=15")
	}
}

// @Summary  Seat map of a session
// @Description Every seat of the hall exactly once. With a bearer token the
// @Description caller's own active bookings are reported as mine_active.
// @Tags     browse
// @Param    id  path  int  true  "Session ID"
// @Success  200 {array} domain.SeatState
// @Failure  404 {object} ErrorResponse
// @Router   /sessions/{id}/seats [get]
func handleSeatMap(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var userID int64
		if id, ok := identityFrom(c); ok {
			userID = id.UserID
		}
		seats, err := svcs.Availability.GetSeatMap(c.Request.Context(), sessionID, userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		cacheControl := "public, max-age=5"
		if userID != 0 {
			cacheControl = "private, max-age=5"
		}
		writeJSONWithCache(c, http.StatusOK, seats, cacheControl)
	}
}

// @Summary  Ticket price for a seat type
// @Tags     browse
// @Param    id        path  int    true  "Session ID"
// @Param    seat_type query string false "regular or vip"
// @Success  200 {object} PriceResponse
// @Failure  404 {object} ErrorResponse
// @Router   /sessions/{id}/price [get]
func handleTicketPrice(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		seatType, err := domain.ParseSeatType(c.Query("seat_type"))
		if err != nil {
			respondErr(c, err)
			return
		}
		price, err := svcs.Availability.GetTicketPrice(c.Request.Context(), sessionID, seatType)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, PriceResponse{SessionID: sessionID, SeatType: seatType, Price: price})
	}
}

// @Summary  Current balance of the caller
// @Tags     me
// @Security BearerAuth
// @Success  200 {object} BalanceResponse
// @Router   /me/balance [get]
func handleBalance(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := identityFrom(c)
		balance, err := svcs.Query.Balance(c.Request.Context(), id.UserID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, BalanceResponse{Balance: balance})
	}
}

// @Summary  Booking history of the caller, newest session first
// @Tags     me
// @Security BearerAuth
// @Success  200 {array} domain.BookingDetail
// @Router   /me/bookings [get]
func handleHistory(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := identityFrom(c)
		history, err := svcs.Query.History(c.Request.Context(), id.UserID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, history)
	}
}
