package httpgin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/cinego/internal/domain"
	redisrepo "github.com/kirinyoku/cinego/internal/repository/redis"
	"github.com/kirinyoku/cinego/internal/service"
)

func bookingStatus(res domain.BookingResult) int {
	if res.Success {
		return http.StatusCreated
	}
	return statusForKind(res.ErrorKind)
}

// @Summary  Book and pay for one seat
// @Description Debits the caller and books the seat atomically. A failed
// @Description attempt has no side effects and reports error_kind.
// @Tags     bookings
// @Security BearerAuth
// @Param    Idempotency-Key header string false "replays the first successful response"
// @Param    req body  PlaceBookingRequest true "payload"
// @Success  201 {object} domain.BookingResult
// @Failure  402 {object} domain.BookingResult "insufficient funds"
// @Failure  404 {object} domain.BookingResult
// @Failure  409 {object} domain.BookingResult "seat unavailable / key in progress"
// @Failure  422 {object} domain.BookingResult
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /bookings [post]
func handlePlaceBooking(svcs *service.Services, idem IdempotencyStore, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := identityFrom(c)

		var req PlaceBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var storageKey string
		if idem != nil && idemKey != "" {
			storageKey = redisrepo.KeyIdempotency(id.UserID, idemKey)

			state, payload, err := idem.Begin(ctx, storageKey)
			if err != nil {
				respondErr(c, err)
				return
			}

			switch state {
			case redisrepo.IdemDone:
				var stored storedResponse
				if err := json.Unmarshal([]byte(payload), &stored); err != nil {
					respondErr(c, err)
					return
				}
				c.Header("Idempotency-Key", idemKey)
				c.JSON(stored.Status, stored.Body)
				return
			case redisrepo.IdemInProgress:
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			case redisrepo.IdemNew:
			}
		}

		res, err := svcs.Booking.PlaceBooking(ctx, id.UserID, req.SessionID, req.Row, req.Seat)
		if err != nil || !res.Success {
			if storageKey != "" {
				if relErr := idem.Release(ctx, storageKey); relErr != nil {
					logger.Warn("idempotency release failed", "error", relErr)
				}
			}
			if err != nil {
				respondErr(c, err)
				return
			}
			c.JSON(bookingStatus(res), res)
			return
		}

		status := bookingStatus(res)
		if storageKey != "" {
			b, _ := json.Marshal(storedResponse{Status: status, Body: res})
			if err := idem.Save(ctx, storageKey, string(b)); err != nil {
				logger.Warn("idempotency save failed", "error", err)
			}
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(status, res)
	}
}

// @Summary  Cancel an active booking and refund it
// @Tags     bookings
// @Security BearerAuth
// @Param    id  path  int  true  "Booking ID"
// @Success  200 {object} CancelBookingResponse "cancelled=false when nothing changed"
// @Router   /bookings/{id}/cancel [post]
func handleCancelBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := identityFrom(c)
		bookingID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		done, err := svcs.Booking.CancelBooking(c.Request.Context(), bookingID, id.UserID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, CancelBookingResponse{Cancelled: done})
	}
}

// @Summary  Ticket details for rendering
// @Tags     bookings
// @Security BearerAuth
// @Param    id  path  int  true  "Booking ID"
// @Success  200 {object} domain.TicketInfo
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{id}/ticket [get]
func handleTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := identityFrom(c)
		bookingID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		info, err := svcs.Query.TicketInfo(c.Request.Context(), bookingID, id.UserID, id.IsAdmin())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}
