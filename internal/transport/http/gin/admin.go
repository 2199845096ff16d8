package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/cinego/internal/service"
	"github.com/kirinyoku/cinego/internal/service/admin"
)

func filmInput(req FilmRequest) admin.FilmInput {
	return admin.FilmInput{
		Title:       req.Title,
		Genre:       req.Genre,
		DurationMin: req.DurationMin,
		AgeRating:   req.AgeRating,
		Description: req.Description,
	}
}

func sessionInput(req SessionRequest) admin.SessionInput {
	return admin.SessionInput{
		FilmID:    req.FilmID,
		HallID:    req.HallID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		BasePrice: req.BasePrice,
	}
}

// @Summary  List films
// @Tags     admin
// @Security BearerAuth
// @Success  200 {array} domain.Film
// @Router   /admin/films [get]
func handleListFilms(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		films, err := svcs.Admin.ListFilms(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, films)
	}
}

// @Summary  Create film
// @Tags     admin
// @Security BearerAuth
// @Param    req body  FilmRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  422 {object} ErrorResponse
// @Router   /admin/films [post]
func handleCreateFilm(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FilmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Admin.CreateFilm(c.Request.Context(), filmInput(req))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  Get film
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Film ID"
// @Success  200 {object} domain.Film
// @Failure  404 {object} ErrorResponse
// @Router   /admin/films/{id} [get]
func handleGetFilm(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		f, err := svcs.Admin.GetFilm(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, f)
	}
}

// @Summary  Update film
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Film ID"
// @Param    req body  FilmRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/films/{id} [put]
func handleUpdateFilm(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req FilmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		respondErr(c, svcs.Admin.UpdateFilm(c.Request.Context(), id, filmInput(req)))
	}
}

// @Summary  Delete film and its sessions
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Film ID"
// @Success  204
// @Failure  409 {object} ErrorResponse "sessions have bookings"
// @Router   /admin/films/{id} [delete]
func handleDeleteFilm(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		respondErr(c, svcs.Admin.DeleteFilm(c.Request.Context(), id))
	}
}

// @Summary  List halls
// @Tags     admin
// @Security BearerAuth
// @Success  200 {array} domain.Hall
// @Router   /admin/halls [get]
func handleListHalls(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		halls, err := svcs.Admin.ListHalls(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, halls)
	}
}

// @Summary  Create hall with its seats
// @Tags     admin
// @Security BearerAuth
// @Param    req body  HallRequest true "payload"
// @Success  201 {object} domain.HallWithSeats
// @Failure  422 {object} ErrorResponse
// @Router   /admin/halls [post]
func handleCreateHall(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req HallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		h, err := svcs.Admin.CreateHall(c.Request.Context(), req.Name, req.Rows, req.SeatsPerRow, req.VIP)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, h)
	}
}

// @Summary  Get hall with seats
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Hall ID"
// @Success  200 {object} domain.HallWithSeats
// @Failure  404 {object} ErrorResponse
// @Router   /admin/halls/{id} [get]
func handleGetHall(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		h, err := svcs.Admin.GetHall(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, h)
	}
}

// @Summary  Delete hall
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Hall ID"
// @Success  204
// @Failure  409 {object} ErrorResponse "hall has sessions"
// @Router   /admin/halls/{id} [delete]
func handleDeleteHall(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		respondErr(c, svcs.Admin.DeleteHall(c.Request.Context(), id))
	}
}

// @Summary  Schedule a session
// @Tags     admin
// @Security BearerAuth
// @Param    req body  SessionRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  409 {object} ErrorResponse "overlaps another session"
// @Failure  422 {object} ErrorResponse
// @Router   /admin/sessions [post]
func handleCreateSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Admin.CreateSession(c.Request.Context(), sessionInput(req))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  Reschedule a session
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Session ID"
// @Param    req body  SessionRequest true "payload"
// @Success  204
// @Failure  409 {object} ErrorResponse
// @Router   /admin/sessions/{id} [put]
func handleUpdateSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req SessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		respondErr(c, svcs.Admin.UpdateSession(c.Request.Context(), id, sessionInput(req)))
	}
}

// @Summary  Delete session
// @Tags     admin
// @Security BearerAuth
// @Param    id  path  int  true  "Session ID"
// @Success  204
// @Failure  409 {object} ErrorResponse "session has bookings"
// @Router   /admin/sessions/{id} [delete]
func handleDeleteSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		respondErr(c, svcs.Admin.DeleteSession(c.Request.Context(), id))
	}
}
