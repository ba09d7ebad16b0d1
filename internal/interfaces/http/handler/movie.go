package handler

import (
	"github.com/gin-gonic/gin"
	watchlistapp "github.com/watchlist/backend/internal/application/watchlist"
	"github.com/watchlist/backend/internal/infrastructure/logger"
	"github.com/watchlist/backend/internal/interfaces/http/dto"
	"github.com/watchlist/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// MovieHandler handles the watchlist endpoints
type MovieHandler struct {
	BaseHandler
	service *watchlistapp.Service
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(service *watchlistapp.Service) *MovieHandler {
	return &MovieHandler{service: service}
}

// List godoc
// @ID           listMovies
// @Summary      List movies
// @Description  Returns every movie in insertion order
// @Tags         movies
// @Produce      json
// @Success      200 {object} dto.ResultResponse{result=[]watchlist.MovieResponse}
// @Failure      400 {object} dto.MessageResponse
// @Router       /api/movie [get]
func (h *MovieHandler) List(c *gin.Context) {
	movies, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err, dto.MsgListFailed)
		return
	}

	h.Result(c, movies)
}

// Add godoc
// @ID           addMovie
// @Summary      Add a movie
// @Description  Creates a movie unless one with the same title and year exists
// @Tags         movies
// @Accept       json
// @Produce      json
// @Param        request body dto.AddMovieRequest true "Movie to add"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.MessageResponse
// @Failure      409 {object} dto.MessageResponse
// @Router       /api/movie/add [post]
func (h *MovieHandler) Add(c *gin.Context) {
	var req dto.AddMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetGinLogger(c).Info("Rejected add request",
			zap.Strings("validation", middleware.ValidationDetails(err)),
		)
		h.BadRequest(c, dto.MsgAddFailed)
		return
	}

	_, err := h.service.Add(c.Request.Context(), watchlistapp.AddMovieInput{
		Title:   req.Title,
		Year:    req.Year.String(),
		Poster:  req.Poster,
		Watched: req.Watched,
	})
	if err != nil {
		h.HandleError(c, err, dto.MsgAddFailed)
		return
	}

	h.Message(c, dto.MsgAdded)
}

// Toggle godoc
// @ID           toggleMovie
// @Summary      Toggle watched
// @Description  Flips the watched flag of a movie
// @Tags         movies
// @Produce      json
// @Param        id path string true "Movie ID"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.MessageResponse
// @Router       /api/movie/toggle/{id} [post]
func (h *MovieHandler) Toggle(c *gin.Context) {
	if _, err := h.service.ToggleWatched(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, dto.MsgToggleFailed)
		return
	}

	h.Message(c, dto.MsgToggled)
}

// Delete godoc
// @ID           deleteMovie
// @Summary      Delete a movie
// @Description  Removes a movie. Deleting an id that does not exist succeeds.
// @Tags         movies
// @Produce      json
// @Param        id path string true "Movie ID"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.MessageResponse
// @Router       /api/movie/delete/{id} [post]
func (h *MovieHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, dto.MsgDeleteFailed)
		return
	}

	h.Message(c, dto.MsgDeleted)
}
