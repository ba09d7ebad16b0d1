package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/watchlist/backend/internal/domain/shared"
	"github.com/watchlist/backend/internal/interfaces/http/dto"
	"github.com/watchlist/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Result sends a 200 {"result": data} response
func (h *BaseHandler) Result(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewResultResponse(data))
}

// Message sends a 200 {"message": msg} response
func (h *BaseHandler) Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewMessageResponse(message))
}

// BadRequest sends a 400 {"message": msg} response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewMessageResponse(message))
}

// HandleError translates err into the wire shape. The status comes from the
// error kind; the body is failureMessage except for conflicts, which carry
// their own message.
func (h *BaseHandler) HandleError(c *gin.Context, err error, failureMessage string) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	kind := shared.KindOf(err)
	message := failureMessage

	var domainErr *shared.DomainError
	if kind == shared.KindConflict && errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	c.JSON(dto.GetHTTPStatus(kind), dto.NewMessageResponse(message))
}

// getRequestID extracts the request ID set by the RequestID middleware
func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}
