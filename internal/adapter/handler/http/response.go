package http

import (
	"errors"
	"net/http"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Msg string `json:"msg"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Msg: message})
}

// handleServiceError maps domain sentinel errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic message.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidState):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		newErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		newErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		newErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		newErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
