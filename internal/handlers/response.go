package handlers

import (
	"errors"
	"net/http"

	"lostfound/internal/service"

	"github.com/gin-gonic/gin"
)

// apiResponse is the uniform envelope for every success and error path.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func respond(c *gin.Context, status int, data any, message string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, apiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// respondError maps domain errors to HTTP statuses and renders the envelope.
// Unrecognized errors become a generic 500 so internals never leak.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, service.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	default:
		if h.log != nil {
			h.log.Errorw("request_failed", "path", c.FullPath(), "err", err)
		}
	}

	abortWithEnvelope(c, status, message)
}

func abortWithEnvelope(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, apiResponse{
		StatusCode: status,
		Data:       gin.H{},
		Message:    message,
		Success:    false,
	})
}
