package http

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termhost/internal/providers/filesystem"
	"github.com/GriffinCanCode/termhost/internal/providers/terminal"
	"github.com/GriffinCanCode/termhost/internal/service"
	"github.com/GriffinCanCode/termhost/internal/shared/types"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, terminal.ErrSessionNotFound),
		errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, types.ErrUnknownTool),
		errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidParams),
		errors.Is(err, service.ErrInvalidToolID),
		errors.Is(err, filesystem.ErrNotDirectory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}
