package handlers

import (
	"errors"
	"net/http"

	"neolink/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotLoaded):
		status = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"error":   message,
		"message": err.Error(),
	})
}
