package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusFromError maps service errors to HTTP status codes. Unbalanced and
// closed-period failures are semantic rejections of a well-formed request, so
// they map to 422 rather than 400.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnbalanced):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrPeriodClosed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error payload for a service failure. Internal
// errors are logged with their cause but never leak it to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
