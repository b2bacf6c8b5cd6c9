package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error to an HTTP response. fallback is
// the message used for unexpected failures so internals never leak to
// clients.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPaymentExceeded),
		errors.Is(err, apperrors.ErrPaymentIncomplete),
		errors.Is(err, apperrors.ErrInvalidOperation),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Operation conflicts with resource state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Operation not allowed", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
