package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/apperr"
)

// writeError maps service errors onto HTTP responses. Persistence failures
// collapse to a generic 500 with the detail only in the server log; clients
// get a status code and a short message, nothing more.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperr.ErrInvalidCredentials.Error()})
	case errors.Is(err, apperr.ErrEmailTaken),
		errors.Is(err, apperr.ErrUsernameTaken),
		errors.Is(err, apperr.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
