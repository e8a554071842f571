package handler

import (
	"errors"
	"labourdesk/backend/internal/apperr"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes. Only validation
// messages reach the caller; everything else gets a generic text and is kept
// on the gin context for the request log.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	if ve, ok := apperr.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
		return
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "complaint was changed by someone else, reload and retry"})
	case errors.Is(err, apperr.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	case apperr.IsUpstream(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant is temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
