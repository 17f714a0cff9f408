package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-server/internal/model"
)

// respondError translates a service failure into an HTTP status and a JSON
// error body. Token sentinels map to 401; anything unclassified is a 500
// with a generic message so internal detail never leaks.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrTokenSignature),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	switch model.KindOf(err) {
	case model.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case model.KindDuplicate:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case model.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case model.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case model.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case model.KindDisabled:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
