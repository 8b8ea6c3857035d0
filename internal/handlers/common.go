package handlers

import (
	"errors"
	"net/http"

	"collabhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps service sentinels onto HTTP statuses. Unknown errors
// are reported as store failures without leaking details.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrOwnPostJoin),
		errors.Is(err, service.ErrPostCompleted),
		errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidPostType),
		errors.Is(err, service.ErrInvalidPostStatus),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrContentTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store operation failed"})
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
