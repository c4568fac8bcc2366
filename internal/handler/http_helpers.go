package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/campuslog/internal/moderation"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// respondTransitionError maps the moderation error taxonomy onto HTTP
// statuses and includes the machine-readable cause so callers can branch
// without parsing messages.
func respondTransitionError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, moderation.ErrPostNotFound):
		status = http.StatusNotFound
	case errors.Is(err, moderation.ErrInsufficientRole):
		status = http.StatusForbidden
	case errors.Is(err, moderation.ErrMissingReason):
		status = http.StatusBadRequest
	case errors.Is(err, moderation.ErrInvalidTransition),
		errors.Is(err, moderation.ErrStaleVersion):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  moderation.CauseOf(err),
	})
}
