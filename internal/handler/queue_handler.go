package handler

import (
	"errors"
	"net/http"

	"github.com/campuslog/internal/moderation"
	"github.com/campuslog/internal/service"
	"github.com/gin-gonic/gin"
)

// ListQueue returns the review queue for the requested filters. Reading the
// queue never claims or mutates a post.
func (a *API) ListQueue(c *gin.Context) {
	filter := service.QueueFilter{
		Status:   moderation.Status(c.Query("status")),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Severity: moderation.Severity(c.Query("severity")),
		Sort:     c.Query("sort"),
	}

	if filter.Status != "" && !filter.Status.Valid() {
		respondError(c, http.StatusBadRequest, "unknown status filter")
		return
	}
	if filter.Severity != "" && !filter.Severity.Valid() {
		respondError(c, http.StatusBadRequest, "unknown severity filter")
		return
	}

	entries, err := a.queue.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSort) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to list queue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}
