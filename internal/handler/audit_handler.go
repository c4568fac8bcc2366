package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campuslog/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QueryAudit lists audit entries newest-first with filters and pagination.
func (a *API) QueryAudit(c *gin.Context) {
	filter := service.AuditFilter{
		Action:   c.Query("action"),
		Resource: c.Query("resource"),
		Outcome:  c.Query("outcome"),
	}

	if raw := strings.TrimSpace(c.Query("actor_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid actor_id")
			return
		}
		filter.ActorID = uint(id)
	}
	if raw := strings.TrimSpace(c.Query("post_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid post_id")
			return
		}
		filter.PostID = uint(id)
	}
	if raw := strings.TrimSpace(c.Query("start")); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid start time, expected RFC3339")
			return
		}
		filter.Start = &ts
	}
	if raw := strings.TrimSpace(c.Query("end")); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid end time, expected RFC3339")
			return
		}
		filter.End = &ts
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	result, err := a.audit.Query(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to query audit trail")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":     result.Entries,
		"total":       result.Total,
		"total_pages": result.TotalPages,
		"page":        result.Page,
		"per_page":    result.PerPage,
	})
}

// SweepAudit purges entries older than the configured retention horizon.
// Admin only; held entries survive the sweep.
func (a *API) SweepAudit(c *gin.Context) {
	cutoff := a.RetentionCutoff()
	removed, err := a.audit.Sweep(c.Request.Context(), cutoff)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to sweep audit trail")
		return
	}

	a.log.Info("audit retention sweep",
		zap.Time("cutoff", cutoff),
		zap.Int64("removed", removed),
	)
	c.JSON(http.StatusOK, gin.H{
		"cutoff":  cutoff,
		"removed": removed,
	})
}
