package handler

import (
	"errors"
	"net/http"

	"github.com/campuslog/internal/moderation"
	"github.com/campuslog/internal/service"
	"github.com/gin-gonic/gin"
)

type violationRequest struct {
	Severity   string `json:"severity"`
	Violations []struct {
		Code     string `json:"code"`
		Detail   string `json:"detail"`
		Severity string `json:"severity"`
	} `json:"violations"`
}

// AttachViolations records the external scanner's findings for a post. Not
// a transition: the version is untouched and the queue picks the severity
// up on its next read.
func (a *API) AttachViolations(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req violationRequest
	if !bindJSON(c, &req, "invalid violation payload") {
		return
	}

	input := service.SignalInput{
		PostID:   id,
		Severity: moderation.Severity(req.Severity),
	}
	for _, item := range req.Violations {
		input.Violations = append(input.Violations, service.ViolationItem{
			Code:     item.Code,
			Detail:   item.Detail,
			Severity: moderation.Severity(item.Severity),
		})
	}

	if err := a.violations.Attach(c.Request.Context(), input); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownSeverity):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, moderation.ErrPostNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to attach violations")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": id, "severity": req.Severity})
}
