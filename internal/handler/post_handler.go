package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/campuslog/internal/db"
	"github.com/campuslog/internal/moderation"
	"github.com/campuslog/internal/service"
	"github.com/gin-gonic/gin"
)

type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type transitionRequest struct {
	TargetStatus    string `json:"target_status"`
	Reason          string `json:"reason"`
	ExpectedVersion int64  `json:"expected_version"`
}

type bulkRequest struct {
	PostIDs      []uint `json:"post_ids"`
	TargetStatus string `json:"target_status"`
	Reason       string `json:"reason"`
}

type postResponse struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Category          string     `json:"category"`
	AuthorID          uint       `json:"author_id"`
	AuthorName        string     `json:"author_name,omitempty"`
	Status            string     `json:"status"`
	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`
	ModerationNotes   string     `json:"moderation_notes,omitempty"`
	ViolationSeverity string     `json:"violation_severity"`
	Version           int64      `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func toPostResponse(post *db.Post) postResponse {
	return postResponse{
		ID:                post.ID,
		Title:             post.Title,
		Content:           post.Content,
		Category:          post.Category,
		AuthorID:          post.AuthorID,
		AuthorName:        post.Author.Username,
		Status:            string(post.Status),
		SubmittedAt:       post.SubmittedAt,
		ModerationNotes:   post.ModerationNotes,
		ViolationSeverity: string(post.ViolationSeverity),
		Version:           post.Version,
		CreatedAt:         post.CreatedAt,
		UpdatedAt:         post.UpdatedAt,
	}
}

// CreatePost stores a new draft owned by the acting author.
func (a *API) CreatePost(c *gin.Context) {
	var req createPostRequest
	if !bindJSON(c, &req, "invalid post payload") {
		return
	}

	actorID, _ := actorFrom(c)
	post, err := a.posts.CreateDraft(c.Request.Context(), service.PostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		AuthorID: actorID,
	})
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create post")
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post))
}

// GetPost returns one post with its moderation metadata.
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := a.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// TransitionPost applies one status change to one post.
func (a *API) TransitionPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req transitionRequest
	if !bindJSON(c, &req, "invalid transition payload") {
		return
	}

	actorID, actorRole := actorFrom(c)
	newVersion, err := a.moderation.Transition(c.Request.Context(), service.TransitionInput{
		PostID:          id,
		ActorID:         actorID,
		ActorRole:       actorRole,
		TargetStatus:    moderation.Status(req.TargetStatus),
		Reason:          req.Reason,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post_id": id,
		"status":  req.TargetStatus,
		"version": newVersion,
	})
}

// BulkApply runs one transition against many posts and reports per-post
// outcomes; partial failure is a normal result, not an error.
func (a *API) BulkApply(c *gin.Context) {
	var req bulkRequest
	if !bindJSON(c, &req, "invalid bulk payload") {
		return
	}

	actorID, actorRole := actorFrom(c)
	results, err := a.bulk.Apply(c.Request.Context(), service.BulkInput{
		PostIDs:      req.PostIDs,
		ActorID:      actorID,
		ActorRole:    actorRole,
		TargetStatus: moderation.Status(req.TargetStatus),
		Reason:       req.Reason,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyBulk) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
