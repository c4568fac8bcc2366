package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campuslog/internal/db"
	"github.com/campuslog/internal/moderation"
	"gorm.io/gorm"
)

var ErrTitleRequired = errors.New("post title is required")

// PostService covers the authoring surface the lifecycle starts from:
// drafts come in here, every later status change goes through the
// moderation service.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// PostInput represents fields accepted when creating a draft.
type PostInput struct {
	Title    string
	Content  string
	Category string
	AuthorID uint
}

// CreateDraft stores a new post in draft status at version zero.
func (s *PostService) CreateDraft(ctx context.Context, input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	post := db.Post{
		Title:             title,
		Content:           input.Content,
		Category:          strings.TrimSpace(input.Category),
		AuthorID:          input.AuthorID,
		Status:            moderation.StatusDraft,
		ViolationSeverity: moderation.SeverityNone,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return &post, nil
}

// Get loads one post with its author and violation findings.
func (s *PostService) Get(ctx context.Context, id uint) (*db.Post, error) {
	var post db.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Violations").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderation.ErrPostNotFound
		}
		return nil, fmt.Errorf("load post %d: %w", id, err)
	}
	return &post, nil
}
