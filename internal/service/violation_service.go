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

var ErrUnknownSeverity = errors.New("unknown violation severity")

// ViolationService applies the external scanner's signal to a post. The
// signal is metadata, not a transition: it never bumps the version and the
// queue simply reflects the latest severity on its next read.
type ViolationService struct {
	db *gorm.DB
}

// NewViolationService creates a ViolationService instance.
func NewViolationService(gdb *gorm.DB) *ViolationService {
	return &ViolationService{db: gdb}
}

// ViolationItem is one flagged finding from the scanner.
type ViolationItem struct {
	Code     string
	Detail   string
	Severity moderation.Severity
}

// SignalInput is one scanner report for a post.
type SignalInput struct {
	PostID     uint
	Severity   moderation.Severity
	Violations []ViolationItem
}

// Attach replaces the post's violation findings and overall severity with
// the scanner's latest report.
func (s *ViolationService) Attach(ctx context.Context, in SignalInput) error {
	if !in.Severity.Valid() {
		return ErrUnknownSeverity
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// UpdateColumn leaves version and updated_at alone: attaching a
		// signal is not an edit of the post.
		result := tx.Model(&db.Post{}).
			Where("id = ?", in.PostID).
			UpdateColumn("violation_severity", in.Severity)
		if result.Error != nil {
			return fmt.Errorf("update post %d severity: %w", in.PostID, result.Error)
		}
		if result.RowsAffected == 0 {
			return moderation.ErrPostNotFound
		}

		if err := tx.Where("post_id = ?", in.PostID).
			Unscoped().Delete(&db.PostViolation{}).Error; err != nil {
			return fmt.Errorf("clear post %d violations: %w", in.PostID, err)
		}

		for _, item := range in.Violations {
			code := strings.TrimSpace(item.Code)
			if code == "" {
				continue
			}
			severity := item.Severity
			if !severity.Valid() {
				severity = in.Severity
			}
			record := db.PostViolation{
				PostID:   in.PostID,
				Code:     code,
				Detail:   item.Detail,
				Severity: severity,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("record post %d violation: %w", in.PostID, err)
			}
		}
		return nil
	})
}
