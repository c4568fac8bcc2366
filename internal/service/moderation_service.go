package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuslog/internal/db"
	"github.com/campuslog/internal/lock"
	"github.com/campuslog/internal/moderation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultWriteTimeout bounds the store plus audit write of one transition.
const DefaultWriteTimeout = 5 * time.Second

// ModerationService drives the post lifecycle. All post mutation in the
// engine goes through Transition: the per-post lock serializes conflicting
// attempts, the state machine decides, and the version bump commits in the
// same transaction as its audit entry.
type ModerationService struct {
	db           *gorm.DB
	locks        *lock.KeyMutex
	audit        *AuditService
	notifier     Notifier
	log          *zap.Logger
	writeTimeout time.Duration
}

// NewModerationService creates a ModerationService instance.
func NewModerationService(gdb *gorm.DB, locks *lock.KeyMutex, audit *AuditService, notifier Notifier, log *zap.Logger, writeTimeout time.Duration) *ModerationService {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &ModerationService{
		db:           gdb,
		locks:        locks,
		audit:        audit,
		notifier:     notifier,
		log:          log,
		writeTimeout: writeTimeout,
	}
}

// TransitionInput is one requested status change.
type TransitionInput struct {
	PostID          uint
	ActorID         uint
	ActorRole       moderation.Role
	TargetStatus    moderation.Status
	Reason          string
	ExpectedVersion int64
}

// Transition validates and applies one status change, returning the post's
// new version. Every attempt, applied or rejected, leaves exactly one audit
// entry. Expected failures (bad role, bad pair, stale version) come back as
// the sentinels in the moderation package; anything else is a storage error
// the caller may retry after refetching the version.
func (s *ModerationService) Transition(ctx context.Context, in TransitionInput) (int64, error) {
	if !in.TargetStatus.Valid() {
		s.recordFailure(ctx, in, "", moderation.ErrInvalidTransition)
		return 0, moderation.ErrInvalidTransition
	}
	// Role capability is static, so a request no role could ever make is
	// refused before any post read.
	if !in.ActorRole.Valid() || !moderation.CanTarget(in.ActorRole, in.TargetStatus) {
		s.recordFailure(ctx, in, "", moderation.ErrInsufficientRole)
		return 0, moderation.ErrInsufficientRole
	}

	var newVersion int64
	err := s.locks.WithLock(in.PostID, func() error {
		wctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()

		var post db.Post
		if err := s.db.WithContext(wctx).First(&post, in.PostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.recordFailure(ctx, in, "", moderation.ErrPostNotFound)
				return moderation.ErrPostNotFound
			}
			return fmt.Errorf("load post %d: %w", in.PostID, err)
		}

		decision, err := moderation.Decide(
			moderation.PostState{AuthorID: post.AuthorID, Status: post.Status, Version: post.Version},
			moderation.Action{
				ActorID:         in.ActorID,
				ActorRole:       in.ActorRole,
				TargetStatus:    in.TargetStatus,
				Reason:          in.Reason,
				ExpectedVersion: in.ExpectedVersion,
			},
		)
		if err != nil {
			s.recordFailure(ctx, in, post.Status, err)
			return err
		}

		err = s.db.WithContext(wctx).Transaction(func(tx *gorm.DB) error {
			now := time.Now().UTC()
			updates := map[string]any{
				"status":           in.TargetStatus,
				"moderation_notes": decision.Notes,
				"version":          decision.NewVersion,
				"updated_at":       now,
			}
			if decision.StampSubmittedAt {
				updates["submitted_at"] = now
			}

			// The compare-and-swap on version backs up the lock: even if a
			// writer bypassed the guard, a stale write cannot land.
			result := tx.Model(&db.Post{}).
				Where("id = ? AND version = ?", post.ID, in.ExpectedVersion).
				Updates(updates)
			if result.Error != nil {
				return fmt.Errorf("update post %d: %w", post.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return moderation.ErrStaleVersion
			}

			entry := &db.AuditEntry{
				PostID:     post.ID,
				ActorID:    in.ActorID,
				ActorRole:  string(in.ActorRole),
				Action:     decision.Action,
				FromStatus: string(post.Status),
				ToStatus:   string(in.TargetStatus),
				Reason:     strings.TrimSpace(in.Reason),
				Outcome:    db.OutcomeApplied,
			}
			if err := s.audit.RecordTx(tx, entry); err != nil {
				// Rolls back the version bump: the trail and the post can
				// never disagree.
				return fmt.Errorf("%w: %v", moderation.ErrAuditWriteFailed, err)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, moderation.ErrStaleVersion) {
				s.recordFailure(ctx, in, post.Status, err)
			}
			return err
		}

		newVersion = decision.NewVersion
		return nil
	})
	if err != nil {
		return 0, err
	}

	if in.TargetStatus == moderation.StatusPublished || in.TargetStatus == moderation.StatusRejected {
		evt := StatusChangeEvent{
			PostID:   in.PostID,
			ToStatus: in.TargetStatus,
			Reason:   strings.TrimSpace(in.Reason),
		}
		go s.notifier.NotifyStatusChange(evt)
	}

	return newVersion, nil
}

// CurrentVersion reads a post's version without claiming it. Bulk attempts
// use it to pick up the expected version just before each transition.
func (s *ModerationService) CurrentVersion(ctx context.Context, postID uint) (int64, error) {
	var post db.Post
	err := s.db.WithContext(ctx).Select("id", "version").First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, moderation.ErrPostNotFound
		}
		return 0, fmt.Errorf("load post %d version: %w", postID, err)
	}
	return post.Version, nil
}

func (s *ModerationService) recordFailure(ctx context.Context, in TransitionInput, from moderation.Status, cause error) {
	entry := &db.AuditEntry{
		PostID:         in.PostID,
		ActorID:        in.ActorID,
		ActorRole:      string(in.ActorRole),
		Action:         moderation.ActionName(from, in.TargetStatus),
		FromStatus:     string(from),
		ToStatus:       string(in.TargetStatus),
		Reason:         strings.TrimSpace(in.Reason),
		Outcome:        db.OutcomeRejected,
		RejectionCause: moderation.CauseOf(cause),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.Error("record rejected transition",
			zap.Uint("post_id", in.PostID),
			zap.String("cause", entry.RejectionCause),
			zap.Error(err),
		)
	}
}
