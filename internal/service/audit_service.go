package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuslog/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEmptyAuditEntry = errors.New("audit entry requires an action")

// AuditService owns the append-only moderation trail. Entries are written
// once and never updated; the only delete path is the retention sweep.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates an AuditService instance.
func NewAuditService(gdb *gorm.DB) *AuditService {
	return &AuditService{db: gdb}
}

// AuditFilter describes filters for querying the trail.
type AuditFilter struct {
	ActorID  uint
	PostID   uint
	Action   string
	Resource string
	Outcome  string
	Start    *time.Time
	End      *time.Time
	Page     int
	PerPage  int
}

// AuditListResult aggregates a page of entries with pagination counters.
type AuditListResult struct {
	Entries    []db.AuditEntry
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// Record appends one entry. The ID and timestamp are assigned here so a
// caller can never mutate an existing row by reusing an ID.
func (s *AuditService) Record(ctx context.Context, entry *db.AuditEntry) error {
	return s.RecordTx(s.db.WithContext(ctx), entry)
}

// RecordTx appends one entry inside an existing transaction. Used by the
// moderation service so a version bump and its audit entry commit together.
func (s *AuditService) RecordTx(tx *gorm.DB, entry *db.AuditEntry) error {
	if strings.TrimSpace(entry.Action) == "" {
		return ErrEmptyAuditEntry
	}
	entry.ID = uuid.NewString()
	if entry.Resource == "" {
		entry.Resource = "post"
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Query returns entries newest-first, filtered and paginated.
func (s *AuditService) Query(ctx context.Context, filter AuditFilter) (AuditListResult, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	countQuery := s.applyFilters(s.db.WithContext(ctx).Model(&db.AuditEntry{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return AuditListResult{}, fmt.Errorf("count audit entries: %w", err)
	}

	var entries []db.AuditEntry
	dataQuery := s.applyFilters(s.db.WithContext(ctx).Model(&db.AuditEntry{}), filter)
	if err := dataQuery.
		Order("created_at desc, id desc").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&entries).Error; err != nil {
		return AuditListResult{}, fmt.Errorf("list audit entries: %w", err)
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return AuditListResult{
		Entries:    entries,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func (s *AuditService) applyFilters(query *gorm.DB, filter AuditFilter) *gorm.DB {
	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.PostID != 0 {
		query = query.Where("post_id = ?", filter.PostID)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		query = query.Where("action = ?", action)
	}
	if resource := strings.TrimSpace(filter.Resource); resource != "" {
		query = query.Where("resource = ?", resource)
	}
	if outcome := strings.TrimSpace(filter.Outcome); outcome != "" {
		query = query.Where("outcome = ?", outcome)
	}
	if filter.Start != nil {
		query = query.Where("created_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("created_at < ?", *filter.End)
	}
	return query
}

// Sweep purges entries older than cutoff. Held entries are never purged, so
// a dispute can pin its evidence past the retention horizon. Returns the
// number of rows removed.
func (s *AuditService) Sweep(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ? AND held = ?", cutoff, false).
		Delete(&db.AuditEntry{})
	if result.Error != nil {
		return 0, fmt.Errorf("sweep audit entries: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Hold pins an entry so the retention sweep skips it. This is the one
// mutation the trail permits and it never touches recorded facts.
func (s *AuditService) Hold(ctx context.Context, entryID string, held bool) error {
	result := s.db.WithContext(ctx).Model(&db.AuditEntry{}).
		Where("id = ?", entryID).
		UpdateColumn("held", held)
	if result.Error != nil {
		return fmt.Errorf("update audit hold: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
