package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuslog/internal/db"
	"github.com/campuslog/internal/moderation"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	// The queue preview is plain text: everything the markdown renderer
	// produced is stripped back out so moderators see content, not markup.
	previewSanitizer = bluemonday.StrictPolicy()
)

const previewRuneLimit = 280

// Queue sort modes.
const (
	SortOldestFirst  = "oldest_first"
	SortSeverityDesc = "severity_desc"
)

var ErrUnknownSort = errors.New("unknown queue sort")

// severityRankSQL orders rows by scanner severity, worst first.
const severityRankSQL = "CASE posts.violation_severity " +
	"WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC, " +
	"posts.submitted_at asc, posts.id asc"

// QueueService derives the review queue from post records. It is strictly
// read-only: listing never claims a post or touches its state.
type QueueService struct {
	db *gorm.DB
}

// NewQueueService creates a QueueService instance.
func NewQueueService(gdb *gorm.DB) *QueueService {
	return &QueueService{db: gdb}
}

// QueueFilter describes filters for listing the queue.
type QueueFilter struct {
	Status   moderation.Status
	Category string
	Search   string
	Severity moderation.Severity
	Sort     string
}

// QueueEntry is a derived view of one waiting post. It is recomputed on
// every query and never a source of truth.
type QueueEntry struct {
	PostID            uint
	Title             string
	AuthorID          uint
	AuthorName        string
	Category          string
	Status            moderation.Status
	SubmittedAt       *time.Time
	ViolationSeverity moderation.Severity
	AgeRank           int
	Version           int64
	Preview           string
}

// List returns the queue for the given filter. The default order is
// submitted-at ascending, so the longest-waiting post always surfaces
// first; severity_desc ranks by scanner severity with waiting time as the
// tiebreak.
func (s *QueueService) List(ctx context.Context, filter QueueFilter) ([]QueueEntry, error) {
	status := filter.Status
	if status == "" {
		status = moderation.StatusPending
	}

	sort := filter.Sort
	if sort == "" {
		sort = SortOldestFirst
	}
	var order string
	switch sort {
	case SortOldestFirst:
		order = "posts.submitted_at asc, posts.id asc"
	case SortSeverityDesc:
		order = severityRankSQL
	default:
		return nil, ErrUnknownSort
	}

	query := s.db.WithContext(ctx).Model(&db.Post{}).
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Where("posts.status = ?", status).
		Preload("Author")

	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("posts.category = ?", category)
	}
	if filter.Severity != "" {
		query = query.Where("posts.violation_severity = ?", filter.Severity)
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(posts.title) LIKE ? OR LOWER(users.username) LIKE ?", pattern, pattern)
	}

	var posts []db.Post
	if err := query.Order(order).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list review queue: %w", err)
	}

	entries := make([]QueueEntry, 0, len(posts))
	for i, post := range posts {
		entries = append(entries, QueueEntry{
			PostID:            post.ID,
			Title:             post.Title,
			AuthorID:          post.AuthorID,
			AuthorName:        post.Author.Username,
			Category:          post.Category,
			Status:            post.Status,
			SubmittedAt:       post.SubmittedAt,
			ViolationSeverity: post.ViolationSeverity,
			AgeRank:           i + 1,
			Version:           post.Version,
			Preview:           renderPreview(post.Content),
		})
	}
	return entries, nil
}

// renderPreview converts post markdown to a short plain-text excerpt.
func renderPreview(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	text := previewSanitizer.Sanitize(buf.String())
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > previewRuneLimit {
		return string(runes[:previewRuneLimit]) + "…"
	}
	return text
}
