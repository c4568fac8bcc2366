package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/campuslog/internal/db"
	"github.com/campuslog/internal/moderation"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupQueueTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:queue-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Post{}, &db.PostViolation{}, &db.AuditEntry{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func createQueuedPost(t *testing.T, gdb *gorm.DB, title string, authorID uint, category string, severity moderation.Severity, submittedAt time.Time) db.Post {
	t.Helper()
	post := db.Post{
		Title:             title,
		Content:           "body",
		Category:          category,
		AuthorID:          authorID,
		Status:            moderation.StatusPending,
		ViolationSeverity: severity,
		SubmittedAt:       &submittedAt,
		Version:           1,
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("create queued post: %v", err)
	}
	return post
}

func TestQueueService_OldestFirstByDefault(t *testing.T) {
	gdb := setupQueueTestDB(t)
	svc := NewQueueService(gdb)

	author := createTestUser(t, gdb, "ara", moderation.RoleAuthor)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// Inserted newest-first to prove ordering comes from submitted_at.
	createQueuedPost(t, gdb, "third", author.ID, "news", moderation.SeverityNone, base.Add(2*time.Hour))
	createQueuedPost(t, gdb, "second", author.ID, "news", moderation.SeverityNone, base.Add(time.Hour))
	createQueuedPost(t, gdb, "first", author.ID, "news", moderation.SeverityNone, base)

	entries, err := svc.List(context.Background(), QueueFilter{})
	if err != nil {
		t.Fatalf("list queue: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantTitles := []string{"first", "second", "third"}
	for i, entry := range entries {
		if entry.Title != wantTitles[i] {
			t.Fatalf("position %d: expected %q, got %q", i, wantTitles[i], entry.Title)
		}
		if entry.AgeRank != i+1 {
			t.Fatalf("position %d: expected age rank %d, got %d", i, i+1, entry.AgeRank)
		}
		if i > 0 && entries[i-1].SubmittedAt.After(*entry.SubmittedAt) {
			t.Fatalf("submitted_at not non-decreasing at position %d", i)
		}
	}
}

func TestQueueService_SeverityDescWithWaitTiebreak(t *testing.T) {
	gdb := setupQueueTestDB(t)
	svc := NewQueueService(gdb)

	author := createTestUser(t, gdb, "ara", moderation.RoleAuthor)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	createQueuedPost(t, gdb, "low-old", author.ID, "news", moderation.SeverityLow, base)
	createQueuedPost(t, gdb, "critical", author.ID, "news", moderation.SeverityCritical, base.Add(3*time.Hour))
	createQueuedPost(t, gdb, "high-late", author.ID, "news", moderation.SeverityHigh, base.Add(2*time.Hour))
	createQueuedPost(t, gdb, "high-early", author.ID, "news", moderation.SeverityHigh, base.Add(time.Hour))

	entries, err := svc.List(context.Background(), QueueFilter{Sort: SortSeverityDesc})
	if err != nil {
		t.Fatalf("list queue: %v", err)
	}

	wantTitles := []string{"critical", "high-early", "high-late", "low-old"}
	for i, entry := range entries {
		if entry.Title != wantTitles[i] {
			t.Fatalf("position %d: expected %q, got %q", i, wantTitles[i], entry.Title)
		}
	}
}

func TestQueueService_Filters(t *testing.T) {
	gdb := setupQueueTestDB(t)
	svc := NewQueueService(gdb)

	ara := createTestUser(t, gdb, "ara", moderation.RoleAuthor)
	bram := createTestUser(t, gdb, "bram", moderation.RoleAuthor)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	createQueuedPost(t, gdb, "Dining hall review", ara.ID, "campus-life", moderation.SeverityNone, base)
	createQueuedPost(t, gdb, "Midterm tips", bram.ID, "academics", moderation.SeverityHigh, base.Add(time.Hour))

	// Category filter.
	entries, err := svc.List(context.Background(), QueueFilter{Category: "academics"})
	if err != nil {
		t.Fatalf("category filter: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Midterm tips" {
		t.Fatalf("expected only the academics post, got %+v", entries)
	}

	// Severity filter.
	entries, err = svc.List(context.Background(), QueueFilter{Severity: moderation.SeverityHigh})
	if err != nil {
		t.Fatalf("severity filter: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Midterm tips" {
		t.Fatalf("expected only the high severity post, got %+v", entries)
	}

	// Search matches the title case-insensitively.
	entries, err = svc.List(context.Background(), QueueFilter{Search: "DINING"})
	if err != nil {
		t.Fatalf("title search: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Dining hall review" {
		t.Fatalf("expected the dining post, got %+v", entries)
	}

	// Search matches the author name too.
	entries, err = svc.List(context.Background(), QueueFilter{Search: "Bram"})
	if err != nil {
		t.Fatalf("author search: %v", err)
	}
	if len(entries) != 1 || entries[0].AuthorName != "bram" {
		t.Fatalf("expected bram's post, got %+v", entries)
	}
}

func TestQueueService_DefaultsToPendingOnly(t *testing.T) {
	gdb := setupQueueTestDB(t)
	svc := NewQueueService(gdb)

	author := createTestUser(t, gdb, "ara", moderation.RoleAuthor)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	pending := createQueuedPost(t, gdb, "waiting", author.ID, "news", moderation.SeverityNone, base)
	published := createTestPost(t, gdb, author.ID, moderation.StatusPublished, 2)

	entries, err := svc.List(context.Background(), QueueFilter{})
	if err != nil {
		t.Fatalf("list queue: %v", err)
	}
	if len(entries) != 1 || entries[0].PostID != pending.ID {
		t.Fatalf("expected only the pending post, got %+v", entries)
	}

	// An explicit status filter exposes other states.
	entries, err = svc.List(context.Background(), QueueFilter{Status: moderation.StatusPublished})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(entries) != 1 || entries[0].PostID != published.ID {
		t.Fatalf("expected only the published post, got %+v", entries)
	}
}

func TestQueueService_ListHasNoSideEffects(t *testing.T) {
	gdb := setupQueueTestDB(t)
	svc := NewQueueService(gdb)

	author := createTestUser(t, gdb, "ara", moderation.RoleAuthor)
	post := createQueuedPost(t, gdb, "waiting", author.ID, "news", moderation.SeverityNone, time.Now().UTC())

	for i := 0; i < 3; i++ {
		if _, err := svc.List(context.Background(), QueueFilter{}); err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
	}

	var current db.Post
	if err := gdb.First(&current, post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if current.Version != post.Version || current.Status != post.Status {
		t.Fatalf("listing mutated the post: %+v", current)
	}
}

func TestQueueService_PreviewIsPlainText(t *testing.T) {
	gdb := setupQueueTestDB(t)
	svc := NewQueueService(gdb)

	author := createTestUser(t, gdb, "ara", moderation.RoleAuthor)
	now := time.Now().UTC()
	post := createQueuedPost(t, gdb, "markdown", author.ID, "news", moderation.SeverityNone, now)
	if err := gdb.Model(&db.Post{}).Where("id = ?", post.ID).
		UpdateColumn("content", "# Heading\nSome **bold** body text.").Error; err != nil {
		t.Fatalf("set content: %v", err)
	}

	entries, err := svc.List(context.Background(), QueueFilter{})
	if err != nil {
		t.Fatalf("list queue: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}

	preview := entries[0].Preview
	if strings.ContainsAny(preview, "<>#*") {
		t.Fatalf("expected plain text preview, got %q", preview)
	}
	if !strings.Contains(preview, "Heading") || !strings.Contains(preview, "bold") {
		t.Fatalf("expected content words in preview, got %q", preview)
	}
}

func TestQueueService_UnknownSort(t *testing.T) {
	gdb := setupQueueTestDB(t)
	svc := NewQueueService(gdb)

	if _, err := svc.List(context.Background(), QueueFilter{Sort: "newest_first"}); !errors.Is(err, ErrUnknownSort) {
		t.Fatalf("expected ErrUnknownSort, got %v", err)
	}
}
