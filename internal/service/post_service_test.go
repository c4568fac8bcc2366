package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campuslog/internal/moderation"
)

func TestPostService_CreateDraftDefaults(t *testing.T) {
	gdb := setupModerationTestDB(t)
	svc := NewPostService(gdb)

	author := createTestUser(t, gdb, "ara", moderation.RoleAuthor)
	post, err := svc.CreateDraft(context.Background(), PostInput{
		Title:    "  Library late hours  ",
		Content:  "The library now closes at 2am.",
		Category: "campus-life",
		AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	if post.Status != moderation.StatusDraft {
		t.Fatalf("expected draft status, got %s", post.Status)
	}
	if post.Version != 0 {
		t.Fatalf("expected version 0, got %d", post.Version)
	}
	if post.Title != "Library late hours" {
		t.Fatalf("expected trimmed title, got %q", post.Title)
	}
	if post.SubmittedAt != nil {
		t.Fatal("a draft must not carry a submitted_at")
	}
}

func TestPostService_CreateDraftRequiresTitle(t *testing.T) {
	gdb := setupModerationTestDB(t)
	svc := NewPostService(gdb)

	if _, err := svc.CreateDraft(context.Background(), PostInput{Title: "  "}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestPostService_GetNotFound(t *testing.T) {
	gdb := setupModerationTestDB(t)
	svc := NewPostService(gdb)

	if _, err := svc.Get(context.Background(), 404); !errors.Is(err, moderation.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
