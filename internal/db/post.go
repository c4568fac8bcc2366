package db

import (
	"time"

	"github.com/campuslog/internal/moderation"
	"gorm.io/gorm"
)

// Post 定义了文章模型及其审核元数据
type Post struct {
	gorm.Model
	Title    string
	Content  string
	Category string `gorm:"size:100;index"`
	AuthorID uint   `gorm:"index"`
	Author   User
	Status   moderation.Status `gorm:"size:20;index;default:draft"`
	// SubmittedAt is stamped each time the post enters the review queue.
	SubmittedAt       *time.Time          `gorm:"index"`
	ModerationNotes   string              `gorm:"type:text"`
	ViolationSeverity moderation.Severity `gorm:"size:20;default:none"`
	Violations        []PostViolation
	// Version increments on every accepted transition; writes carrying a
	// stale version are rejected.
	Version int64 `gorm:"not null;default:0"`
}
