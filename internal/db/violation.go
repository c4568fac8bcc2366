package db

import (
	"github.com/campuslog/internal/moderation"
	"gorm.io/gorm"
)

// PostViolation 记录外部扫描服务标注的单条违规
type PostViolation struct {
	gorm.Model
	PostID   uint                `gorm:"index;not null"`
	Code     string              `gorm:"size:100;not null"`
	Detail   string              `gorm:"type:text"`
	Severity moderation.Severity `gorm:"size:20;default:none"`
}
