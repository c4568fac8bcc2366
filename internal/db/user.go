package db

import (
	"errors"
	"strings"

	"github.com/campuslog/internal/moderation"
	"gorm.io/gorm"
)

// User 定义了用户模型
// Credentials live in the upstream identity service; this table only keeps
// what the moderation engine needs for attribution and queue search.
type User struct {
	gorm.Model
	Username string          `gorm:"unique;not null"`
	Role     moderation.Role `gorm:"size:20;default:author"`
}

// EnsureUser 存在性检查：若提供的用户名非空且不存在对应账号，则创建一个指定角色的用户。
func EnsureUser(username string, role moderation.Role) error {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("username = ?", trimmed).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if !role.Valid() {
			role = moderation.RoleAuthor
		}
		return DB.Create(&User{Username: trimmed, Role: role}).Error
	}

	return nil
}
