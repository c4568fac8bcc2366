package db

import "time"

// AuditEntry 定义了一条不可变的审核流水记录
// Entries are append-only: the model carries no UpdatedAt/DeletedAt so gorm
// never soft-deletes or touches a written row. The only delete path is the
// retention sweep.
type AuditEntry struct {
	ID             string `gorm:"size:36;primaryKey"`
	PostID         uint   `gorm:"index"`
	ActorID        uint   `gorm:"index"`
	ActorRole      string `gorm:"size:20"`
	Action         string `gorm:"size:40;index"`
	Resource       string `gorm:"size:20;index;default:post"`
	FromStatus     string `gorm:"size:20"`
	ToStatus       string `gorm:"size:20"`
	Reason         string `gorm:"type:text"`
	Outcome        string `gorm:"size:10;index"`
	RejectionCause string `gorm:"size:30"`
	// Held marks an entry referenced by an open dispute; the retention
	// sweep must skip it.
	Held      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"index"`
}

// Audit entry outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

// TableName 自定义表名以保持命名一致。
func (AuditEntry) TableName() string {
	return "audit_entries"
}
