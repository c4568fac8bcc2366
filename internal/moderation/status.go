package moderation

// Status is the lifecycle state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// Role identifies the kind of actor requesting a transition. Authentication
// happens upstream; this package only authorizes per transition.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleAuthor    Role = "author"
)

// Valid reports whether r is a known actor role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleAuthor:
		return true
	}
	return false
}

// Severity is the violation level attached to a post by the external scanner.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is a known severity value.
func (s Severity) Valid() bool {
	return s.Rank() >= 0
}

// Rank maps a severity to a sortable weight, higher meaning more urgent.
// Unknown severities rank below none.
func (s Severity) Rank() int {
	switch s {
	case SeverityNone:
		return 0
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return -1
}
