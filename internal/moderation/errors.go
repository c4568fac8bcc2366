package moderation

import "errors"

var (
	ErrInvalidTransition = errors.New("requested status transition is not allowed")
	ErrInsufficientRole  = errors.New("actor role cannot perform this transition")
	ErrMissingReason     = errors.New("rejection requires a non-empty reason")
	ErrStaleVersion      = errors.New("post version is stale, refetch and retry")
	ErrPostNotFound      = errors.New("post not found")
	ErrAuditWriteFailed  = errors.New("transition rolled back: audit append failed")
)

// Rejection causes recorded on failed audit entries.
const (
	CauseInvalidTransition = "invalid_transition"
	CauseInsufficientRole  = "insufficient_role"
	CauseMissingReason     = "missing_reason"
	CauseStaleVersion      = "stale_version"
	CauseNotFound          = "not_found"
	CauseAuditWriteFailed  = "audit_write_failed"
	CauseStorageError      = "storage_error"
)

// CauseOf maps a transition error to the cause label recorded in the audit
// trail. Errors outside the taxonomy are treated as storage failures.
func CauseOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		return CauseInvalidTransition
	case errors.Is(err, ErrInsufficientRole):
		return CauseInsufficientRole
	case errors.Is(err, ErrMissingReason):
		return CauseMissingReason
	case errors.Is(err, ErrStaleVersion):
		return CauseStaleVersion
	case errors.Is(err, ErrPostNotFound):
		return CauseNotFound
	case errors.Is(err, ErrAuditWriteFailed):
		return CauseAuditWriteFailed
	}
	return CauseStorageError
}
