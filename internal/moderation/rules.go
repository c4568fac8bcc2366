package moderation

import "strings"

// Audit action names for each allowed transition.
const (
	ActionSubmitted   = "post_submitted"
	ActionApproved    = "post_approved"
	ActionRejected    = "post_rejected"
	ActionResubmitted = "post_resubmitted"
	ActionArchived    = "post_archived"
	// ActionTransition labels attempts that never matched a known transition.
	ActionTransition = "post_transition"
)

// PostState is the slice of a post the state machine needs to decide a
// transition. Callers load it from storage under the per-post lock.
type PostState struct {
	AuthorID uint
	Status   Status
	Version  int64
}

// Action is a requested transition. Ephemeral: it is never persisted, each
// attempt produces one audit entry instead.
type Action struct {
	ActorID         uint
	ActorRole       Role
	TargetStatus    Status
	Reason          string
	ExpectedVersion int64
}

// Decision describes how an accepted transition mutates the post.
type Decision struct {
	NewVersion int64
	// Notes is the moderation notes value after the transition. Non-empty
	// exactly when the target status is rejected.
	Notes string
	// StampSubmittedAt is set when the post (re)enters the review queue.
	StampSubmittedAt bool
	Action           string
}

type rule struct {
	roles       []Role
	ownerAuthor bool
	needsReason bool
	action      string
}

var transitions = map[Status]map[Status]rule{
	StatusDraft: {
		StatusPending: {roles: []Role{RoleAuthor}, ownerAuthor: true, action: ActionSubmitted},
	},
	StatusPending: {
		StatusPublished: {roles: []Role{RoleAdmin, RoleModerator}, action: ActionApproved},
		StatusRejected:  {roles: []Role{RoleAdmin, RoleModerator}, needsReason: true, action: ActionRejected},
		StatusArchived:  {roles: []Role{RoleAdmin}, action: ActionArchived},
	},
	StatusRejected: {
		StatusPending: {roles: []Role{RoleAdmin, RoleModerator, RoleAuthor}, ownerAuthor: true, action: ActionResubmitted},
	},
	StatusPublished: {
		StatusArchived: {roles: []Role{RoleAdmin}, action: ActionArchived},
	},
}

// CanTarget reports whether the role can ever produce the target status,
// regardless of the post's current state. It lets callers reject
// insufficient_role before reading storage.
func CanTarget(role Role, target Status) bool {
	for _, byTarget := range transitions {
		r, ok := byTarget[target]
		if !ok {
			continue
		}
		for _, allowed := range r.roles {
			if allowed == role {
				return true
			}
		}
	}
	return false
}

// ActionName returns the audit action label for a from/to pair, falling back
// to a generic label when the pair is not a known transition.
func ActionName(from, to Status) string {
	if r, ok := transitions[from][to]; ok {
		return r.action
	}
	return ActionTransition
}

// Decide validates a requested transition against the post's current state
// and returns the mutation to apply. It is pure: no I/O, no clock, no
// side effects. Check order is role, payload, then version, so the cause a
// caller sees is the first thing wrong with the request.
func Decide(post PostState, act Action) (Decision, error) {
	r, ok := transitions[post.Status][act.TargetStatus]
	if !ok {
		return Decision{}, ErrInvalidTransition
	}

	if !roleAllowed(r, post, act) {
		return Decision{}, ErrInsufficientRole
	}

	reason := strings.TrimSpace(act.Reason)
	if r.needsReason && reason == "" {
		return Decision{}, ErrMissingReason
	}

	if act.ExpectedVersion != post.Version {
		return Decision{}, ErrStaleVersion
	}

	d := Decision{
		NewVersion:       post.Version + 1,
		StampSubmittedAt: act.TargetStatus == StatusPending,
		Action:           r.action,
	}
	if act.TargetStatus == StatusRejected {
		d.Notes = reason
	}
	return d, nil
}

func roleAllowed(r rule, post PostState, act Action) bool {
	for _, allowed := range r.roles {
		if allowed != act.ActorRole {
			continue
		}
		// Author permission is bound to the post's own author.
		if allowed == RoleAuthor && r.ownerAuthor && act.ActorID != post.AuthorID {
			return false
		}
		return true
	}
	return false
}
