package service

import (
	"context"
	"errors"

	"github.com/campuslog/internal/moderation"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyBulk = errors.New("bulk apply requires at least one post id")

// DefaultBulkWorkers caps how many posts one batch touches at a time.
const DefaultBulkWorkers = 4

// BulkService applies one transition to many posts with independent
// per-post outcomes. A batch is never all-or-nothing: each id runs through
// the state machine on its own and reports its own result.
type BulkService struct {
	moderation *ModerationService
	workers    int
}

// NewBulkService creates a BulkService instance.
func NewBulkService(mod *ModerationService, workers int) *BulkService {
	if workers < 1 {
		workers = DefaultBulkWorkers
	}
	return &BulkService{moderation: mod, workers: workers}
}

// BulkInput is one requested batch.
type BulkInput struct {
	PostIDs      []uint
	ActorID      uint
	ActorRole    moderation.Role
	TargetStatus moderation.Status
	Reason       string
}

// BulkItemResult reports the outcome for one input position.
type BulkItemResult struct {
	PostID     uint
	Outcome    string
	NewVersion int64
	Cause      string
}

// Apply runs the batch and returns one result per input id, in input order.
// Distinct posts are processed concurrently; duplicate ids in one batch are
// chained so the second attempt sees the version the first one wrote. Only
// malformed input fails the batch itself.
func (s *BulkService) Apply(ctx context.Context, in BulkInput) ([]BulkItemResult, error) {
	if len(in.PostIDs) == 0 {
		return nil, ErrEmptyBulk
	}
	if !in.TargetStatus.Valid() {
		return nil, moderation.ErrInvalidTransition
	}

	// Group input positions by post id so duplicates run in order on one
	// goroutine while distinct ids fan out.
	order := make([]uint, 0, len(in.PostIDs))
	positions := make(map[uint][]int, len(in.PostIDs))
	for i, id := range in.PostIDs {
		if _, seen := positions[id]; !seen {
			order = append(order, id)
		}
		positions[id] = append(positions[id], i)
	}

	results := make([]BulkItemResult, len(in.PostIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, id := range order {
		id := id
		g.Go(func() error {
			for _, idx := range positions[id] {
				results[idx] = s.applyOne(gctx, id, in)
			}
			return nil
		})
	}
	// Per-item failures are carried in the results, never as a group error.
	_ = g.Wait()

	return results, nil
}

func (s *BulkService) applyOne(ctx context.Context, postID uint, in BulkInput) BulkItemResult {
	result := BulkItemResult{PostID: postID}

	// The expected version is read just before the attempt; a conflicting
	// writer in between surfaces as stale_version, not a silent overwrite.
	version, err := s.moderation.CurrentVersion(ctx, postID)
	if err != nil {
		result.Outcome = "rejected"
		result.Cause = moderation.CauseOf(err)
		return result
	}

	newVersion, err := s.moderation.Transition(ctx, TransitionInput{
		PostID:          postID,
		ActorID:         in.ActorID,
		ActorRole:       in.ActorRole,
		TargetStatus:    in.TargetStatus,
		Reason:          in.Reason,
		ExpectedVersion: version,
	})
	if err != nil {
		result.Outcome = "rejected"
		result.Cause = moderation.CauseOf(err)
		return result
	}

	result.Outcome = "applied"
	result.NewVersion = newVersion
	return result
}
