package service

import (
	"github.com/campuslog/internal/moderation"
	"go.uber.org/zap"
)

// StatusChangeEvent is emitted after a transition to published or rejected
// commits, so an external notifier can tell the author. Delivery failure
// never rolls back the transition.
type StatusChangeEvent struct {
	PostID   uint
	ToStatus moderation.Status
	Reason   string
}

// Notifier consumes status change events. Implementations must be safe for
// concurrent use; the moderation service invokes them from short-lived
// goroutines after commit.
type Notifier interface {
	NotifyStatusChange(evt StatusChangeEvent)
}

// LogNotifier is the default Notifier: it records the event and nothing
// else. Real delivery (email, in-app) lives outside this service.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyStatusChange(evt StatusChangeEvent) {
	n.log.Info("post status changed",
		zap.Uint("post_id", evt.PostID),
		zap.String("to_status", string(evt.ToStatus)),
		zap.String("reason", evt.Reason),
	)
}
