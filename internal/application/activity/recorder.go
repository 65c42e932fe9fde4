package activity

import (
	"context"

	"github.com/fintrack/backend/internal/domain/activity"
	"github.com/fintrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Recorder appends an activity entry for every audited domain event. Its
// errors are returned to the event bus, which logs them without failing the
// publisher.
type Recorder struct {
	repo   activity.Repository
	logger *zap.Logger
}

// NewRecorder creates a Recorder
func NewRecorder(repo activity.Repository, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{repo: repo, logger: logger}
}

// Handle records the event. Events that carry no audit data are skipped.
func (r *Recorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	audited, ok := event.(shared.AuditableEvent)
	if !ok {
		return nil
	}
	entry, err := activity.FromEvent(audited)
	if err != nil {
		return err
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Warn("Failed to record activity",
			zap.String("event_type", event.EventType()),
			zap.String("user_id", audited.UserID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// EventTypes subscribes to every event
func (r *Recorder) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*Recorder)(nil)
