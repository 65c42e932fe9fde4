// Package reminder holds dated to-do items.
package reminder

import (
	"context"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeReminder is the aggregate type name used in events and the activity log
const AggregateTypeReminder = "reminder"

// UpcomingWindowDays bounds the upcoming reminder listing
const UpcomingWindowDays = 7

// Reminder is a titled note due on a date
type Reminder struct {
	shared.OwnedAggregateRoot
	Title   string
	Notes   string
	DueDate *time.Time
	IsDone  bool
}

// NewReminder creates a reminder
func NewReminder(userID uuid.UUID, title, notes string, dueDate *time.Time) (*Reminder, error) {
	r := &Reminder{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID)}
	if err := r.apply(title, notes, dueDate); err != nil {
		return nil, err
	}
	r.AddDomainEvent(r.event("created"))
	return r, nil
}

// Update edits the reminder
func (r *Reminder) Update(title, notes string, dueDate *time.Time, isDone bool) error {
	if err := r.apply(title, notes, dueDate); err != nil {
		return err
	}
	r.IsDone = isDone
	r.Touch()
	r.AddDomainEvent(r.event("updated"))
	return nil
}

// ToggleDone flips the done flag
func (r *Reminder) ToggleDone() {
	r.IsDone = !r.IsDone
	r.Touch()
	action := "reopened"
	if r.IsDone {
		action = "done"
	}
	r.AddDomainEvent(r.event(action))
}

// MarkDeleted records the deletion event
func (r *Reminder) MarkDeleted() {
	r.AddDomainEvent(r.event("deleted"))
}

// IsOverdue reports whether an open reminder is past its due date
func (r *Reminder) IsOverdue(today time.Time) bool {
	return !r.IsDone && r.DueDate != nil && r.DueDate.Before(shared.DateOf(today))
}

func (r *Reminder) apply(title, notes string, dueDate *time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Reminder title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Reminder title cannot exceed 255 characters")
	}
	if dueDate != nil {
		d := shared.DateOf(*dueDate)
		dueDate = &d
	}
	r.Title = title
	r.Notes = notes
	r.DueDate = dueDate
	return nil
}

func (r *Reminder) event(action string) shared.DomainEvent {
	return shared.NewLifecycleEvent(AggregateTypeReminder, action, r.ID, r.UserID, nil, map[string]any{
		"title": r.Title,
	})
}

// Filter narrows reminder listings
type Filter struct {
	shared.Filter
	IsDone *bool
	// DueBefore restricts to reminders due on or before the date
	DueBefore *time.Time
}

// Repository persists reminders
type Repository interface {
	shared.OwnedRepository[Reminder, Filter]
	// FindUpcoming lists open reminders due between today and until, inclusive
	FindUpcoming(ctx context.Context, userID uuid.UUID, today, until time.Time) ([]Reminder, error)
}
