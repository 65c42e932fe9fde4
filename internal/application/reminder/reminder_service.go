// Package reminder provides the application service for reminders.
package reminder

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/reminder"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// ReminderService handles reminder operations
type ReminderService struct {
	common.EventSupport
	repo         reminder.Repository
	upcomingDays int
	now          func() time.Time
}

// NewReminderService creates a new ReminderService. upcomingDays bounds the
// upcoming listing; a non-positive value falls back to reminder.UpcomingWindowDays.
func NewReminderService(repo reminder.Repository, upcomingDays int) *ReminderService {
	if upcomingDays <= 0 {
		upcomingDays = reminder.UpcomingWindowDays
	}
	return &ReminderService{
		repo:         repo,
		upcomingDays: upcomingDays,
		now:          time.Now,
	}
}

// Create creates a reminder
func (s *ReminderService) Create(ctx context.Context, userID uuid.UUID, req CreateReminderRequest) (*ReminderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reminder", "create")
	defer span.End()

	r, err := reminder.NewReminder(userID, req.Title, req.Notes, req.DueDate.TimePtr())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, r)

	resp := ToReminderResponse(r, s.now())
	return &resp, nil
}

// GetByID retrieves one reminder
func (s *ReminderService) GetByID(ctx context.Context, userID, id uuid.UUID) (*ReminderResponse, error) {
	r, err := shared.FindOwned[reminder.Reminder](ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToReminderResponse(r, s.now())
	return &resp, nil
}

// List retrieves the user's reminders ordered by due date. With Upcoming set
// it returns the open reminders due within the upcoming window instead.
func (s *ReminderService) List(ctx context.Context, userID uuid.UUID, q ReminderListQuery) ([]ReminderResponse, int64, error) {
	if q.Upcoming {
		items, err := s.Upcoming(ctx, userID)
		if err != nil {
			return nil, 0, err
		}
		return items, int64(len(items)), nil
	}

	reminders, total, err := s.repo.FindAllForUser(ctx, userID, reminder.Filter{
		Filter: q.Filter("due_date", "asc"),
		IsDone: q.IsDone,
	})
	if err != nil {
		return nil, 0, err
	}
	return s.toResponses(reminders), total, nil
}

// Upcoming lists the open reminders due between today and the end of the window
func (s *ReminderService) Upcoming(ctx context.Context, userID uuid.UUID) ([]ReminderResponse, error) {
	today := shared.DateOf(s.now())
	reminders, err := s.repo.FindUpcoming(ctx, userID, today, today.AddDate(0, 0, s.upcomingDays))
	if err != nil {
		return nil, err
	}
	return s.toResponses(reminders), nil
}

// Update applies the present fields of req to a reminder
func (s *ReminderService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateReminderRequest) (*ReminderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reminder", "update")
	defer span.End()

	r, err := shared.FindOwned[reminder.Reminder](ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}

	title, notes, due, done := r.Title, r.Notes, r.DueDate, r.IsDone
	if req.Title != nil {
		title = *req.Title
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if req.DueDate != nil {
		due = req.DueDate.TimePtr()
	}
	if req.IsDone != nil {
		done = *req.IsDone
	}

	if err := r.Update(title, notes, due, done); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, r)

	resp := ToReminderResponse(r, s.now())
	return &resp, nil
}

// ToggleDone flips the done flag of a reminder
func (s *ReminderService) ToggleDone(ctx context.Context, userID, id uuid.UUID) (*ReminderResponse, error) {
	r, err := shared.FindOwned[reminder.Reminder](ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}
	r.ToggleDone()
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	s.PublishEvents(ctx, r)

	resp := ToReminderResponse(r, s.now())
	return &resp, nil
}

// Delete removes a reminder
func (s *ReminderService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r, err := shared.FindOwned[reminder.Reminder](ctx, s.repo, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.MarkDeleted()
	s.PublishEvents(ctx, r)
	return nil
}

func (s *ReminderService) toResponses(reminders []reminder.Reminder) []ReminderResponse {
	today := s.now()
	items := make([]ReminderResponse, len(reminders))
	for i := range reminders {
		items[i] = ToReminderResponse(&reminders[i], today)
	}
	return items
}
