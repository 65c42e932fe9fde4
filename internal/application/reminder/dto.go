package reminder

import (
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/reminder"
	"github.com/google/uuid"
)

// CreateReminderRequest represents a request to create a reminder
type CreateReminderRequest struct {
	Title   string       `json:"title" binding:"required,min=1,max=255"`
	Notes   string       `json:"notes" binding:"max=2000"`
	DueDate *common.Date `json:"due_date"`
}

// UpdateReminderRequest represents a partial reminder update
type UpdateReminderRequest struct {
	Title   *string      `json:"title" binding:"omitempty,min=1,max=255"`
	Notes   *string      `json:"notes" binding:"omitempty,max=2000"`
	DueDate *common.Date `json:"due_date"`
	IsDone  *bool        `json:"is_done"`
}

// ReminderListQuery holds the reminder list filters
type ReminderListQuery struct {
	common.ListQuery
	IsDone   *bool `form:"is_done"`
	Upcoming bool  `form:"upcoming"`
}

// ReminderResponse represents a reminder
type ReminderResponse struct {
	ID        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Notes     string       `json:"notes"`
	DueDate   *common.Date `json:"due_date"`
	IsDone    bool         `json:"is_done"`
	Overdue   bool         `json:"overdue"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ToReminderResponse converts a reminder
func ToReminderResponse(r *reminder.Reminder, today time.Time) ReminderResponse {
	return ReminderResponse{
		ID:        r.ID,
		Title:     r.Title,
		Notes:     r.Notes,
		DueDate:   common.DatePtr(r.DueDate),
		IsDone:    r.IsDone,
		Overdue:   r.IsOverdue(today),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
