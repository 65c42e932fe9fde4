// Package notification stores in-app notifications.
package notification

import (
	"strings"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Notification is a message shown to the user. Data is arbitrary JSON.
type Notification struct {
	shared.OwnedAggregateRoot
	Title string
	Body  string
	Data  map[string]any
}

// NewNotification creates a notification
func NewNotification(userID uuid.UUID, title, body string, data map[string]any) (*Notification, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	if len(title) > 255 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot exceed 255 characters")
	}
	if data == nil {
		data = map[string]any{}
	}
	return &Notification{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Title:              title,
		Body:               body,
		Data:               data,
	}, nil
}

// Filter narrows notification listings
type Filter struct {
	shared.Filter
}

// Repository persists notifications
type Repository interface {
	shared.OwnedRepository[Notification, Filter]
}
