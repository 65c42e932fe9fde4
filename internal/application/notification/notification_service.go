// Package notification provides the application service for in-app notifications.
package notification

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/notification"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
	Title string         `json:"title" binding:"required,min=1,max=255"`
	Body  string         `json:"body" binding:"max=5000"`
	Data  map[string]any `json:"data"`
}

// NotificationResponse represents a notification
type NotificationResponse struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

// ToNotificationResponse converts a notification
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationService handles notification operations
type NotificationService struct {
	repo notification.Repository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Create stores a notification
func (s *NotificationService) Create(ctx context.Context, userID uuid.UUID, req CreateNotificationRequest) (*NotificationResponse, error) {
	n, err := notification.NewNotification(userID, req.Title, req.Body, req.Data)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	resp := ToNotificationResponse(n)
	return &resp, nil
}

// GetByID retrieves one notification
func (s *NotificationService) GetByID(ctx context.Context, userID, id uuid.UUID) (*NotificationResponse, error) {
	n, err := shared.FindOwned[notification.Notification](ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToNotificationResponse(n)
	return &resp, nil
}

// List retrieves a page of the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, q common.ListQuery) ([]NotificationResponse, int64, error) {
	q.SortBy, q.SortDir = "", ""
	items, total, err := s.repo.FindAllForUser(ctx, userID, notification.Filter{Filter: q.Filter("created_at", "desc")})
	if err != nil {
		return nil, 0, err
	}
	out := make([]NotificationResponse, len(items))
	for i := range items {
		out[i] = ToNotificationResponse(&items[i])
	}
	return out, total, nil
}

// Delete removes a notification
func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := shared.FindOwned[notification.Notification](ctx, s.repo, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
