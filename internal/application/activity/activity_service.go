// Package activity provides the activity log service and the event handler
// that fills the log from domain events.
package activity

import (
	"context"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/activity"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ActivityService handles activity log operations
type ActivityService struct {
	repo activity.Repository
}

// NewActivityService creates a new ActivityService
func NewActivityService(repo activity.Repository) *ActivityService {
	return &ActivityService{repo: repo}
}

// List retrieves a page of the user's entries, newest first
func (s *ActivityService) List(ctx context.Context, userID uuid.UUID, q EntryQuery) ([]EntryResponse, int64, error) {
	filter, err := toFilter(q)
	if err != nil {
		return nil, 0, err
	}
	entries, total, err := s.repo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]EntryResponse, len(entries))
	for i := range entries {
		items[i] = ToEntryResponse(&entries[i])
	}
	return items, total, nil
}

// Recent returns the latest entries of the user
func (s *ActivityService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]EntryResponse, error) {
	entries, err := s.repo.FindRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]EntryResponse, len(entries))
	for i := range entries {
		items[i] = ToEntryResponse(&entries[i])
	}
	return items, nil
}

// Create appends an entry
func (s *ActivityService) Create(ctx context.Context, userID uuid.UUID, req CreateEntryRequest) (*EntryResponse, error) {
	entry, err := activity.NewEntry(userID, req.Action, req.EntityType, req.EntityID, req.Details, req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	resp := ToEntryResponse(entry)
	return &resp, nil
}

// Delete removes one of the user's entries
func (s *ActivityService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := shared.FindOwned[activity.Entry](ctx, s.repo, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Clear removes the user's entries matching q. Clearing an empty log deletes nothing.
func (s *ActivityService) Clear(ctx context.Context, userID uuid.UUID, q EntryQuery) (*ClearResult, error) {
	filter, err := toFilter(q)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.DeleteMatching(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return &ClearResult{Deleted: n}, nil
}

func toFilter(q EntryQuery) (activity.Filter, error) {
	from, err := common.ParseOptionalDate(common.FirstNonEmpty(q.From, q.StartDate))
	if err != nil {
		return activity.Filter{}, err
	}
	to, err := common.ParseOptionalDate(common.FirstNonEmpty(q.To, q.EndDate))
	if err != nil {
		return activity.Filter{}, err
	}
	return activity.Filter{
		Filter:     q.Filter("created_at", "desc"),
		Action:     q.Action,
		EntityType: common.FirstNonEmpty(q.EntityType, q.EntityTypeCamel),
		From:       from,
		To:         to,
	}, nil
}
