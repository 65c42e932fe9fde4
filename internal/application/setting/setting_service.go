// Package setting provides the application service for per-user settings.
package setting

import (
	"context"

	"github.com/fintrack/backend/internal/domain/setting"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UpsertSettingsRequest holds the settings to write. Values may be any JSON
// value and are stored as strings.
type UpsertSettingsRequest struct {
	Settings map[string]any `json:"settings" binding:"required"`
}

// SettingResponse represents one setting
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingService handles setting operations
type SettingService struct {
	repo setting.Repository
}

// NewSettingService creates a new SettingService
func NewSettingService(repo setting.Repository) *SettingService {
	return &SettingService{repo: repo}
}

// GetAll returns the user's settings as a key/value map
func (s *SettingService) GetAll(ctx context.Context, userID uuid.UUID) (map[string]string, error) {
	settings, err := s.repo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

// Get returns one setting
func (s *SettingService) Get(ctx context.Context, userID uuid.UUID, key string) (*SettingResponse, error) {
	st, err := s.repo.FindByKey(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, shared.ErrNotFound
	}
	return &SettingResponse{Key: st.Key, Value: st.Value}, nil
}

// Upsert writes every entry of req and returns the resulting map
func (s *SettingService) Upsert(ctx context.Context, userID uuid.UUID, req UpsertSettingsRequest) (map[string]string, error) {
	if len(req.Settings) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one setting is required")
	}
	settings := make([]setting.Setting, 0, len(req.Settings))
	for key, value := range req.Settings {
		st, err := setting.New(userID, key, value)
		if err != nil {
			return nil, err
		}
		settings = append(settings, *st)
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return s.GetAll(ctx, userID)
}

// Delete removes one setting
func (s *SettingService) Delete(ctx context.Context, userID uuid.UUID, key string) error {
	return s.repo.Delete(ctx, userID, key)
}
