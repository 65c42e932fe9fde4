package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/reminder"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReminderRepository is a mock implementation of reminder.Repository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*reminder.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reminder.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter reminder.Filter) ([]reminder.Reminder, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]reminder.Reminder), args.Get(1).(int64), args.Error(2)
}

func (m *MockReminderRepository) FindUpcoming(ctx context.Context, userID uuid.UUID, today, until time.Time) ([]reminder.Reminder, error) {
	args := m.Called(ctx, userID, today, until)
	return args.Get(0).([]reminder.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Save(ctx context.Context, r *reminder.Reminder) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var reminderNow = time.Date(2024, time.July, 15, 9, 30, 0, 0, time.UTC)

func newTestService(repo reminder.Repository, days int) *ReminderService {
	svc := NewReminderService(repo, days)
	svc.now = func() time.Time { return reminderNow }
	return svc
}

func TestReminderService_Upcoming_Window(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

	repo := new(MockReminderRepository)
	repo.On("FindUpcoming", mock.Anything, userID, today, today.AddDate(0, 0, 7)).Return([]reminder.Reminder{}, nil).Once()
	repo.On("FindUpcoming", mock.Anything, userID, today, today.AddDate(0, 0, 3)).Return([]reminder.Reminder{}, nil).Once()

	items, total, err := newTestService(repo, 0).List(context.Background(), userID, ReminderListQuery{Upcoming: true})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)

	_, err = newTestService(repo, 3).Upcoming(context.Background(), userID)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReminderService_List_OrderedByDueDate(t *testing.T) {
	userID := uuid.New()
	repo := new(MockReminderRepository)
	repo.On("FindAllForUser", mock.Anything, userID, mock.MatchedBy(func(f reminder.Filter) bool {
		return f.OrderBy == "due_date" && f.OrderDir == "asc" && f.IsDone != nil && !*f.IsDone
	})).Return([]reminder.Reminder{}, int64(0), nil)

	open := false
	_, _, err := newTestService(repo, 7).List(context.Background(), userID, ReminderListQuery{IsDone: &open})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReminderService_ToggleDone(t *testing.T) {
	userID := uuid.New()
	r, err := reminder.NewReminder(userID, "Pay rent", "", nil)
	require.NoError(t, err)
	r.ClearDomainEvents()

	repo := new(MockReminderRepository)
	repo.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	repo.On("Save", mock.Anything, r).Return(nil)
	svc := newTestService(repo, 7)

	resp, err := svc.ToggleDone(context.Background(), userID, r.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsDone)

	resp, err = svc.ToggleDone(context.Background(), userID, r.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsDone)

	_, err = svc.ToggleDone(context.Background(), uuid.New(), r.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestReminderService_CreateAndUpdate(t *testing.T) {
	userID := uuid.New()
	repo := new(MockReminderRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*reminder.Reminder")).Return(nil)
	svc := newTestService(repo, 7)

	past := common.NewDate(reminderNow.AddDate(0, 0, -2))
	created, err := svc.Create(context.Background(), userID, CreateReminderRequest{Title: "Renew card", DueDate: &past})
	require.NoError(t, err)
	assert.True(t, created.Overdue)

	_, err = svc.Create(context.Background(), userID, CreateReminderRequest{Title: "   "})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TITLE", domainErr.Code)

	r, err := reminder.NewReminder(userID, "Renew card", "", past.TimePtr())
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, r.ID).Return(r, nil)

	done := true
	updated, err := svc.Update(context.Background(), userID, r.ID, UpdateReminderRequest{IsDone: &done})
	require.NoError(t, err)
	assert.True(t, updated.IsDone)
	assert.False(t, updated.Overdue)
	assert.Equal(t, "Renew card", updated.Title)
}
