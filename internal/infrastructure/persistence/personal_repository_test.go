package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/activity"
	"github.com/fintrack/backend/internal/domain/reminder"
	"github.com/fintrack/backend/internal/domain/setting"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReminderRepository_FindUpcoming(t *testing.T) {
	ctx := context.Background()
	repo := NewGormReminderRepository(newTestDB(t))
	userID := uuid.New()
	today := date(2024, time.June, 10)

	add := func(title string, due *time.Time, done bool) *reminder.Reminder {
		r, err := reminder.NewReminder(userID, title, "", due)
		require.NoError(t, err)
		r.IsDone = done
		require.NoError(t, repo.Save(ctx, r))
		return r
	}
	add("overdue", datePtr(2024, time.June, 9), false)
	add("today", datePtr(2024, time.June, 10), false)
	add("next week", datePtr(2024, time.June, 17), false)
	add("too far", datePtr(2024, time.June, 18), false)
	add("finished", datePtr(2024, time.June, 12), true)
	add("undated", nil, false)

	upcoming, err := repo.FindUpcoming(ctx, userID, today, today.AddDate(0, 0, reminder.UpcomingWindowDays))
	require.NoError(t, err)
	titles := make([]string, 0, len(upcoming))
	for _, r := range upcoming {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"today", "next week"}, titles)

	open, total, err := repo.FindAllForUser(ctx, userID, reminder.Filter{
		Filter: shared.Filter{Page: 1, PageSize: 50},
		IsDone: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	// undated reminders sort after dated ones
	assert.Equal(t, "undated", open[len(open)-1].Title)
}

func TestGormActivityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormActivityRepository(newTestDB(t))
	userID := uuid.New()

	record := func(action, entityType string, at time.Time) {
		amount := decimal.NewFromInt(10)
		e, err := activity.NewEntry(userID, action, entityType, nil, map[string]any{"name": action}, &amount)
		require.NoError(t, err)
		e.CreatedAt = at
		require.NoError(t, repo.Create(ctx, e))
	}
	record("created", "expense", time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))
	record("deleted", "expense", time.Date(2024, time.March, 2, 23, 30, 0, 0, time.UTC))
	record("created", "salary", time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC))

	t.Run("recent newest first", func(t *testing.T) {
		recent, err := repo.FindRecent(ctx, userID, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "salary", recent[0].EntityType)
		assert.Equal(t, "name", firstKey(recent[0].Details))
		require.NotNil(t, recent[0].Amount)
	})

	t.Run("filters by entity type and inclusive date", func(t *testing.T) {
		entries, total, err := repo.FindAllForUser(ctx, userID, activity.Filter{
			Filter:     shared.Filter{Page: 1, PageSize: 50},
			EntityType: "expense",
			To:         datePtr(2024, time.March, 2),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "deleted", entries[0].Action)
	})

	t.Run("delete matching is idempotent", func(t *testing.T) {
		filter := activity.Filter{Action: "created"}
		n, err := repo.DeleteMatching(ctx, userID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = repo.DeleteMatching(ctx, userID, filter)
		require.NoError(t, err)
		assert.Zero(t, n)

		_, total, err := repo.FindAllForUser(ctx, userID, activity.Filter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func firstKey(m map[string]any) string {
	for k := range m {
		return k
	}
	return ""
}

func TestGormSettingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormSettingRepository(newTestDB(t))
	userID := uuid.New()

	theme, err := setting.New(userID, "theme", "dark")
	require.NoError(t, err)
	currency, err := setting.New(userID, "currency", "EGP")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, []setting.Setting{*theme, *currency}))

	light, err := setting.New(userID, "theme", "light")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, []setting.Setting{*light}))

	all, err := repo.FindAllForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "currency", all[0].Key)
	assert.Equal(t, "light", all[1].Value)

	got, err := repo.FindByKey(ctx, userID, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", got.Value)

	require.NoError(t, repo.Delete(ctx, userID, "theme"))
	assert.ErrorIs(t, repo.Delete(ctx, userID, "theme"), shared.ErrNotFound)
	_, err = repo.FindByKey(ctx, userID, "theme")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
