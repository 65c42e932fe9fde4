package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoal(t *testing.T) {
	userID := uuid.New()

	t.Run("progress and completion", func(t *testing.T) {
		g, err := NewGoal(userID, "Car", decimal.NewFromInt(1000), decimal.NewFromInt(250), nil, false)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(25).Equal(g.Progress()))
		assert.False(t, g.IsCompleted())

		require.NoError(t, g.AddAmount(decimal.NewFromInt(1000)))
		assert.True(t, decimal.NewFromInt(1250).Equal(g.CurrentAmount))
		assert.True(t, decimal.NewFromInt(100).Equal(g.Progress()), "progress is capped")
		assert.True(t, g.IsCompleted())
	})

	t.Run("add amount must be positive", func(t *testing.T) {
		g, err := NewGoal(userID, "Trip", decimal.NewFromInt(500), decimal.Zero, nil, true)
		require.NoError(t, err)
		assert.Error(t, g.AddAmount(decimal.Zero))
		assert.Error(t, g.AddAmount(decimal.NewFromInt(-5)))
		assert.True(t, g.CurrentAmount.IsZero())
	})

	t.Run("update keeps current amount", func(t *testing.T) {
		g, err := NewGoal(userID, "House", decimal.NewFromInt(500), decimal.NewFromInt(100), nil, false)
		require.NoError(t, err)
		require.NoError(t, g.Update("Bigger house", decimal.NewFromInt(900), nil, true))
		assert.True(t, decimal.NewFromInt(100).Equal(g.CurrentAmount))
		assert.Equal(t, "Bigger house", g.Title)
		assert.True(t, g.ReminderEnabled)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := NewGoal(userID, "", decimal.NewFromInt(1), decimal.Zero, nil, false)
		assert.Error(t, err)
		_, err = NewGoal(userID, "x", decimal.Zero, decimal.Zero, nil, false)
		assert.Error(t, err)
		_, err = NewGoal(userID, "x", decimal.NewFromInt(1), decimal.NewFromInt(-1), nil, false)
		assert.Error(t, err)
	})
}

func TestCategory(t *testing.T) {
	userID := uuid.New()

	c, err := NewCategory(userID, " Pets ", "paw", "#AABBCC")
	require.NoError(t, err)
	assert.Equal(t, "Pets", c.Name)
	assert.False(t, c.IsDefault)

	_, err = NewCategory(userID, "Pets", "", "blue")
	assert.Error(t, err)

	defaults := DefaultCategories(userID)
	assert.NotEmpty(t, defaults)
	for _, d := range defaults {
		assert.True(t, d.IsDefault)
		assert.Equal(t, userID, d.UserID)
	}
}
