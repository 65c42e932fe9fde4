package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/event"
)

func lifecycle(aggType, action string) shared.DomainEvent {
	amount := decimal.NewFromInt(250)
	return shared.NewLifecycleEvent(aggType, action, uuid.New(), uuid.New(), &amount, nil)
}

func TestEventRecorder_Publish(t *testing.T) {
	rec := NewEventRecorder()
	ctx := context.Background()

	require.NoError(t, rec.Publish(ctx, lifecycle("expense", "created"), lifecycle("expense", "deleted")))
	assert.Equal(t, []string{"expense.created", "expense.deleted"}, rec.Types())
	assert.Len(t, rec.Events(), 2)

	rec.FailWith(errors.New("store down"))
	assert.EqualError(t, rec.Publish(ctx, lifecycle("goal", "created")), "store down")
	assert.Len(t, rec.Events(), 3, "failed publishes are still recorded")

	rec.Reset()
	assert.Empty(t, rec.Types())
}

func TestEventRecorder_SubscribedToBus(t *testing.T) {
	bus := event.NewInMemoryEventBus(zap.NewNop())
	all := NewEventRecorder()
	goals := NewEventRecorder("goal.created")
	bus.Subscribe(all)
	bus.Subscribe(goals)

	require.NoError(t, bus.Publish(context.Background(),
		lifecycle("expense", "created"),
		lifecycle("goal", "created"),
	))

	assert.Equal(t, []string{"expense.created", "goal.created"}, all.Types())
	assert.Equal(t, []string{"goal.created"}, goals.Types())
}
