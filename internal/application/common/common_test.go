package common

import (
	"context"
	"testing"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLimits_Clamp(t *testing.T) {
	l := Limits{Default: 50, Max: 200}

	q := ListQuery{}
	l.Clamp(&q)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 50, q.PageSize)

	q = ListQuery{Page: 3, PageSize: 1000}
	l.Clamp(&q)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 200, q.PageSize)
}

func TestListQuery_Filter(t *testing.T) {
	f := ListQuery{Search: "  rent "}.Filter("date", "desc")
	assert.Equal(t, "date", f.OrderBy)
	assert.Equal(t, "desc", f.OrderDir)
	assert.Equal(t, "rent", f.Search)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, shared.DefaultPageSize, f.PageSize)

	f = ListQuery{Page: 2, PageSize: 10, SortBy: "amount", SortDir: "ASC"}.Filter("date", "desc")
	assert.Equal(t, "amount", f.OrderBy)
	assert.Equal(t, "asc", f.OrderDir)
	assert.Equal(t, 10, f.Offset())
}

func TestEventSupport_PublishEvents(t *testing.T) {
	agg := &shared.OwnedAggregateRoot{}
	agg.AddDomainEvent(shared.NewLifecycleEvent("expense", "created", uuid.New(), uuid.New(), nil, nil))

	var es EventSupport
	es.PublishEvents(context.Background(), agg)
	assert.Empty(t, agg.GetDomainEvents(), "events are cleared without a publisher")

	pub := testutil.NewEventRecorder()
	es.SetEventPublisher(pub)
	agg.AddDomainEvent(shared.NewLifecycleEvent("expense", "updated", uuid.New(), uuid.New(), nil, nil))
	es.PublishEvents(context.Background(), agg)
	assert.Len(t, pub.Events(), 1)
	assert.Equal(t, "expense.updated", pub.Events()[0].EventType())
	assert.Empty(t, agg.GetDomainEvents())
}

func TestParseOptionalID(t *testing.T) {
	id, err := ParseOptionalID("category_id", "")
	assert.NoError(t, err)
	assert.Nil(t, id)

	want := uuid.New()
	id, err = ParseOptionalID("category_id", want.String())
	assert.NoError(t, err)
	assert.Equal(t, want, *id)

	_, err = ParseOptionalID("category_id", "nope")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate(" ")
	assert.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2024-02-29")
	assert.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	_, err = ParseOptionalDate("2024-13-01")
	assert.Error(t, err)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", " ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
}
