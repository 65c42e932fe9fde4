package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortSpec_Resolve(t *testing.T) {
	tests := []struct {
		name             string
		orderBy, dir     string
		wantField, wantD string
	}{
		{"defaults", "", "", "date", "DESC"},
		{"known column", "amount", "asc", "amount", "ASC"},
		{"common column", "created_at", "", "created_at", "DESC"},
		{"trimmed", "  name ", " ASC ", "name", "ASC"},
		{"case sensitive column", "AMOUNT", "", "date", "DESC"},
		{"owner column is not sortable", "user_id", "", "date", "DESC"},
		{"unknown direction", "amount", "sideways", "amount", "DESC"},
		{"injected column", "amount; DROP TABLE expenses;--", "", "date", "DESC"},
		{"injected direction", "", "ASC; DROP TABLE expenses", "date", "DESC"},
		{"subquery", "(SELECT password_hash FROM users)", "", "date", "DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, dir := expenseSort.resolve(tt.orderBy, tt.dir)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantD, dir)
		})
	}
}

func TestSortSpec_DefaultDirection(t *testing.T) {
	field, dir := reminderSort.resolve("", "")
	assert.Equal(t, "due_date", field)
	assert.Equal(t, "ASC", dir)

	_, dir = reminderSort.resolve("title", "desc")
	assert.Equal(t, "DESC", dir)
}

func TestSortSpec_ActivityHasNoTimestampExtras(t *testing.T) {
	field, _ := activitySort.resolve("updated_at", "")
	assert.Equal(t, "created_at", field)

	field, _ = activitySort.resolve("entity_type", "")
	assert.Equal(t, "entity_type", field)
}

func TestSortable_AlwaysAllowsCommonColumns(t *testing.T) {
	for _, spec := range []sortSpec{salarySort, certificateSort, goldSaleSort, paymentSort, notificationSort} {
		for _, c := range []string{"id", "created_at", "updated_at", spec.field} {
			assert.True(t, spec.columns[c], c)
		}
	}
}
