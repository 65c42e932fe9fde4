package persistence

import (
	"strings"

	"github.com/fintrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// sortSpec is the set of columns a listing may be ordered by, plus the
// order used when the client asks for nothing or for something unknown.
// Column names never reach SQL unless they are in the set.
type sortSpec struct {
	columns map[string]bool
	field   string
	dir     string
}

// sortable builds a spec that also allows id and the timestamp columns
func sortable(field, dir string, columns ...string) sortSpec {
	return newSortSpec(field, dir, append([]string{"id", "created_at", "updated_at"}, columns...)...)
}

func newSortSpec(field, dir string, columns ...string) sortSpec {
	set := make(map[string]bool, len(columns)+1)
	for _, c := range columns {
		set[c] = true
	}
	set[field] = true
	return sortSpec{columns: set, field: field, dir: dir}
}

// resolve returns the column and direction to order by. Unknown columns
// fall back to the default. Any direction other than asc means DESC.
func (s sortSpec) resolve(orderBy, orderDir string) (string, string) {
	field := s.field
	if c := strings.TrimSpace(orderBy); s.columns[c] {
		field = c
	}

	dir := s.dir
	if d := strings.TrimSpace(orderDir); d != "" {
		dir = "DESC"
		if strings.EqualFold(d, "asc") {
			dir = "ASC"
		}
	}
	return field, dir
}

// apply orders query per filter. The id is a tiebreaker so pages are stable.
func (s sortSpec) apply(query *gorm.DB, filter shared.Filter) *gorm.DB {
	field, dir := s.resolve(filter.OrderBy, filter.OrderDir)
	return query.Order(field + " " + dir).Order("id " + dir)
}

var (
	expenseSort      = sortable("date", "DESC", "amount", "name")
	salarySort       = sortable("received_date", "DESC", "amount", "company")
	certificateSort  = sortable("created_at", "DESC", "bank_name", "amount", "deposit_date", "maturity_date")
	withdrawalSort   = sortable("date", "DESC", "amount", "is_repaid")
	goldPurchaseSort = sortable("purchase_date", "DESC", "grams", "price_per_gram", "invoice_value")
	goldSaleSort     = sortable("sale_date", "DESC", "sale_value", "profit_loss")
	revenueSort      = sortable("date", "DESC", "amount", "client", "title")
	paymentSort      = sortable("date", "DESC", "amount")
	subscriptionSort = sortable("created_at", "DESC", "start_date", "end_date", "amount", "plan")
	reminderSort     = sortable("due_date", "ASC", "title")
	notificationSort = sortable("created_at", "DESC")
	activitySort     = newSortSpec("created_at", "DESC", "action", "entity_type")
)
