package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxPageSize caps client-supplied page sizes
const maxPageSize = 200

// translateError maps driver and gorm errors onto domain sentinels. The
// message check covers connections opened without TranslateError.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"duplicate key", "unique constraint", "sqlstate 23505"} {
		if strings.Contains(msg, marker) {
			return shared.ErrAlreadyExists
		}
	}
	return err
}

// findByID loads one row of model M by primary key
func findByID[M any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*M, error) {
	var model M
	if err := db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &model, nil
}

// deleteByID hard-deletes one row and reports ErrNotFound when nothing matched
func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyPagination limits query to the requested page
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	offset, limit := filter.Window(maxPageSize)
	return query.Offset(offset).Limit(limit)
}

// applySearch adds a case-insensitive substring match over columns
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		conds[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(conds, " OR "), args...)
}

// applyDateRange restricts a date column to an inclusive range
func applyDateRange(query *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where(column+" >= ?", shared.DateOf(*from))
	}
	if to != nil {
		query = query.Where(column+" <= ?", shared.DateOf(*to))
	}
	return query
}

// listPage counts the filtered rows and then loads one page of them
func listPage[M any](query *gorm.DB, filter shared.Filter, order func(*gorm.DB) *gorm.DB) ([]M, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []M
	if err := applyPagination(order(query), filter).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// sumColumn returns COALESCE(SUM(column), 0) over query
func sumColumn(query *gorm.DB, column string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(" + column + "), 0) as total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// sumByMonth totals amountColumn per month of dateColumn within year.
// Rows are bucketed in Go so the query stays portable across dialects.
func sumByMonth(query *gorm.DB, dateColumn, amountColumn string, year int) (map[int]decimal.Decimal, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var rows []struct {
		Day    time.Time
		Amount decimal.Decimal
	}
	err := applyDateRange(query, dateColumn, &from, &to).
		Select(dateColumn + " as day, " + amountColumn + " as amount").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[int]decimal.Decimal, 12)
	for m := 1; m <= 12; m++ {
		totals[m] = decimal.Zero
	}
	for _, r := range rows {
		m := int(r.Day.Month())
		totals[m] = totals[m].Add(r.Amount)
	}
	return totals, nil
}

func toDomainSlice[M any, T any](rows []M, convert func(*M) *T) []T {
	out := make([]T, 0, len(rows))
	for i := range rows {
		out = append(out, *convert(&rows[i]))
	}
	return out
}
