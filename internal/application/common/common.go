// Package common holds helpers shared by the application services.
package common

import (
	"context"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ListQuery holds the paging, search and sort query parameters of list endpoints
type ListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	SortBy   string `form:"sort_by" binding:"omitempty,max=50"`
	SortDir  string `form:"sort_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Limits bounds client-supplied page sizes
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits returns the standard page size limits
func DefaultLimits() Limits {
	return Limits{Default: shared.DefaultPageSize, Max: 200}
}

// Clamp fills in the default page size and caps it at Max
func (l Limits) Clamp(q *ListQuery) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = l.Default
	}
	if l.Max > 0 && q.PageSize > l.Max {
		q.PageSize = l.Max
	}
}

// Filter converts the query to a domain filter. Sort field validation is left
// to the repository whitelist.
func (q ListQuery) Filter(defaultOrder, defaultDir string) shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   strings.TrimSpace(q.Search),
		OrderBy:  defaultOrder,
		OrderDir: defaultDir,
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = shared.DefaultPageSize
	}
	if q.SortBy != "" {
		f.OrderBy = q.SortBy
	}
	if q.SortDir != "" {
		f.OrderDir = strings.ToLower(q.SortDir)
	}
	return f
}

// EventSupport is embedded by services whose aggregates emit domain events
type EventSupport struct {
	eventPublisher shared.EventPublisher
}

// SetEventPublisher sets the event publisher for publishing domain events
func (e *EventSupport) SetEventPublisher(publisher shared.EventPublisher) {
	e.eventPublisher = publisher
}

// PublishEvents publishes and clears the pending events of each aggregate.
// Publishing happens after the write succeeded; errors are logged by the bus.
func (e *EventSupport) PublishEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		if e.eventPublisher != nil {
			_ = e.eventPublisher.Publish(ctx, events...)
		}
		agg.ClearDomainEvents()
	}
}

// ParseOptionalID parses an optional uuid query parameter
func ParseOptionalID(field, s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", field+" must be a valid UUID")
	}
	return &id, nil
}

// ParseOptionalDate parses an optional YYYY-MM-DD query parameter
func ParseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := shared.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FirstNonEmpty returns the first non-blank value, for parameters with aliases
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
