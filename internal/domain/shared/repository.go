package shared

import (
	"context"

	"github.com/google/uuid"
)

// DefaultPageSize applies when a list request names no page size
const DefaultPageSize = 50

// Finder loads one record by primary key
type Finder[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
}

// OwnedRepository is embedded by every repository of user-owned records.
// FindByID is not scoped to a user; callers go through FindOwned.
type OwnedRepository[T any, F any] interface {
	Finder[T]
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter F) ([]T, int64, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FindOwned returns the record only when userID owns it: ErrNotFound when
// it is missing, ErrForbidden when it belongs to someone else.
func FindOwned[T any, PT interface {
	*T
	Owned
}](ctx context.Context, repo Finder[T], id, userID uuid.UUID) (*T, error) {
	record, err := repo.FindByID(ctx, id)
	switch {
	case err != nil:
		return nil, err
	case record == nil:
		return nil, ErrNotFound
	}
	return record, EnsureOwner(PT(record), userID)
}

// Filter carries the paging, ordering and search options every list
// query accepts. Domain filters embed it.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// DefaultFilter is the first page, newest first.
func DefaultFilter() Filter {
	return Filter{Page: 1, PageSize: DefaultPageSize, OrderBy: "created_at", OrderDir: "desc"}
}

// Window returns the offset and limit of the requested page. A positive
// maxSize caps the page size.
func (f Filter) Window(maxSize int) (offset, limit int) {
	limit = f.PageSize
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if maxSize > 0 && limit > maxSize {
		limit = maxSize
	}
	if f.Page > 1 {
		offset = (f.Page - 1) * limit
	}
	return offset, limit
}

// Offset is the row offset of the requested page
func (f Filter) Offset() int {
	offset, _ := f.Window(0)
	return offset
}
