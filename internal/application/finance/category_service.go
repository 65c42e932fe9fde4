package finance

import (
	"context"
	"strings"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles expense category operations
type CategoryService struct {
	common.EventSupport
	categoryRepo finance.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo finance.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a category. Names are unique per user.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, userID, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	category, err := finance.NewCategory(userID, req.Name, req.Icon, req.Color)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	s.PublishEvents(ctx, category)

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List returns the user's categories ordered by name
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]CategoryResponse, len(categories))
	for i := range categories {
		items[i] = ToCategoryResponse(&categories[i])
	}
	return items, nil
}

// Delete removes a category. Expenses that used it keep a null category.
func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	category, err := shared.FindOwned[finance.Category](ctx, s.categoryRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	category.MarkDeleted()
	s.PublishEvents(ctx, category)
	return nil
}
