package finance

import (
	"regexp"
	"strings"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeCategory is the aggregate type name used in events and the activity log
const AggregateTypeCategory = "expense_category"

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

// Category groups expenses
type Category struct {
	shared.OwnedAggregateRoot
	Name      string
	Icon      string
	Color     string
	IsDefault bool
}

// NewCategory creates a user category
func NewCategory(userID uuid.UUID, name, icon, color string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	if color != "" && !hexColorRegex.MatchString(color) {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #ff8800")
	}

	category := &Category{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Icon:               strings.TrimSpace(icon),
		Color:              color,
	}
	category.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCategory, "created", category.ID, userID, nil, map[string]any{
		"name": category.Name,
	}))
	return category, nil
}

// MarkDeleted records the deletion event
func (c *Category) MarkDeleted() {
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCategory, "deleted", c.ID, c.UserID, nil, map[string]any{
		"name": c.Name,
	}))
}

type defaultCategory struct {
	name, icon, color string
}

var defaultCategories = []defaultCategory{
	{"Food", "utensils", "#f97316"},
	{"Transport", "car", "#3b82f6"},
	{"Bills", "file-invoice", "#ef4444"},
	{"Shopping", "shopping-bag", "#a855f7"},
	{"Health", "heart-pulse", "#10b981"},
	{"Entertainment", "film", "#eab308"},
	{"Education", "book", "#6366f1"},
	{"Other", "ellipsis", "#6b7280"},
}

// DefaultCategories builds the categories seeded for a new user
func DefaultCategories(userID uuid.UUID) []*Category {
	categories := make([]*Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		c := &Category{
			OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
			Name:               d.name,
			Icon:               d.icon,
			Color:              d.color,
			IsDefault:          true,
		}
		categories = append(categories, c)
	}
	return categories
}
