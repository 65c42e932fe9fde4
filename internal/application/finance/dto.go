package finance

import (
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Expenses
// ---------------------------------------------------------------------------

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Name       string           `json:"name" binding:"required,min=1,max=255"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	CategoryID *uuid.UUID       `json:"category_id"`
	Date       *common.Date     `json:"date"`
	IsMonthly  bool             `json:"is_monthly"`
	AutoAdd    bool             `json:"auto_add"`
	DayOfMonth *int             `json:"day_of_month" binding:"omitempty,min=1,max=31"`
}

// UpdateExpenseRequest represents a partial expense update. Absent fields stay unchanged.
type UpdateExpenseRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Amount     *decimal.Decimal `json:"amount"`
	CategoryID *uuid.UUID       `json:"category_id"`
	Date       *common.Date     `json:"date"`
	IsMonthly  *bool            `json:"is_monthly"`
	AutoAdd    *bool            `json:"auto_add"`
	DayOfMonth *int             `json:"day_of_month" binding:"omitempty,min=1,max=31"`
}

// ExpenseListQuery holds the expense list filters
type ExpenseListQuery struct {
	common.ListQuery
	CategoryID string `form:"category_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	IsMonthly  *bool  `form:"is_monthly"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Date       *common.Date    `json:"date"`
	IsMonthly  bool            `json:"is_monthly"`
	AutoAdd    bool            `json:"auto_add"`
	DayOfMonth *int            `json:"day_of_month"`
	TemplateID *uuid.UUID      `json:"template_id,omitempty"`
	Period     string          `json:"period,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToExpenseResponse converts a domain expense
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:         e.ID,
		Name:       e.Name,
		Amount:     e.Amount,
		CategoryID: e.CategoryID,
		Date:       common.DatePtr(e.Date),
		IsMonthly:  e.IsMonthly,
		AutoAdd:    e.AutoAdd,
		DayOfMonth: e.DayOfMonth,
		TemplateID: e.TemplateID,
		Period:     e.Period,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Salaries
// ---------------------------------------------------------------------------

// CreateSalaryRequest represents a request to record a salary
type CreateSalaryRequest struct {
	Company       string           `json:"company" binding:"required,min=1,max=255"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	ReceivedDate  *common.Date     `json:"received_date"`
	IsRecurring   bool             `json:"is_recurring"`
	DayOfMonth    *int             `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	CertificateID *uuid.UUID       `json:"certificate_id"`
	Notes         string           `json:"notes" binding:"max=2000"`
}

// UpdateSalaryRequest represents a partial salary update
type UpdateSalaryRequest struct {
	Company       *string          `json:"company" binding:"omitempty,min=1,max=255"`
	Amount        *decimal.Decimal `json:"amount"`
	ReceivedDate  *common.Date     `json:"received_date"`
	IsRecurring   *bool            `json:"is_recurring"`
	DayOfMonth    *int             `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	CertificateID *uuid.UUID       `json:"certificate_id"`
	Notes         *string          `json:"notes" binding:"omitempty,max=2000"`
}

// SalaryListQuery holds the salary list filters
type SalaryListQuery struct {
	common.ListQuery
	From        string `form:"from"`
	To          string `form:"to"`
	IsRecurring *bool  `form:"is_recurring"`
}

// SalaryResponse represents a salary in API responses
type SalaryResponse struct {
	ID            uuid.UUID       `json:"id"`
	Company       string          `json:"company"`
	Amount        decimal.Decimal `json:"amount"`
	ReceivedDate  *common.Date    `json:"received_date"`
	IsRecurring   bool            `json:"is_recurring"`
	DayOfMonth    *int            `json:"day_of_month"`
	CertificateID *uuid.UUID      `json:"certificate_id"`
	Notes         string          `json:"notes"`
	TemplateID    *uuid.UUID      `json:"template_id,omitempty"`
	Period        string          `json:"period,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToSalaryResponse converts a domain salary
func ToSalaryResponse(s *finance.Salary) SalaryResponse {
	return SalaryResponse{
		ID:            s.ID,
		Company:       s.Company,
		Amount:        s.Amount,
		ReceivedDate:  common.DatePtr(s.ReceivedDate),
		IsRecurring:   s.IsRecurring,
		DayOfMonth:    s.DayOfMonth,
		CertificateID: s.CertificateID,
		Notes:         s.Notes,
		TemplateID:    s.TemplateID,
		Period:        s.Period,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// CreateCategoryRequest represents a request to create an expense category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Icon  string `json:"icon" binding:"max=50"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *finance.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Goals
// ---------------------------------------------------------------------------

// CreateGoalRequest represents a request to create a goal
type CreateGoalRequest struct {
	Title           string           `json:"title" binding:"required,min=1,max=255"`
	TargetAmount    *decimal.Decimal `json:"target_amount" binding:"required"`
	CurrentAmount   *decimal.Decimal `json:"current_amount"`
	Deadline        *common.Date     `json:"deadline"`
	ReminderEnabled bool             `json:"reminder_enabled"`
}

// UpdateGoalRequest represents a partial goal update. The saved amount cannot
// be changed here; use AddAmount.
type UpdateGoalRequest struct {
	Title           *string          `json:"title" binding:"omitempty,min=1,max=255"`
	TargetAmount    *decimal.Decimal `json:"target_amount"`
	Deadline        *common.Date     `json:"deadline"`
	ReminderEnabled *bool            `json:"reminder_enabled"`
}

// AddAmountRequest adds money to a goal
type AddAmountRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	Deadline        *common.Date    `json:"deadline"`
	ReminderEnabled bool            `json:"reminder_enabled"`
	Progress        decimal.Decimal `json:"progress"`
	Completed       bool            `json:"completed"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToGoalResponse converts a domain goal
func ToGoalResponse(g *finance.Goal) GoalResponse {
	return GoalResponse{
		ID:              g.ID,
		Title:           g.Title,
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		Deadline:        common.DatePtr(g.Deadline),
		ReminderEnabled: g.ReminderEnabled,
		Progress:        g.Progress(),
		Completed:       g.IsCompleted(),
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Recurring generation
// ---------------------------------------------------------------------------

// GenerateRequest selects the month to materialise. It defaults to the current month.
type GenerateRequest struct {
	Period string `json:"period" binding:"omitempty,period"`
}

// GenerateResult reports what a generation run wrote
type GenerateResult struct {
	Period          string `json:"period"`
	ExpensesCreated int    `json:"expenses_created"`
	SalariesCreated int    `json:"salaries_created"`
	Skipped         int    `json:"skipped"`
}
