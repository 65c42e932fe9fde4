package finance

import (
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeExpense is the aggregate type name used in events and the activity log
const AggregateTypeExpense = "expense"

// ExpenseDetails holds the user-editable fields of an expense
type ExpenseDetails struct {
	Name       string
	Amount     decimal.Decimal
	CategoryID *uuid.UUID
	Date       *time.Time
	IsMonthly  bool
	AutoAdd    bool
	DayOfMonth *int
}

// Expense is a single spending record, or a monthly template when
// IsMonthly and AutoAdd are both set.
type Expense struct {
	shared.OwnedAggregateRoot
	ExpenseDetails
	// TemplateID and Period are set on records generated from a template
	TemplateID *uuid.UUID
	Period     string
}

// NewExpense creates a new expense
func NewExpense(userID uuid.UUID, details ExpenseDetails) (*Expense, error) {
	details, err := normalizeExpense(details)
	if err != nil {
		return nil, err
	}

	expense := &Expense{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		ExpenseDetails:     details,
	}
	expense.AddDomainEvent(expense.event("created"))

	return expense, nil
}

// Update replaces the editable fields
func (e *Expense) Update(details ExpenseDetails) error {
	details, err := normalizeExpense(details)
	if err != nil {
		return err
	}
	e.ExpenseDetails = details
	e.Touch()
	e.AddDomainEvent(e.event("updated"))
	return nil
}

// MarkDeleted records the deletion event
func (e *Expense) MarkDeleted() {
	e.AddDomainEvent(e.event("deleted"))
}

// IsTemplate reports whether the expense auto-generates monthly records
func (e *Expense) IsTemplate() bool {
	return e.IsMonthly && e.AutoAdd
}

// IsGenerated reports whether the expense was materialised from a template
func (e *Expense) IsGenerated() bool {
	return e.TemplateID != nil
}

// Materialize builds the dated occurrence of this template for a period
func (e *Expense) Materialize(period shared.Period) (*Expense, error) {
	if !e.IsTemplate() || e.DayOfMonth == nil {
		return nil, shared.NewDomainError("NOT_A_TEMPLATE", "Expense is not a monthly auto-add template")
	}
	date := period.DayDate(*e.DayOfMonth)
	templateID := e.ID

	occurrence, err := NewExpense(e.UserID, ExpenseDetails{
		Name:       e.Name,
		Amount:     e.Amount,
		CategoryID: e.CategoryID,
		Date:       &date,
	})
	if err != nil {
		return nil, err
	}
	occurrence.TemplateID = &templateID
	occurrence.Period = period.String()
	return occurrence, nil
}

func (e *Expense) event(action string) shared.DomainEvent {
	details := map[string]any{"name": e.Name}
	if e.CategoryID != nil {
		details["category_id"] = e.CategoryID.String()
	}
	return shared.NewLifecycleEvent(AggregateTypeExpense, action, e.ID, e.UserID, shared.AmountRef(e.Amount), details)
}

func normalizeExpense(d ExpenseDetails) (ExpenseDetails, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return d, shared.NewDomainError("INVALID_NAME", "Expense name cannot be empty")
	}
	if len(d.Name) > 255 {
		return d, shared.NewDomainError("INVALID_NAME", "Expense name cannot exceed 255 characters")
	}
	if d.Amount.IsNegative() {
		return d, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	if d.IsMonthly && d.AutoAdd {
		if d.DayOfMonth == nil {
			return d, shared.NewDomainError("INVALID_DAY_OF_MONTH", "Day of month is required for monthly auto-add expenses")
		}
		if err := validateDayOfMonth(*d.DayOfMonth); err != nil {
			return d, err
		}
	} else {
		// only meaningful for auto-added monthly templates
		d.DayOfMonth = nil
		if d.Date == nil {
			return d, shared.NewDomainError("INVALID_DATE", "Date is required")
		}
	}

	if d.Date != nil {
		date := shared.DateOf(*d.Date)
		d.Date = &date
	}
	return d, nil
}

func validateDayOfMonth(day int) error {
	if day < 1 || day > 31 {
		return shared.NewDomainError("INVALID_DAY_OF_MONTH", "Day of month must be between 1 and 31")
	}
	return nil
}
