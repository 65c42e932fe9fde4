package finance

import (
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeGoal is the aggregate type name used in events and the activity log
const AggregateTypeGoal = "goal"

var hundred = decimal.NewFromInt(100)

// Goal is a savings target. CurrentAmount only grows, through AddAmount.
type Goal struct {
	shared.OwnedAggregateRoot
	Title           string
	TargetAmount    decimal.Decimal
	CurrentAmount   decimal.Decimal
	Deadline        *time.Time
	ReminderEnabled bool
}

// NewGoal creates a goal. The initial amount may be zero.
func NewGoal(userID uuid.UUID, title string, target, initial decimal.Decimal, deadline *time.Time, reminder bool) (*Goal, error) {
	if initial.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Current amount cannot be negative")
	}
	goal := &Goal{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		CurrentAmount:      initial,
	}
	if err := goal.apply(title, target, deadline, reminder); err != nil {
		return nil, err
	}
	goal.AddDomainEvent(goal.event("created", goal.TargetAmount))
	return goal, nil
}

// Update edits the goal definition. It never touches CurrentAmount.
func (g *Goal) Update(title string, target decimal.Decimal, deadline *time.Time, reminder bool) error {
	if err := g.apply(title, target, deadline, reminder); err != nil {
		return err
	}
	g.Touch()
	g.AddDomainEvent(g.event("updated", g.TargetAmount))
	return nil
}

// AddAmount increases the saved amount
func (g *Goal) AddAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.Touch()
	g.AddDomainEvent(g.event("amount_added", amount))
	return nil
}

// MarkDeleted records the deletion event
func (g *Goal) MarkDeleted() {
	g.AddDomainEvent(g.event("deleted", g.CurrentAmount))
}

// Progress returns the completion percentage, capped at 100
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).Round(2)
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// IsCompleted reports whether the target has been reached
func (g *Goal) IsCompleted() bool {
	return g.TargetAmount.IsPositive() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

func (g *Goal) apply(title string, target decimal.Decimal, deadline *time.Time, reminder bool) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Goal title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Goal title cannot exceed 255 characters")
	}
	if !target.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Target amount must be positive")
	}
	g.Title = title
	g.TargetAmount = target
	if deadline != nil {
		d := shared.DateOf(*deadline)
		deadline = &d
	}
	g.Deadline = deadline
	g.ReminderEnabled = reminder
	return nil
}

func (g *Goal) event(action string, amount decimal.Decimal) shared.DomainEvent {
	return shared.NewLifecycleEvent(AggregateTypeGoal, action, g.ID, g.UserID, shared.AmountRef(amount), map[string]any{
		"title": g.Title,
	})
}
