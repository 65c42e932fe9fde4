package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense aggregate.
type ExpenseModel struct {
	OwnedModel
	Name       string          `gorm:"type:varchar(255);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Date       *time.Time      `gorm:"type:date;index"`
	IsMonthly  bool            `gorm:"not null;default:false"`
	AutoAdd    bool            `gorm:"not null;default:false"`
	DayOfMonth *int
	TemplateID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_expenses_template_period"`
	Period     string     `gorm:"type:varchar(7);not null;default:'';uniqueIndex:idx_expenses_template_period"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		OwnedAggregateRoot: m.ToOwned(),
		ExpenseDetails: finance.ExpenseDetails{
			Name:       m.Name,
			Amount:     m.Amount,
			CategoryID: m.CategoryID,
			Date:       m.Date,
			IsMonthly:  m.IsMonthly,
			AutoAdd:    m.AutoAdd,
			DayOfMonth: m.DayOfMonth,
		},
		TemplateID: m.TemplateID,
		Period:     m.Period,
	}
}

// FromDomain populates the persistence model from a domain Expense.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.SetOwned(e.OwnedAggregateRoot)
	m.Name = e.Name
	m.Amount = e.Amount
	m.CategoryID = e.CategoryID
	m.Date = e.Date
	m.IsMonthly = e.IsMonthly
	m.AutoAdd = e.AutoAdd
	m.DayOfMonth = e.DayOfMonth
	m.TemplateID = e.TemplateID
	m.Period = e.Period
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// SalaryModel is the persistence model for the Salary aggregate.
type SalaryModel struct {
	OwnedModel
	Company       string          `gorm:"type:varchar(255);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedDate  *time.Time      `gorm:"type:date;index"`
	IsRecurring   bool            `gorm:"not null;default:false"`
	DayOfMonth    *int
	CertificateID *uuid.UUID `gorm:"type:uuid;index"`
	Notes         string     `gorm:"type:text"`
	TemplateID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_salaries_template_period"`
	Period        string     `gorm:"type:varchar(7);not null;default:'';uniqueIndex:idx_salaries_template_period"`
}

// TableName returns the table name for GORM
func (SalaryModel) TableName() string {
	return "salaries"
}

// ToDomain converts the persistence model to a domain Salary.
func (m *SalaryModel) ToDomain() *finance.Salary {
	return &finance.Salary{
		OwnedAggregateRoot: m.ToOwned(),
		SalaryDetails: finance.SalaryDetails{
			Company:       m.Company,
			Amount:        m.Amount,
			ReceivedDate:  m.ReceivedDate,
			IsRecurring:   m.IsRecurring,
			DayOfMonth:    m.DayOfMonth,
			CertificateID: m.CertificateID,
			Notes:         m.Notes,
		},
		TemplateID: m.TemplateID,
		Period:     m.Period,
	}
}

// FromDomain populates the persistence model from a domain Salary.
func (m *SalaryModel) FromDomain(s *finance.Salary) {
	m.SetOwned(s.OwnedAggregateRoot)
	m.Company = s.Company
	m.Amount = s.Amount
	m.ReceivedDate = s.ReceivedDate
	m.IsRecurring = s.IsRecurring
	m.DayOfMonth = s.DayOfMonth
	m.CertificateID = s.CertificateID
	m.Notes = s.Notes
	m.TemplateID = s.TemplateID
	m.Period = s.Period
}

// SalaryModelFromDomain creates a new persistence model from a domain Salary.
func SalaryModelFromDomain(s *finance.Salary) *SalaryModel {
	m := &SalaryModel{}
	m.FromDomain(s)
	return m
}

// CategoryModel is the persistence model for expense categories.
type CategoryModel struct {
	OwnedModel
	Name      string `gorm:"type:varchar(100);not null"`
	Icon      string `gorm:"type:varchar(50)"`
	Color     string `gorm:"type:varchar(7)"`
	IsDefault bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *CategoryModel) ToDomain() *finance.Category {
	return &finance.Category{
		OwnedAggregateRoot: m.ToOwned(),
		Name:               m.Name,
		Icon:               m.Icon,
		Color:              m.Color,
		IsDefault:          m.IsDefault,
	}
}

// CategoryModelFromDomain creates a new persistence model from a domain Category.
func CategoryModelFromDomain(c *finance.Category) *CategoryModel {
	m := &CategoryModel{
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		IsDefault: c.IsDefault,
	}
	m.SetOwned(c.OwnedAggregateRoot)
	return m
}

// GoalModel is the persistence model for financial goals.
type GoalModel struct {
	OwnedModel
	Title           string          `gorm:"type:varchar(255);not null"`
	TargetAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CurrentAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Deadline        *time.Time      `gorm:"type:date"`
	ReminderEnabled bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (GoalModel) TableName() string {
	return "financial_goals"
}

// ToDomain converts the persistence model to a domain Goal.
func (m *GoalModel) ToDomain() *finance.Goal {
	return &finance.Goal{
		OwnedAggregateRoot: m.ToOwned(),
		Title:              m.Title,
		TargetAmount:       m.TargetAmount,
		CurrentAmount:      m.CurrentAmount,
		Deadline:           m.Deadline,
		ReminderEnabled:    m.ReminderEnabled,
	}
}

// GoalModelFromDomain creates a new persistence model from a domain Goal.
func GoalModelFromDomain(g *finance.Goal) *GoalModel {
	m := &GoalModel{
		Title:           g.Title,
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		Deadline:        g.Deadline,
		ReminderEnabled: g.ReminderEnabled,
	}
	m.SetOwned(g.OwnedAggregateRoot)
	return m
}
