package finance

import (
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeSalary is the aggregate type name used in events and the activity log
const AggregateTypeSalary = "salary"

// SalaryDetails holds the user-editable fields of a salary
type SalaryDetails struct {
	Company       string
	Amount        decimal.Decimal
	ReceivedDate  *time.Time
	IsRecurring   bool
	DayOfMonth    *int
	CertificateID *uuid.UUID
	Notes         string
}

// Salary is an income record. Recurring salaries are templates with no
// received date; generated occurrences carry one.
type Salary struct {
	shared.OwnedAggregateRoot
	SalaryDetails
	TemplateID *uuid.UUID
	Period     string
}

// NewSalary creates a new salary
func NewSalary(userID uuid.UUID, details SalaryDetails) (*Salary, error) {
	details, err := normalizeSalary(details)
	if err != nil {
		return nil, err
	}
	salary := &Salary{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		SalaryDetails:      details,
	}
	salary.AddDomainEvent(salary.event("created"))
	return salary, nil
}

// Update replaces the editable fields
func (s *Salary) Update(details SalaryDetails) error {
	details, err := normalizeSalary(details)
	if err != nil {
		return err
	}
	s.SalaryDetails = details
	s.Touch()
	s.AddDomainEvent(s.event("updated"))
	return nil
}

// MarkDeleted records the deletion event
func (s *Salary) MarkDeleted() {
	s.AddDomainEvent(s.event("deleted"))
}

// IsTemplate reports whether the salary generates monthly occurrences
func (s *Salary) IsTemplate() bool {
	return s.IsRecurring && s.TemplateID == nil
}

// Materialize builds the received occurrence of this template for a period
func (s *Salary) Materialize(period shared.Period) (*Salary, error) {
	if !s.IsTemplate() || s.DayOfMonth == nil {
		return nil, shared.NewDomainError("NOT_A_TEMPLATE", "Salary is not a recurring template")
	}
	received := period.DayDate(*s.DayOfMonth)
	templateID := s.ID

	occurrence, err := NewSalary(s.UserID, SalaryDetails{
		Company:       s.Company,
		Amount:        s.Amount,
		ReceivedDate:  &received,
		CertificateID: s.CertificateID,
		Notes:         s.Notes,
	})
	if err != nil {
		return nil, err
	}
	occurrence.TemplateID = &templateID
	occurrence.Period = period.String()
	return occurrence, nil
}

func (s *Salary) event(action string) shared.DomainEvent {
	return shared.NewLifecycleEvent(AggregateTypeSalary, action, s.ID, s.UserID, shared.AmountRef(s.Amount), map[string]any{
		"company": s.Company,
	})
}

func normalizeSalary(d SalaryDetails) (SalaryDetails, error) {
	d.Company = strings.TrimSpace(d.Company)
	if d.Company == "" {
		return d, shared.NewDomainError("INVALID_COMPANY", "Company cannot be empty")
	}
	if len(d.Company) > 255 {
		return d, shared.NewDomainError("INVALID_COMPANY", "Company cannot exceed 255 characters")
	}
	if d.Amount.IsNegative() {
		return d, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	if d.IsRecurring {
		if d.DayOfMonth == nil {
			return d, shared.NewDomainError("INVALID_DAY_OF_MONTH", "Day of month is required for recurring salaries")
		}
		if err := validateDayOfMonth(*d.DayOfMonth); err != nil {
			return d, err
		}
		d.ReceivedDate = nil
		return d, nil
	}

	d.DayOfMonth = nil
	if d.ReceivedDate == nil {
		return d, shared.NewDomainError("INVALID_DATE", "Received date is required")
	}
	received := shared.DateOf(*d.ReceivedDate)
	d.ReceivedDate = &received
	return d, nil
}
