package finance

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// ErrInvalidCertificate is returned when a salary links a certificate the user does not own
var ErrInvalidCertificate = shared.NewDomainError("INVALID_CERTIFICATE", "Certificate not found")

// SalaryService handles salary operations
type SalaryService struct {
	common.EventSupport
	salaryRepo      finance.SalaryRepository
	certificateRepo certificate.CertificateRepository
}

// NewSalaryService creates a new SalaryService
func NewSalaryService(salaryRepo finance.SalaryRepository, certificateRepo certificate.CertificateRepository) *SalaryService {
	return &SalaryService{
		salaryRepo:      salaryRepo,
		certificateRepo: certificateRepo,
	}
}

// Create records a salary or a recurring salary template
func (s *SalaryService) Create(ctx context.Context, userID uuid.UUID, req CreateSalaryRequest) (*SalaryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "salary", "create")
	defer span.End()

	if err := s.ensureCertificate(ctx, userID, req.CertificateID); err != nil {
		return nil, err
	}

	salary, err := finance.NewSalary(userID, finance.SalaryDetails{
		Company:       req.Company,
		Amount:        *req.Amount,
		ReceivedDate:  req.ReceivedDate.TimePtr(),
		IsRecurring:   req.IsRecurring,
		DayOfMonth:    req.DayOfMonth,
		CertificateID: req.CertificateID,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.salaryRepo.Save(ctx, salary); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, salary)

	resp := ToSalaryResponse(salary)
	return &resp, nil
}

// GetByID retrieves one of the user's salaries
func (s *SalaryService) GetByID(ctx context.Context, userID, id uuid.UUID) (*SalaryResponse, error) {
	salary, err := shared.FindOwned[finance.Salary](ctx, s.salaryRepo, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToSalaryResponse(salary)
	return &resp, nil
}

// List retrieves a page of the user's salaries
func (s *SalaryService) List(ctx context.Context, userID uuid.UUID, q SalaryListQuery) ([]SalaryResponse, int64, error) {
	from, err := common.ParseOptionalDate(q.From)
	if err != nil {
		return nil, 0, err
	}
	to, err := common.ParseOptionalDate(q.To)
	if err != nil {
		return nil, 0, err
	}

	salaries, total, err := s.salaryRepo.FindAllForUser(ctx, userID, finance.SalaryFilter{
		Filter:      q.Filter("received_date", "desc"),
		From:        from,
		To:          to,
		IsRecurring: q.IsRecurring,
	})
	if err != nil {
		return nil, 0, err
	}

	items := make([]SalaryResponse, len(salaries))
	for i := range salaries {
		items[i] = ToSalaryResponse(&salaries[i])
	}
	return items, total, nil
}

// Update applies the present fields of req to a salary
func (s *SalaryService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateSalaryRequest) (*SalaryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "salary", "update")
	defer span.End()

	salary, err := shared.FindOwned[finance.Salary](ctx, s.salaryRepo, id, userID)
	if err != nil {
		return nil, err
	}

	details := salary.SalaryDetails
	if req.Company != nil {
		details.Company = *req.Company
	}
	if req.Amount != nil {
		details.Amount = *req.Amount
	}
	if req.ReceivedDate != nil {
		details.ReceivedDate = req.ReceivedDate.TimePtr()
	}
	if req.IsRecurring != nil {
		details.IsRecurring = *req.IsRecurring
	}
	if req.DayOfMonth != nil {
		details.DayOfMonth = req.DayOfMonth
	}
	if req.CertificateID != nil {
		if err := s.ensureCertificate(ctx, userID, req.CertificateID); err != nil {
			return nil, err
		}
		details.CertificateID = req.CertificateID
	}
	if req.Notes != nil {
		details.Notes = *req.Notes
	}

	if err := salary.Update(details); err != nil {
		return nil, err
	}
	if err := s.salaryRepo.Save(ctx, salary); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, salary)

	resp := ToSalaryResponse(salary)
	return &resp, nil
}

// Delete removes a salary
func (s *SalaryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "salary", "delete")
	defer span.End()

	salary, err := shared.FindOwned[finance.Salary](ctx, s.salaryRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.salaryRepo.Delete(ctx, id); err != nil {
		return err
	}
	salary.MarkDeleted()
	s.PublishEvents(ctx, salary)
	return nil
}

func (s *SalaryService) ensureCertificate(ctx context.Context, userID uuid.UUID, certificateID *uuid.UUID) error {
	if certificateID == nil {
		return nil
	}
	_, err := shared.FindOwned[certificate.Certificate](ctx, s.certificateRepo, *certificateID, userID)
	if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrForbidden) {
		return ErrInvalidCertificate
	}
	return err
}
