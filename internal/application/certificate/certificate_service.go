// Package certificate provides the application services for bank certificates
// and their withdrawals.
package certificate

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// CertificateService handles certificate and withdrawal operations
type CertificateService struct {
	common.EventSupport
	certificateRepo certificate.CertificateRepository
	withdrawalRepo  certificate.WithdrawalRepository
	now             func() time.Time
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(certificateRepo certificate.CertificateRepository, withdrawalRepo certificate.WithdrawalRepository) *CertificateService {
	return &CertificateService{
		certificateRepo: certificateRepo,
		withdrawalRepo:  withdrawalRepo,
		now:             time.Now,
	}
}

func (s *CertificateService) today() time.Time {
	return shared.DateOf(s.now())
}

// Create creates a certificate
func (s *CertificateService) Create(ctx context.Context, userID uuid.UUID, req CreateCertificateRequest) (*CertificateResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "certificate", "create")
	defer span.End()

	c, err := certificate.NewCertificate(userID, applyCreate(req))
	if err != nil {
		return nil, err
	}
	if err := s.certificateRepo.Save(ctx, c); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, c)

	today := s.today()
	resp := ToCertificateResponse(c, certificate.Summarize(c, nil, today), today)
	return &resp, nil
}

// GetByID retrieves a certificate with its withdrawal summary
func (s *CertificateService) GetByID(ctx context.Context, userID, id uuid.UUID) (*CertificateResponse, error) {
	c, err := shared.FindOwned[certificate.Certificate](ctx, s.certificateRepo, id, userID)
	if err != nil {
		return nil, err
	}
	return s.withSummary(ctx, c)
}

// List retrieves a page of the user's certificates, each with its summary
func (s *CertificateService) List(ctx context.Context, userID uuid.UUID, q CertificateListQuery) ([]CertificateResponse, int64, error) {
	certs, total, err := s.certificateRepo.FindAllForUser(ctx, userID, certificate.CertificateFilter{
		Filter:   q.Filter("created_at", "desc"),
		BankName: q.BankName,
	})
	if err != nil {
		return nil, 0, err
	}
	if len(certs) == 0 {
		return []CertificateResponse{}, total, nil
	}

	withdrawals, err := s.withdrawalRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	today := s.today()
	items := make([]CertificateResponse, len(certs))
	for i := range certs {
		items[i] = ToCertificateResponse(&certs[i], certificate.Summarize(&certs[i], withdrawals, today), today)
	}
	return items, total, nil
}

// Update applies the present fields of req to a certificate
func (s *CertificateService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateCertificateRequest) (*CertificateResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "certificate", "update")
	defer span.End()

	c, err := shared.FindOwned[certificate.Certificate](ctx, s.certificateRepo, id, userID)
	if err != nil {
		return nil, err
	}
	if err := c.Update(applyUpdate(c.CertificateDetails, req)); err != nil {
		return nil, err
	}
	if err := s.certificateRepo.Save(ctx, c); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, c)
	return s.withSummary(ctx, c)
}

// Delete removes a certificate. Its withdrawals are removed with it.
func (s *CertificateService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "certificate", "delete")
	defer span.End()

	c, err := shared.FindOwned[certificate.Certificate](ctx, s.certificateRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.certificateRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	c.MarkDeleted()
	s.PublishEvents(ctx, c)
	return nil
}

// ListWithdrawals retrieves a page of the withdrawals of one certificate
func (s *CertificateService) ListWithdrawals(ctx context.Context, userID, certificateID uuid.UUID, q WithdrawalListQuery) ([]WithdrawalResponse, int64, error) {
	if _, err := shared.FindOwned[certificate.Certificate](ctx, s.certificateRepo, certificateID, userID); err != nil {
		return nil, 0, err
	}

	withdrawals, total, err := s.withdrawalRepo.FindAllForUser(ctx, userID, certificate.WithdrawalFilter{
		Filter:        q.Filter("date", "desc"),
		CertificateID: &certificateID,
		IsRepaid:      q.IsRepaid,
	})
	if err != nil {
		return nil, 0, err
	}

	today := s.today()
	items := make([]WithdrawalResponse, len(withdrawals))
	for i := range withdrawals {
		items[i] = ToWithdrawalResponse(&withdrawals[i], today)
	}
	return items, total, nil
}

// CreateWithdrawal draws against a certificate. The unpaid portion of the new
// withdrawal must fit in the certificate's remaining amount.
func (s *CertificateService) CreateWithdrawal(ctx context.Context, userID, certificateID uuid.UUID, req CreateWithdrawalRequest) (*WithdrawalResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "certificate", "withdraw")
	defer span.End()

	c, err := shared.FindOwned[certificate.Certificate](ctx, s.certificateRepo, certificateID, userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.withdrawalRepo.FindByCertificate(ctx, c.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	w, err := certificate.NewWithdrawal(userID, c.ID, *req.Amount, req.Date.Time, req.RepaymentDate.TimePtr(), req.IsInstallment, req.InstallmentCount)
	if err != nil {
		return nil, err
	}

	today := s.today()
	summary := certificate.Summarize(c, existing, today)
	span.SetAttributes(attribute.String("certificate.remaining", summary.RemainingAmount.String()))
	if err := summary.CanWithdraw(w.UnpaidPortion()); err != nil {
		return nil, err
	}

	if err := s.withdrawalRepo.Save(ctx, w); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, w)

	resp := ToWithdrawalResponse(w, today)
	return &resp, nil
}

// GetWithdrawal retrieves one withdrawal
func (s *CertificateService) GetWithdrawal(ctx context.Context, userID, id uuid.UUID) (*WithdrawalResponse, error) {
	w, err := shared.FindOwned[certificate.Withdrawal](ctx, s.withdrawalRepo, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToWithdrawalResponse(w, s.today())
	return &resp, nil
}

// DeleteWithdrawal removes one withdrawal
func (s *CertificateService) DeleteWithdrawal(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "certificate", "delete_withdrawal")
	defer span.End()

	w, err := shared.FindOwned[certificate.Withdrawal](ctx, s.withdrawalRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.withdrawalRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	w.MarkDeleted()
	s.PublishEvents(ctx, w)
	return nil
}

// Repay settles a withdrawal in full
func (s *CertificateService) Repay(ctx context.Context, userID, id uuid.UUID) (*WithdrawalResponse, error) {
	return s.settle(ctx, userID, id, "repay", (*certificate.Withdrawal).Repay)
}

// PayInstallment records one paid installment of a withdrawal
func (s *CertificateService) PayInstallment(ctx context.Context, userID, id uuid.UUID) (*WithdrawalResponse, error) {
	return s.settle(ctx, userID, id, "pay_installment", (*certificate.Withdrawal).PayInstallment)
}

func (s *CertificateService) settle(ctx context.Context, userID, id uuid.UUID, op string, apply func(*certificate.Withdrawal, time.Time) error) (*WithdrawalResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "certificate", op)
	defer span.End()

	w, err := shared.FindOwned[certificate.Withdrawal](ctx, s.withdrawalRepo, id, userID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	if err := apply(w, today); err != nil {
		return nil, err
	}
	if err := s.withdrawalRepo.Save(ctx, w); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, w)

	resp := ToWithdrawalResponse(w, today)
	return &resp, nil
}

// DangerousWithdrawals returns every unsettled single withdrawal of the user
// that is close to its due date
func (s *CertificateService) DangerousWithdrawals(ctx context.Context, userID uuid.UUID) ([]WithdrawalResponse, error) {
	withdrawals, err := s.withdrawalRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	items := make([]WithdrawalResponse, 0)
	for i := range withdrawals {
		if withdrawals[i].IsDangerous(today) {
			items = append(items, ToWithdrawalResponse(&withdrawals[i], today))
		}
	}
	return items, nil
}

func (s *CertificateService) withSummary(ctx context.Context, c *certificate.Certificate) (*CertificateResponse, error) {
	withdrawals, err := s.withdrawalRepo.FindByCertificate(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	resp := ToCertificateResponse(c, certificate.Summarize(c, withdrawals, today), today)
	return &resp, nil
}

func applyCreate(req CreateCertificateRequest) certificate.CertificateDetails {
	d := certificate.CertificateDetails{
		BankName:           req.BankName,
		CertificateName:    req.CertificateName,
		CertificateNumber:  req.CertificateNumber,
		Amount:             *req.Amount,
		ReturnDayOfMonth:   req.ReturnDayOfMonth,
		LastReturnDate:     req.LastReturnDate.TimePtr(),
		MaxWithdrawalLimit: req.MaxWithdrawalLimit,
		DepositDate:        req.DepositDate.TimePtr(),
		MaturityDate:       req.MaturityDate.TimePtr(),
	}
	if req.MonthlyReturn != nil {
		d.MonthlyReturn = *req.MonthlyReturn
	}
	return d
}

func applyUpdate(d certificate.CertificateDetails, req UpdateCertificateRequest) certificate.CertificateDetails {
	if req.BankName != nil {
		d.BankName = *req.BankName
	}
	if req.CertificateName != nil {
		d.CertificateName = *req.CertificateName
	}
	if req.CertificateNumber != nil {
		d.CertificateNumber = *req.CertificateNumber
	}
	if req.Amount != nil {
		d.Amount = *req.Amount
	}
	if req.MonthlyReturn != nil {
		d.MonthlyReturn = *req.MonthlyReturn
	}
	if req.ReturnDayOfMonth != nil {
		d.ReturnDayOfMonth = req.ReturnDayOfMonth
	}
	if req.LastReturnDate != nil {
		d.LastReturnDate = req.LastReturnDate.TimePtr()
	}
	if req.MaxWithdrawalLimit != nil {
		d.MaxWithdrawalLimit = req.MaxWithdrawalLimit
	}
	if req.DepositDate != nil {
		d.DepositDate = req.DepositDate.TimePtr()
	}
	if req.MaturityDate != nil {
		d.MaturityDate = req.MaturityDate.TimePtr()
	}
	return d
}
