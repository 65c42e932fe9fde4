package certificate

import (
	"context"

	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCertificateRepository is a mock implementation of certificate.CertificateRepository
type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) FindByID(ctx context.Context, id uuid.UUID) (*certificate.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certificate.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter certificate.CertificateFilter) ([]certificate.Certificate, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]certificate.Certificate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCertificateRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]certificate.Certificate, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]certificate.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) Save(ctx context.Context, c *certificate.Certificate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCertificateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// withdrawalStore is an in-memory certificate.WithdrawalRepository
type withdrawalStore struct {
	rows map[uuid.UUID]certificate.Withdrawal
}

func newWithdrawalStore() *withdrawalStore {
	return &withdrawalStore{rows: make(map[uuid.UUID]certificate.Withdrawal)}
}

func (s *withdrawalStore) FindByID(_ context.Context, id uuid.UUID) (*certificate.Withdrawal, error) {
	w, ok := s.rows[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &w, nil
}

func (s *withdrawalStore) FindAllForUser(_ context.Context, userID uuid.UUID, filter certificate.WithdrawalFilter) ([]certificate.Withdrawal, int64, error) {
	out := make([]certificate.Withdrawal, 0)
	for _, w := range s.rows {
		if w.UserID != userID {
			continue
		}
		if filter.CertificateID != nil && w.CertificateID != *filter.CertificateID {
			continue
		}
		if filter.IsRepaid != nil && w.IsRepaid != *filter.IsRepaid {
			continue
		}
		out = append(out, w)
	}
	return out, int64(len(out)), nil
}

func (s *withdrawalStore) FindByCertificate(_ context.Context, certificateID uuid.UUID) ([]certificate.Withdrawal, error) {
	out := make([]certificate.Withdrawal, 0)
	for _, w := range s.rows {
		if w.CertificateID == certificateID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *withdrawalStore) FindAllByUser(_ context.Context, userID uuid.UUID) ([]certificate.Withdrawal, error) {
	out := make([]certificate.Withdrawal, 0)
	for _, w := range s.rows {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *withdrawalStore) Save(_ context.Context, w *certificate.Withdrawal) error {
	row := *w
	row.ClearDomainEvents()
	s.rows[w.ID] = row
	return nil
}

func (s *withdrawalStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
