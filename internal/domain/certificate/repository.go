package certificate

import (
	"context"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CertificateFilter narrows certificate listings
type CertificateFilter struct {
	shared.Filter
	BankName string
}

// WithdrawalFilter narrows withdrawal listings
type WithdrawalFilter struct {
	shared.Filter
	CertificateID *uuid.UUID
	IsRepaid      *bool
}

// CertificateRepository persists certificates
type CertificateRepository interface {
	shared.OwnedRepository[Certificate, CertificateFilter]
	// FindAllByUser returns every certificate of the user without paging
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]Certificate, error)
}

// WithdrawalRepository persists withdrawals
type WithdrawalRepository interface {
	shared.OwnedRepository[Withdrawal, WithdrawalFilter]
	FindByCertificate(ctx context.Context, certificateID uuid.UUID) ([]Withdrawal, error)
	// FindAllByUser returns every withdrawal of the user without paging
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]Withdrawal, error)
}
