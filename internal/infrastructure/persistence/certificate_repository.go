package persistence

import (
	"context"

	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCertificateRepository implements CertificateRepository using GORM
type GormCertificateRepository struct {
	db *gorm.DB
}

// NewGormCertificateRepository creates a new GormCertificateRepository
func NewGormCertificateRepository(db *gorm.DB) *GormCertificateRepository {
	return &GormCertificateRepository{db: db}
}

// FindByID finds a certificate by its ID
func (r *GormCertificateRepository) FindByID(ctx context.Context, id uuid.UUID) (*certificate.Certificate, error) {
	model, err := findByID[models.CertificateModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's certificates
func (r *GormCertificateRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter certificate.CertificateFilter) ([]certificate.Certificate, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CertificateModel{}).Where("user_id = ?", userID)
	if filter.BankName != "" {
		query = query.Where("bank_name = ?", filter.BankName)
	}
	query = applySearch(query, filter.Search, "bank_name", "certificate_name", "certificate_number")

	rows, total, err := listPage[models.CertificateModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return certificateSort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.CertificateModel).ToDomain), total, nil
}

// FindAllByUser returns every certificate of the user
func (r *GormCertificateRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]certificate.Certificate, error) {
	var rows []models.CertificateModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.CertificateModel).ToDomain), nil
}

// Save creates or updates a certificate
func (r *GormCertificateRepository) Save(ctx context.Context, c *certificate.Certificate) error {
	return r.db.WithContext(ctx).Save(models.CertificateModelFromDomain(c)).Error
}

// Delete deletes a certificate with its withdrawals and unlinks salaries
func (r *GormCertificateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("certificate_id = ?", id).Delete(&models.WithdrawalModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.SalaryModel{}).
			Where("certificate_id = ?", id).
			Update("certificate_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.CertificateModel{}, id)
	})
}

var _ certificate.CertificateRepository = (*GormCertificateRepository)(nil)

// GormWithdrawalRepository implements WithdrawalRepository using GORM
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// FindByID finds a withdrawal by its ID
func (r *GormWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*certificate.Withdrawal, error) {
	model, err := findByID[models.WithdrawalModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's withdrawals, newest first
func (r *GormWithdrawalRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter certificate.WithdrawalFilter) ([]certificate.Withdrawal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WithdrawalModel{}).Where("user_id = ?", userID)
	if filter.CertificateID != nil {
		query = query.Where("certificate_id = ?", *filter.CertificateID)
	}
	if filter.IsRepaid != nil {
		query = query.Where("is_repaid = ?", *filter.IsRepaid)
	}

	rows, total, err := listPage[models.WithdrawalModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return withdrawalSort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.WithdrawalModel).ToDomain), total, nil
}

// FindByCertificate returns every withdrawal of a certificate, oldest first
func (r *GormWithdrawalRepository) FindByCertificate(ctx context.Context, certificateID uuid.UUID) ([]certificate.Withdrawal, error) {
	var rows []models.WithdrawalModel
	if err := r.db.WithContext(ctx).
		Where("certificate_id = ?", certificateID).
		Order("date ASC").Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.WithdrawalModel).ToDomain), nil
}

// FindAllByUser returns every withdrawal of the user
func (r *GormWithdrawalRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]certificate.Withdrawal, error) {
	var rows []models.WithdrawalModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.WithdrawalModel).ToDomain), nil
}

// Save creates or updates a withdrawal
func (r *GormWithdrawalRepository) Save(ctx context.Context, w *certificate.Withdrawal) error {
	return r.db.WithContext(ctx).Save(models.WithdrawalModelFromDomain(w)).Error
}

// Delete deletes a withdrawal
func (r *GormWithdrawalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.WithdrawalModel{}, id)
}

var _ certificate.WithdrawalRepository = (*GormWithdrawalRepository)(nil)
