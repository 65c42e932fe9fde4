package persistence

import (
	"context"

	"github.com/fintrack/backend/internal/domain/freelance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRevenueRepository implements RevenueRepository using GORM
type GormRevenueRepository struct {
	db *gorm.DB
}

// NewGormRevenueRepository creates a new GormRevenueRepository
func NewGormRevenueRepository(db *gorm.DB) *GormRevenueRepository {
	return &GormRevenueRepository{db: db}
}

// FindByID finds a revenue by its ID
func (r *GormRevenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*freelance.Revenue, error) {
	model, err := findByID[models.RevenueModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's revenues, newest first
func (r *GormRevenueRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter freelance.RevenueFilter) ([]freelance.Revenue, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RevenueModel{}).Where("user_id = ?", userID)
	if filter.Client != "" {
		query = query.Where("client = ?", filter.Client)
	}
	query = applyDateRange(query, "date", filter.From, filter.To)
	query = applySearch(query, filter.Search, "title", "client")

	rows, total, err := listPage[models.RevenueModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return revenueSort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.RevenueModel).ToDomain), total, nil
}

// Save creates or updates a revenue
func (r *GormRevenueRepository) Save(ctx context.Context, revenue *freelance.Revenue) error {
	return r.db.WithContext(ctx).Save(models.RevenueModelFromDomain(revenue)).Error
}

// Delete deletes a revenue together with its payments
func (r *GormRevenueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("revenue_id = ?", id).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.RevenueModel{}, id)
	})
}

// SumByRange totals the user's revenue dated within r
func (r *GormRevenueRepository) SumByRange(ctx context.Context, userID uuid.UUID, rng shared.DateRange) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.RevenueModel{}).Where("user_id = ?", userID)
	return sumColumn(applyDateRange(query, "date", rng.From, rng.To), "amount")
}

var _ freelance.RevenueRepository = (*GormRevenueRepository)(nil)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*freelance.Payment, error) {
	model, err := findByID[models.PaymentModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's payments, newest first
func (r *GormPaymentRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter freelance.PaymentFilter) ([]freelance.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("user_id = ?", userID)
	if filter.RevenueID != nil {
		query = query.Where("revenue_id = ?", *filter.RevenueID)
	}

	rows, total, err := listPage[models.PaymentModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return paymentSort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.PaymentModel).ToDomain), total, nil
}

// FindByRevenues returns the payments of the given revenues
func (r *GormPaymentRepository) FindByRevenues(ctx context.Context, revenueIDs []uuid.UUID) ([]freelance.Payment, error) {
	if len(revenueIDs) == 0 {
		return []freelance.Payment{}, nil
	}
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).Where("revenue_id IN ?", revenueIDs).Order("date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.PaymentModel).ToDomain), nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *freelance.Payment) error {
	return r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(payment)).Error
}

// Delete deletes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.PaymentModel{}, id)
}

var _ freelance.PaymentRepository = (*GormPaymentRepository)(nil)
