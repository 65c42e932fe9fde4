package persistence

import (
	"context"

	"github.com/fintrack/backend/internal/domain/gold"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGoldPurchaseRepository implements PurchaseRepository using GORM
type GormGoldPurchaseRepository struct {
	db *gorm.DB
}

// NewGormGoldPurchaseRepository creates a new GormGoldPurchaseRepository
func NewGormGoldPurchaseRepository(db *gorm.DB) *GormGoldPurchaseRepository {
	return &GormGoldPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormGoldPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*gold.Purchase, error) {
	model, err := findByID[models.GoldPurchaseModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's purchases, most recent first
func (r *GormGoldPurchaseRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter gold.PurchaseFilter) ([]gold.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GoldPurchaseModel{}).Where("user_id = ?", userID)
	query = applyDateRange(query, "purchase_date", filter.From, filter.To)
	query = applySearch(query, filter.Search, "type", "purity", "notes")

	rows, total, err := listPage[models.GoldPurchaseModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return goldPurchaseSort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.GoldPurchaseModel).ToDomain), total, nil
}

// FindAllByUser returns every purchase of the user
func (r *GormGoldPurchaseRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]gold.Purchase, error) {
	var rows []models.GoldPurchaseModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("purchase_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.GoldPurchaseModel).ToDomain), nil
}

// Save creates or updates a purchase
func (r *GormGoldPurchaseRepository) Save(ctx context.Context, p *gold.Purchase) error {
	return r.db.WithContext(ctx).Save(models.GoldPurchaseModelFromDomain(p)).Error
}

// Delete deletes a purchase and unlinks its sales
func (r *GormGoldPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.GoldSaleModel{}).
			Where("purchase_id = ?", id).
			Update("purchase_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.GoldPurchaseModel{}, id)
	})
}

var _ gold.PurchaseRepository = (*GormGoldPurchaseRepository)(nil)

// GormGoldSaleRepository implements SaleRepository using GORM
type GormGoldSaleRepository struct {
	db *gorm.DB
}

// NewGormGoldSaleRepository creates a new GormGoldSaleRepository
func NewGormGoldSaleRepository(db *gorm.DB) *GormGoldSaleRepository {
	return &GormGoldSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormGoldSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*gold.Sale, error) {
	model, err := findByID[models.GoldSaleModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's sales, most recent first
func (r *GormGoldSaleRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter gold.SaleFilter) ([]gold.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GoldSaleModel{}).Where("user_id = ?", userID)
	if filter.PurchaseID != nil {
		query = query.Where("purchase_id = ?", *filter.PurchaseID)
	}

	rows, total, err := listPage[models.GoldSaleModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return goldSaleSort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.GoldSaleModel).ToDomain), total, nil
}

// FindByPurchase returns every sale linked to a purchase
func (r *GormGoldSaleRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]gold.Sale, error) {
	var rows []models.GoldSaleModel
	if err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseID).Order("sale_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.GoldSaleModel).ToDomain), nil
}

// FindAllByUser returns every sale of the user
func (r *GormGoldSaleRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]gold.Sale, error) {
	var rows []models.GoldSaleModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("sale_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.GoldSaleModel).ToDomain), nil
}

// Save creates or updates a sale
func (r *GormGoldSaleRepository) Save(ctx context.Context, s *gold.Sale) error {
	return r.db.WithContext(ctx).Save(models.GoldSaleModelFromDomain(s)).Error
}

// Delete deletes a sale
func (r *GormGoldSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.GoldSaleModel{}, id)
}

var _ gold.SaleRepository = (*GormGoldSaleRepository)(nil)
