package persistence

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/notification"
	"github.com/fintrack/backend/internal/domain/reminder"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/whatsapp"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*whatsapp.Subscription, error) {
	model, err := findByID[models.SubscriptionModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's subscriptions
func (r *GormSubscriptionRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter whatsapp.SubscriptionFilter) ([]whatsapp.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).Where("user_id = ?", userID)
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	query = applySearch(query, filter.Search, "phone_number", "plan")

	rows, total, err := listPage[models.SubscriptionModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return subscriptionSort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.SubscriptionModel).ToDomain), total, nil
}

// CountActive counts the user's active subscriptions
func (r *GormSubscriptionRepository) CountActive(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, s *whatsapp.Subscription) error {
	return r.db.WithContext(ctx).Save(models.SubscriptionModelFromDomain(s)).Error
}

// Delete deletes a subscription
func (r *GormSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.SubscriptionModel{}, id)
}

var _ whatsapp.SubscriptionRepository = (*GormSubscriptionRepository)(nil)

// GormReminderRepository implements reminder.Repository using GORM
type GormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GormReminderRepository
func NewGormReminderRepository(db *gorm.DB) *GormReminderRepository {
	return &GormReminderRepository{db: db}
}

// FindByID finds a reminder by its ID
func (r *GormReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*reminder.Reminder, error) {
	model, err := findByID[models.ReminderModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists reminders by due date, undated ones last
func (r *GormReminderRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter reminder.Filter) ([]reminder.Reminder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReminderModel{}).Where("user_id = ?", userID)
	if filter.IsDone != nil {
		query = query.Where("is_done = ?", *filter.IsDone)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date <= ?", shared.DateOf(*filter.DueBefore))
	}
	query = applySearch(query, filter.Search, "title", "notes")

	rows, total, err := listPage[models.ReminderModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		if filter.OrderBy != "" {
			return reminderSort.apply(q, filter.Filter)
		}
		return q.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").Order("due_date ASC").Order("created_at ASC")
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.ReminderModel).ToDomain), total, nil
}

// FindUpcoming lists open reminders due between today and until, inclusive
func (r *GormReminderRepository) FindUpcoming(ctx context.Context, userID uuid.UUID, today, until time.Time) ([]reminder.Reminder, error) {
	var rows []models.ReminderModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_done = ?", userID, false).
		Where("due_date >= ? AND due_date <= ?", shared.DateOf(today), shared.DateOf(until)).
		Order("due_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.ReminderModel).ToDomain), nil
}

// Save creates or updates a reminder
func (r *GormReminderRepository) Save(ctx context.Context, rem *reminder.Reminder) error {
	return r.db.WithContext(ctx).Save(models.ReminderModelFromDomain(rem)).Error
}

// Delete deletes a reminder
func (r *GormReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ReminderModel{}, id)
}

var _ reminder.Repository = (*GormReminderRepository)(nil)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	model, err := findByID[models.NotificationModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists notifications, newest first
func (r *GormNotificationRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter notification.Filter) ([]notification.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{}).Where("user_id = ?", userID)
	query = applySearch(query, filter.Search, "title", "body")

	rows, total, err := listPage[models.NotificationModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return notificationSort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.NotificationModel).ToDomain), total, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(models.NotificationModelFromDomain(n)).Error
}

// Delete deletes a notification
func (r *GormNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.NotificationModel{}, id)
}

var _ notification.Repository = (*GormNotificationRepository)(nil)
