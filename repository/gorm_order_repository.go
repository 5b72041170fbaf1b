package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/benms/next-tailwind-amazona/models"
	"github.com/benms/next-tailwind-amazona/services"
)

// GormOrderRepository persists orders in postgres through gorm.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// MarkPaid performs the unpaid->paid flip as a single conditional UPDATE
// keyed on is_paid = false. Zero rows affected means either the order is
// missing or a concurrent call won the race; a follow-up read tells the
// two apart.
func (r *GormOrderRepository) MarkPaid(ctx context.Context, id uint, paidAt time.Time, result models.PaymentResult) (*models.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND is_paid = ?", id, false).
		Updates(map[string]interface{}{
			"is_paid":             true,
			"paid_at":             paidAt,
			"payment_external_id": result.ExternalID,
			"payment_status":      result.Status,
			"payment_payer_email": result.PayerEmail,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		order, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if order.IsPaid {
			return nil, services.ErrAlreadyPaid
		}
		return nil, services.ErrOrderNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *GormOrderRepository) MarkDelivered(ctx context.Context, id uint, deliveredAt time.Time) (*models.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_delivered": true,
			"delivered_at": deliveredAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, services.ErrOrderNotFound
	}
	return r.GetByID(ctx, id)
}
