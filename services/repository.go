package services

import (
	"context"
	"time"

	"github.com/benms/next-tailwind-amazona/models"
)

// OrderRepository is the durable store behind the order lifecycle.
// Implementations map their storage errors onto the service sentinels
// (ErrOrderNotFound, ErrAlreadyPaid).
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)

	// MarkPaid flips is_paid false->true as a single conditional update.
	// A second call on the same order must observe ErrAlreadyPaid and
	// leave paid_at and the payment result untouched.
	MarkPaid(ctx context.Context, id uint, paidAt time.Time, result models.PaymentResult) (*models.Order, error)

	// MarkDelivered sets the delivered flag and timestamp. Repeated calls
	// refresh the timestamp but the flag never unsets.
	MarkDelivered(ctx context.Context, id uint, deliveredAt time.Time) (*models.Order, error)
}
