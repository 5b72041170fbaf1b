package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/benms/next-tailwind-amazona/models"
	"github.com/benms/next-tailwind-amazona/services"
)

// MemoryOrderRepository is a mutex-guarded map store. The pay flip runs
// entirely under the lock, matching the conditional-update guarantee of
// the gorm implementation.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uint]*models.Order
	nextID uint
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[uint]*models.Order),
		nextID: 1,
	}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	stored := cloneOrder(order)
	r.orders[order.ID] = stored
	return nil
}

func (r *MemoryOrderRepository) GetByID(_ context.Context, id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, services.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *MemoryOrderRepository) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Order
	for _, order := range r.orders {
		if order.UserID != nil && *order.UserID == userID {
			out = append(out, *cloneOrder(order))
		}
	}
	sortOrders(out)
	return out, nil
}

func (r *MemoryOrderRepository) ListAll(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *cloneOrder(order))
	}
	sortOrders(out)
	return out, nil
}

func (r *MemoryOrderRepository) MarkPaid(_ context.Context, id uint, paidAt time.Time, result models.PaymentResult) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, services.ErrOrderNotFound
	}
	if order.IsPaid {
		return nil, services.ErrAlreadyPaid
	}

	order.IsPaid = true
	order.PaidAt = &paidAt
	order.PaymentResult = result
	return cloneOrder(order), nil
}

func (r *MemoryOrderRepository) MarkDelivered(_ context.Context, id uint, deliveredAt time.Time) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, services.ErrOrderNotFound
	}

	order.IsDelivered = true
	order.DeliveredAt = &deliveredAt
	return cloneOrder(order), nil
}

func cloneOrder(order *models.Order) *models.Order {
	out := *order
	out.Items = make([]models.OrderItem, len(order.Items))
	copy(out.Items, order.Items)
	if order.UserID != nil {
		userID := *order.UserID
		out.UserID = &userID
	}
	if order.PaidAt != nil {
		paidAt := *order.PaidAt
		out.PaidAt = &paidAt
	}
	if order.DeliveredAt != nil {
		deliveredAt := *order.DeliveredAt
		out.DeliveredAt = &deliveredAt
	}
	return &out
}

func sortOrders(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
