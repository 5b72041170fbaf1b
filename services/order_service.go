package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/benms/next-tailwind-amazona/cart"
	"github.com/benms/next-tailwind-amazona/logger"
	"github.com/benms/next-tailwind-amazona/models"
)

// Session is the authenticated caller, as extracted from the request by
// the auth middleware. Consumed, never mutated.
type Session struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
}

// GatewayResult is the payment confirmation as supplied by the caller.
// It is recorded verbatim, not verified against the gateway.
type GatewayResult struct {
	ExternalID string `json:"id"`
	Status     string `json:"status"`
	PayerEmail string `json:"email_address"`
}

// CreateOrderInput is the cart snapshot plus the price fields computed at
// the place-order step.
type CreateOrderInput struct {
	Items           []cart.Item            `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   models.PaymentMethod   `json:"payment_method"`
	ItemsPrice      float64                `json:"items_price"`
	ShippingPrice   float64                `json:"shipping_price"`
	TaxPrice        float64                `json:"tax_price"`
	TotalPrice      float64                `json:"total_price"`
}

// EventPublisher receives order lifecycle events. Publishing is
// best-effort; failures never roll back the transition.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderPaid(ctx context.Context, order *models.Order) error
	PublishOrderDelivered(ctx context.Context, order *models.Order) error
}

type OrderService struct {
	repo   OrderRepository
	events EventPublisher
	log    *logger.Logger

	// When set, Deliver refuses orders that are not paid yet.
	requirePaidDelivery bool
}

func NewOrderService(repo OrderRepository, events EventPublisher, log *logger.Logger, requirePaidDelivery bool) *OrderService {
	return &OrderService{
		repo:                repo,
		events:              events,
		log:                 log,
		requirePaidDelivery: requirePaidDelivery,
	}
}

// Create builds and persists an order from the supplied snapshot. The
// caller's cart is not cleared here; the caller clears it after a
// successful response. Stock is not decremented.
func (s *OrderService) Create(ctx context.Context, session *Session, input CreateOrderInput) (*models.Order, error) {
	if session == nil {
		return nil, ErrUnauthorized
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if !models.ValidPaymentMethod(input.PaymentMethod) {
		return nil, ErrInvalidMethod
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Slug:      item.Slug,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	userID := session.UserID
	order := &models.Order{
		OrderRef:        generateOrderRef(),
		UserID:          &userID,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		ItemsPrice:      input.ItemsPrice,
		ShippingPrice:   input.ShippingPrice,
		TaxPrice:        input.TaxPrice,
		TotalPrice:      input.TotalPrice,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publish(order, "order.created", func(ctx context.Context) error {
		return s.events.PublishOrderCreated(ctx, order)
	})

	return order, nil
}

// Pay confirms payment of an order. The session is resolved and checked
// before anything else runs; the repository performs the unpaid->paid
// flip as one atomic conditional update, so a racing second call
// observes ErrAlreadyPaid.
func (s *OrderService) Pay(ctx context.Context, session *Session, orderID uint, result GatewayResult) (*models.Order, error) {
	if session == nil {
		return nil, ErrUnauthorized
	}

	order, err := s.repo.MarkPaid(ctx, orderID, time.Now(), models.PaymentResult{
		ExternalID: result.ExternalID,
		Status:     result.Status,
		PayerEmail: result.PayerEmail,
	})
	if err != nil {
		return nil, err
	}

	s.publish(order, "order.paid", func(ctx context.Context) error {
		return s.events.PublishOrderPaid(ctx, order)
	})

	return order, nil
}

// Deliver confirms delivery. Requires an admin session. Whether an
// unpaid order may be delivered is a policy decision; when paid-first is
// enforced an unpaid order yields ErrOrderNotPaid.
func (s *OrderService) Deliver(ctx context.Context, session *Session, orderID uint) (*models.Order, error) {
	if session == nil || !session.IsAdmin {
		return nil, ErrAdminRequired
	}

	if s.requirePaidDelivery {
		order, err := s.repo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if !order.IsPaid {
			return nil, ErrOrderNotPaid
		}
	}

	order, err := s.repo.MarkDelivered(ctx, orderID, time.Now())
	if err != nil {
		return nil, err
	}

	s.publish(order, "order.delivered", func(ctx context.Context) error {
		return s.events.PublishOrderDelivered(ctx, order)
	})

	return order, nil
}

// Get fetches one order for an authenticated caller.
func (s *OrderService) Get(ctx context.Context, session *Session, orderID uint) (*models.Order, error) {
	if session == nil {
		return nil, ErrUnauthorized
	}
	return s.repo.GetByID(ctx, orderID)
}

// ListMine returns the caller's order history.
func (s *OrderService) ListMine(ctx context.Context, session *Session) ([]models.Order, error) {
	if session == nil {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, session.UserID)
}

// ListAll returns every order. Admin only.
func (s *OrderService) ListAll(ctx context.Context, session *Session) ([]models.Order, error) {
	if session == nil || !session.IsAdmin {
		return nil, ErrAdminRequired
	}
	return s.repo.ListAll(ctx)
}

func (s *OrderService) publish(order *models.Order, subject string, fn func(ctx context.Context) error) {
	if s.events == nil {
		return
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := fn(pubCtx); err != nil && s.log != nil {
			s.log.Warn("failed to publish "+subject+" event", err)
		}
	}()
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
