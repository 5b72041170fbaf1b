package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/benms/next-tailwind-amazona/logger"
	"github.com/benms/next-tailwind-amazona/models"
)

// NatsPublisher emits order lifecycle events to NATS subjects
// order.created, order.paid and order.delivered.
type NatsPublisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

type OrderEvent struct {
	OrderID    uint    `json:"order_id"`
	OrderRef   string  `json:"order_ref"`
	UserID     string  `json:"user_id,omitempty"`
	TotalPrice float64 `json:"total_price"`
	IsPaid     bool    `json:"is_paid"`
	OccurredAt string  `json:"occurred_at"`
}

func NewNatsPublisher(url string, logger *logger.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("Storefront API"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("Connected to NATS", url)
	return &NatsPublisher{nc: nc, logger: logger}, nil
}

func (p *NatsPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, "order.created", order)
}

func (p *NatsPublisher) PublishOrderPaid(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, "order.paid", order)
}

func (p *NatsPublisher) PublishOrderDelivered(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, "order.delivered", order)
}

func (p *NatsPublisher) publish(ctx context.Context, subject string, order *models.Order) error {
	event := OrderEvent{
		OrderID:    order.ID,
		OrderRef:   order.OrderRef,
		TotalPrice: order.TotalPrice,
		IsPaid:     order.IsPaid,
		OccurredAt: time.Now().Format(time.RFC3339),
	}
	if order.UserID != nil {
		event.UserID = *order.UserID
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	for i := 0; i < 3; i++ {
		select {
		case <-ctx.Done():
			p.logger.Warn("Context cancelled while publishing to NATS")
			return ctx.Err()
		default:
			if err := p.nc.Publish(subject, data); err != nil {
				p.logger.Warn("Failed to publish to NATS", err)
				time.Sleep(1 * time.Second)
				continue
			}
			if err := p.nc.FlushTimeout(2 * time.Second); err != nil {
				p.logger.Warn("Failed to flush NATS connection", err)
				continue
			}
			return nil
		}
	}

	p.logger.Error("Failed to publish event to NATS after retries", subject)
	return fmt.Errorf("failed to publish %s after retries", subject)
}

func (p *NatsPublisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
		p.logger.Info("NATS connection closed")
	}
}
