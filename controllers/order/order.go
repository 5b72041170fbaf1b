package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/benms/next-tailwind-amazona/cart"
	"github.com/benms/next-tailwind-amazona/checkout"
	cartControllers "github.com/benms/next-tailwind-amazona/controllers/cart"
	"github.com/benms/next-tailwind-amazona/logger"
	"github.com/benms/next-tailwind-amazona/middleware"
	"github.com/benms/next-tailwind-amazona/services"
)

// statusForError maps service sentinels onto response statuses.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, "sign in required"
	case errors.Is(err, services.ErrAdminRequired):
		return http.StatusUnauthorized, "admin sign in required"
	case errors.Is(err, services.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, services.ErrAlreadyPaid):
		return http.StatusBadRequest, "Order is already paid"
	case errors.Is(err, services.ErrOrderNotPaid):
		return http.StatusBadRequest, "Order is not paid yet"
	case errors.Is(err, services.ErrEmptyItems), errors.Is(err, services.ErrInvalidMethod):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "Something went wrong"
}

// POST /orders
//
// Converts the current cart into an order. The cart items are cleared
// only after the service reports success; shipping address and payment
// method stay for the next purchase.
func PlaceOrderHandler(svc *services.OrderService, factory cartControllers.StorageFactory, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.SessionFromContext(c)

		store := cart.NewStore(factory(c), log)
		state := store.State()

		if denial := checkout.CanEnter(state, checkout.StepPlaceOrder); denial != nil {
			c.JSON(http.StatusConflict, gin.H{
				"redirect": denial.Redirect.String(),
				"reason":   denial.Reason,
			})
			return
		}

		totals := checkout.ComputeTotals(state.Items)
		order, err := svc.Create(c.Request.Context(), session, services.CreateOrderInput{
			Items:           state.Items,
			ShippingAddress: state.ShippingAddress,
			PaymentMethod:   state.PaymentMethod,
			ItemsPrice:      totals.ItemsPrice,
			ShippingPrice:   totals.ShippingPrice,
			TaxPrice:        totals.TaxPrice,
			TotalPrice:      totals.TotalPrice,
		})
		if err != nil {
			status, msg := statusForError(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		store.ClearItems()
		broadcastOrderEvent("order.created", order)

		c.JSON(http.StatusCreated, order)
	}
}

// PUT /orders/:id/pay
func PayOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.SessionFromContext(c)

		orderID, err := parseOrderID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var result services.GatewayResult
		if err := c.ShouldBindJSON(&result); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment result: " + err.Error()})
			return
		}

		order, err := svc.Pay(c.Request.Context(), session, orderID, result)
		if err != nil {
			status, msg := statusForError(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		broadcastOrderEvent("order.paid", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order paid successfully", "order": order})
	}
}

// PUT /orders/:id/deliver
func DeliverOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.SessionFromContext(c)

		orderID, err := parseOrderID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		order, err := svc.Deliver(c.Request.Context(), session, orderID)
		if err != nil {
			status, msg := statusForError(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		broadcastOrderEvent("order.delivered", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order delivered successfully", "order": order})
	}
}

// GET /orders/:id
func GetOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.SessionFromContext(c)

		orderID, err := parseOrderID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		order, err := svc.Get(c.Request.Context(), session, orderID)
		if err != nil {
			status, msg := statusForError(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/mine
func GetMyOrdersHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.SessionFromContext(c)

		orders, err := svc.ListMine(c.Request.Context(), session)
		if err != nil {
			status, msg := statusForError(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.SessionFromContext(c)

		orders, err := svc.ListAll(c.Request.Context(), session)
		if err != nil {
			status, msg := statusForError(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func parseOrderID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
