package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/benms/next-tailwind-amazona/controllers/order"
	"github.com/benms/next-tailwind-amazona/middleware"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Convert the current cart into an order
		orders.POST("", orderControllers.PlaceOrderHandler(deps.Orders, deps.CartStorage, deps.Log))

		// Order history for the signed-in user
		orders.GET("/mine", orderControllers.GetMyOrdersHandler(deps.Orders))

		// Fetch one order
		orders.GET("/:id", orderControllers.GetOrderHandler(deps.Orders))

		// Payment confirmation from the gateway callback
		orders.PUT("/:id/pay", orderControllers.PayOrderHandler(deps.Orders))

		// Delivery confirmation; the service itself requires an admin session
		orders.PUT("/:id/deliver", orderControllers.DeliverOrderHandler(deps.Orders))
	}
}
