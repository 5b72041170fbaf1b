package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/benms/next-tailwind-amazona/controllers/cart"
	productcontroller "github.com/benms/next-tailwind-amazona/controllers/product"
)

// SetupStorefrontRoutes registers the anonymous browsing, cart and
// checkout-gate endpoints. The cart travels with the shopper (cookie or
// redis slot), so no sign-in is needed until the order is placed.
func SetupStorefrontRoutes(r *gin.Engine, deps Deps) {
	r.GET("/products", productcontroller.GetProducts(deps.DB))
	r.GET("/products/:slug", productcontroller.GetProductBySlug(deps.DB))

	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(deps.CartStorage, deps.Log))
		cartGroup.POST("/items", cartControllers.AddItem(deps.DB, deps.CartStorage, deps.Log))
		cartGroup.DELETE("/items/:slug", cartControllers.RemoveItem(deps.CartStorage, deps.Log))
		cartGroup.DELETE("/items", cartControllers.ClearItems(deps.CartStorage, deps.Log))
		cartGroup.PUT("/shipping-address", cartControllers.SaveShippingAddress(deps.CartStorage, deps.Log))
		cartGroup.PUT("/payment-method", cartControllers.SavePaymentMethod(deps.CartStorage, deps.Log))
		cartGroup.DELETE("", cartControllers.ResetCart(deps.CartStorage, deps.Log))
	}

	r.GET("/checkout/:step", cartControllers.CheckoutStep(deps.CartStorage, deps.Log))
}
