package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/benms/next-tailwind-amazona/controllers/admin"
	orderControllers "github.com/benms/next-tailwind-amazona/controllers/order"
	productcontroller "github.com/benms/next-tailwind-amazona/controllers/product"
	userControllers "github.com/benms/next-tailwind-amazona/controllers/user"
	"github.com/benms/next-tailwind-amazona/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. The admin guard
// runs before every handler, so a non-admin caller gets 401 before any
// field validation happens.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// Dashboard
		adminGroup.GET("/summary", adminController.GetSummary(deps.DB))

		// Order management
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(deps.Orders))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(deps.Orders))
			// Live feed pushes full order documents, so it sits behind
			// the same guard as the listing.
			orderAdmin.GET("/feed", orderControllers.OrderFeedHandler)
		}

		// Product management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(deps.DB))
			productAdmin.GET("", productcontroller.GetProducts(deps.DB))
			productAdmin.GET("/:id", productcontroller.GetProductByID(deps.DB))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(deps.DB))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(deps.DB))
		}

		// User management
		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", userControllers.GetAllUsers(deps.DB))
			userAdmin.GET("/:id", userControllers.GetUser(deps.DB))
			userAdmin.PUT("/:id", userControllers.UpdateUser(deps.DB))
			userAdmin.DELETE("/:id", userControllers.DeleteUser(deps.DB, deps.SuperAdminEmail))
		}
	}
}
