package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/benms/next-tailwind-amazona/controllers/cart"
	"github.com/benms/next-tailwind-amazona/logger"
	"github.com/benms/next-tailwind-amazona/services"
)

// Deps carries everything the route groups need.
type Deps struct {
	DB              *gorm.DB
	Orders          *services.OrderService
	CartStorage     cartControllers.StorageFactory
	Log             *logger.Logger
	SuperAdminEmail string
}

// SetupRoutes is the single entry-point that wires up the public,
// user and admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public storefront routes (no middleware)
	SetupStorefrontRoutes(r, deps)

	// Order routes (JWT-protected)
	SetupOrderRoutes(r, deps)

	// Admin routes (JWT + admin guard)
	SetupAdminRoutes(r, deps)
}
