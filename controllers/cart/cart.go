package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/benms/next-tailwind-amazona/cart"
	"github.com/benms/next-tailwind-amazona/logger"
	"github.com/benms/next-tailwind-amazona/models"
)

type AddItemInput struct {
	Slug     string `json:"slug" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type PaymentMethodInput struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

// GET /cart
func GetCart(factory StorageFactory, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := cart.NewStore(factory(c), log)
		c.JSON(http.StatusOK, store.State())
	}
}

// POST /cart/items
//
// The resulting quantity is the current entry's quantity plus the
// requested amount; the store then replaces the entry wholesale.
func AddItem(db *gorm.DB, factory StorageFactory, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.Where("slug = ?", input.Slug).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		store := cart.NewStore(factory(c), log)

		quantity := input.Quantity
		for _, item := range store.State().Items {
			if item.Slug == input.Slug {
				quantity += item.Quantity
				break
			}
		}
		if product.CountInStock < quantity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sorry. Product is out of stock"})
			return
		}

		store.AddItem(cart.Item{
			ProductID:    product.ID,
			Slug:         product.Slug,
			Name:         product.Name,
			Image:        product.Image,
			Price:        product.Price,
			Quantity:     quantity,
			CountInStock: product.CountInStock,
		})

		c.JSON(http.StatusOK, store.State())
	}
}

// DELETE /cart/items/:slug
func RemoveItem(factory StorageFactory, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := cart.NewStore(factory(c), log)
		store.RemoveItem(c.Param("slug"))
		c.JSON(http.StatusOK, store.State())
	}
}

// PUT /cart/shipping-address
func SaveShippingAddress(factory StorageFactory, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch cart.ShippingAddressPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store := cart.NewStore(factory(c), log)
		store.SaveShippingAddress(patch)
		c.JSON(http.StatusOK, store.State())
	}
}

// PUT /cart/payment-method
func SavePaymentMethod(factory StorageFactory, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PaymentMethodInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method is required"})
			return
		}
		if !models.ValidPaymentMethod(input.PaymentMethod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
			return
		}

		store := cart.NewStore(factory(c), log)
		store.SavePaymentMethod(input.PaymentMethod)
		c.JSON(http.StatusOK, store.State())
	}
}

// DELETE /cart/items
func ClearItems(factory StorageFactory, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := cart.NewStore(factory(c), log)
		store.ClearItems()
		c.JSON(http.StatusOK, store.State())
	}
}

// DELETE /cart
func ResetCart(factory StorageFactory, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := cart.NewStore(factory(c), log)
		store.Reset()
		c.JSON(http.StatusOK, store.State())
	}
}
