package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/benms/next-tailwind-amazona/models"
)

type SalesDatum struct {
	Month      string  `gorm:"column:month" json:"month"`
	TotalSales float64 `gorm:"column:total_sales" json:"total_sales"`
}

// GET /admin/summary
//
// Aggregates the dashboard numbers: entity counts, total sales, and
// per-month sales for the chart.
func GetSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ordersCount, productsCount, usersCount int64
		if err := db.Model(&models.Order{}).Count(&ordersCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		if err := db.Model(&models.Product{}).Count(&productsCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}
		if err := db.Model(&models.User{}).Count(&usersCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}

		var ordersPrice float64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&ordersPrice).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum sales"})
			return
		}

		var salesData []SalesDatum
		if err := db.Model(&models.Order{}).
			Select("to_char(created_at, 'YYYY/MM') AS month, SUM(total_price) AS total_sales").
			Group("to_char(created_at, 'YYYY/MM')").
			Order("month").
			Scan(&salesData).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate sales"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders_count":   ordersCount,
			"products_count": productsCount,
			"users_count":    usersCount,
			"orders_price":   ordersPrice,
			"sales_data":     salesData,
		})
	}
}
