package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/benms/next-tailwind-amazona/middleware"
	"github.com/benms/next-tailwind-amazona/services"
)

// GET /admin/orders/export-excel
func ExportOrdersToExcel(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.SessionFromContext(c)

		orders, err := svc.ListAll(c.Request.Context(), session)
		if err != nil {
			status, msg := statusForError(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "OrderRef", "UserID", "PaymentMethod",
			"ItemsPrice", "ShippingPrice", "TaxPrice", "TotalPrice",
			"IsPaid", "PaidAt", "IsDelivered", "DeliveredAt", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderRef)
			if o.UserID != nil {
				row.AddCell().SetValue(*o.UserID)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(string(o.PaymentMethod))
			row.AddCell().SetValue(o.ItemsPrice)
			row.AddCell().SetValue(o.ShippingPrice)
			row.AddCell().SetValue(o.TaxPrice)
			row.AddCell().SetValue(o.TotalPrice)
			row.AddCell().SetValue(o.IsPaid)
			if o.PaidAt != nil {
				row.AddCell().SetValue(o.PaidAt.Format("2006-01-02 15:04:05"))
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(o.IsDelivered)
			if o.DeliveredAt != nil {
				row.AddCell().SetValue(o.DeliveredAt.Format("2006-01-02 15:04:05"))
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
