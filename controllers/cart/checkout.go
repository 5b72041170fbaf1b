package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benms/next-tailwind-amazona/cart"
	"github.com/benms/next-tailwind-amazona/checkout"
	"github.com/benms/next-tailwind-amazona/logger"
)

// GET /checkout/:step
//
// Entry check for a wizard step. 200 with the step and computed totals
// when entry is allowed; 409 with the redirect target otherwise.
func CheckoutStep(factory StorageFactory, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		step, ok := checkout.ParseStep(c.Param("step"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown checkout step"})
			return
		}

		store := cart.NewStore(factory(c), log)
		state := store.State()

		if denial := checkout.CanEnter(state, step); denial != nil {
			c.JSON(http.StatusConflict, gin.H{
				"redirect": denial.Redirect.String(),
				"reason":   denial.Reason,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"step":   step.String(),
			"cart":   state,
			"totals": checkout.ComputeTotals(state.Items),
		})
	}
}
