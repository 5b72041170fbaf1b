package checkout

import (
	"math"

	"github.com/benms/next-tailwind-amazona/cart"
)

const (
	freeShippingThreshold = 200
	flatShippingPrice     = 15
	taxRate               = 0.15
)

// Totals are the price fields computed at the place-order step.
type Totals struct {
	ItemsPrice    float64 `json:"items_price"`
	ShippingPrice float64 `json:"shipping_price"`
	TaxPrice      float64 `json:"tax_price"`
	TotalPrice    float64 `json:"total_price"`
}

// ComputeTotals prices the cart: item subtotal, flat shipping waived over
// the free-shipping threshold, and tax on the subtotal.
func ComputeTotals(items []cart.Item) Totals {
	var itemsPrice float64
	for _, item := range items {
		itemsPrice += float64(item.Quantity) * item.Price
	}
	itemsPrice = round2(itemsPrice)

	shippingPrice := float64(flatShippingPrice)
	if itemsPrice > freeShippingThreshold {
		shippingPrice = 0
	}
	taxPrice := round2(taxRate * itemsPrice)

	return Totals{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shippingPrice,
		TaxPrice:      taxPrice,
		TotalPrice:    round2(itemsPrice + shippingPrice + taxPrice),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
