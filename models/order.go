package models

import "time"

type PaymentMethod string

const (
	PaymentMethodPayPal         PaymentMethod = "PayPal"
	PaymentMethodStripe         PaymentMethod = "Stripe"
	PaymentMethodCashOnDelivery PaymentMethod = "CashOnDelivery"
)

// ValidPaymentMethod reports whether m is one of the recognized values.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodPayPal, PaymentMethodStripe, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// ShippingAddress is snapshotted onto the order at submission time.
type ShippingAddress struct {
	FullName         string  `json:"full_name"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	PostalCode       string  `json:"postal_code"`
	Country          string  `json:"country"`
	Lat              float64 `json:"lat,omitempty"`
	Lng              float64 `json:"lng,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	PlaceID          string  `json:"place_id,omitempty"`
}

// PaymentResult holds the gateway confirmation exactly as supplied by the
// caller. It is not verified against the gateway.
type PaymentResult struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	PayerEmail string `json:"payer_email"`
}

type Order struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderRef string  `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID   *string `json:"user_id"`
	User     *User   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`

	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(20)" json:"payment_method"`

	ItemsPrice    float64 `json:"items_price"`
	ShippingPrice float64 `json:"shipping_price"`
	TaxPrice      float64 `json:"tax_price"`
	TotalPrice    float64 `json:"total_price"`

	IsPaid        bool          `gorm:"default:false" json:"is_paid"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	PaymentResult PaymentResult `gorm:"embedded;embeddedPrefix:payment_" json:"payment_result"`

	IsDelivered bool       `gorm:"default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
