package checkout

import "github.com/benms/next-tailwind-amazona/cart"

// Step is one stop in the linear checkout sequence.
type Step int

const (
	StepCart Step = iota + 1
	StepShipping
	StepPayment
	StepPlaceOrder
)

var stepNames = map[Step]string{
	StepCart:       "cart",
	StepShipping:   "shipping",
	StepPayment:    "payment",
	StepPlaceOrder: "placeorder",
}

func (s Step) String() string {
	return stepNames[s]
}

// ParseStep resolves a step name from a route parameter.
func ParseStep(name string) (Step, bool) {
	for step, n := range stepNames {
		if n == name {
			return step, true
		}
	}
	return 0, false
}

// Denial explains why a step cannot be entered and where to send the
// shopper instead.
type Denial struct {
	Redirect Step   `json:"redirect"`
	Reason   string `json:"reason"`
}

// CanEnter checks the entry preconditions for a step against the cart
// state. A nil result means the step may be entered.
//
// Later steps require everything earlier steps require: an empty cart
// redirects to the cart no matter how far along the shopper is.
func CanEnter(state cart.State, step Step) *Denial {
	if step > StepCart && len(state.Items) == 0 {
		return &Denial{Redirect: StepCart, Reason: "cart is empty"}
	}
	if step > StepShipping && state.ShippingAddress.Address == "" {
		return &Denial{Redirect: StepShipping, Reason: "shipping address is required"}
	}
	if step > StepPayment && state.PaymentMethod == "" {
		return &Denial{Redirect: StepPayment, Reason: "payment method is required"}
	}
	return nil
}
