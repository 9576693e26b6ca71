package cart

import (
	"math"

	"github.com/eliezer-r/storefront-platform/internal/models"
)

// Totals are derived from the line list and never mutated directly; every
// state transition recomputes them from scratch.
type Totals struct {
	ItemCount int     `json:"itemCount"`
	Total     float64 `json:"total"`
}

type CheckoutCosts struct {
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	FinalTotal float64 `json:"finalTotal"`
}

// Rates holds the checkout pricing knobs.
type Rates struct {
	ShippingFee float64
	TaxRate     float64
}

var StandardRates = Rates{ShippingFee: 9.99, TaxRate: 0.08}

// Compute sums quantities and price*quantity over the lines. The total is
// rounded to two decimals after summing, so the result is independent of
// line order.
func Compute(lines []models.CartLine) Totals {
	var count int

	var total float64

	for _, line := range lines {
		count += line.Quantity
		total += line.Price * float64(line.Quantity)
	}

	return Totals{ItemCount: count, Total: round2(total)}
}

// Checkout derives shipping, tax and the final total from an already-computed
// cart total. The flat shipping fee is applied unconditionally: checkout is
// only reachable with a non-empty cart. Tax is applied to the unrounded sum.
func (r Rates) Checkout(total float64) CheckoutCosts {
	shipping := r.ShippingFee
	tax := total * r.TaxRate

	return CheckoutCosts{
		Shipping:   shipping,
		Tax:        tax,
		FinalTotal: total + shipping + tax,
	}
}

// CartCheckout is the cart-view variant: an empty cart ships for free.
func (r Rates) CartCheckout(lines []models.CartLine, total float64) CheckoutCosts {
	if len(lines) == 0 {
		return CheckoutCosts{Tax: total * r.TaxRate, FinalTotal: total * (1 + r.TaxRate)}
	}

	return r.Checkout(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
