package cart

import "poppes-store/internal/model"

// TaxRate is the flat tax applied to every order.
const TaxRate = 0.05

// Totals is a pure derivation of the cart's current contents. Values keep
// full float64 precision; rounding happens at presentation time only.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives subtotal, tax and total from a set of line items.
func ComputeTotals(items []model.CartItem) Totals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      subtotal * TaxRate,
		Total:    subtotal * (1 + TaxRate),
	}
}
