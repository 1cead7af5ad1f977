package cart

import (
	"testing"

	"poppes-store/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []model.CartItem
		wantSubtotal float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name: "Two lines",
			items: []model.CartItem{
				{ProductID: "P1", Price: 100, Quantity: 2},
				{ProductID: "P2", Price: 50, Quantity: 1},
			},
			wantSubtotal: 250,
			wantTax:      12.5,
			wantTotal:    262.5,
		},
		{
			name: "Single line",
			items: []model.CartItem{
				{ProductID: "P1", Price: 450, Quantity: 1},
			},
			wantSubtotal: 450,
			wantTax:      22.5,
			wantTotal:    472.5,
		},
		{
			name:         "Empty cart",
			items:        nil,
			wantSubtotal: 0,
			wantTax:      0,
			wantTotal:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.items)

			assert.InDelta(t, tt.wantSubtotal, totals.Subtotal, 1e-9)
			assert.InDelta(t, tt.wantTax, totals.Tax, 1e-9)
			assert.InDelta(t, tt.wantTotal, totals.Total, 1e-9)
		})
	}
}

func TestComputeTotals_TotalTracksSubtotal(t *testing.T) {
	items := []model.CartItem{
		{ProductID: "P1", Price: 33.33, Quantity: 3},
		{ProductID: "P2", Price: 0.01, Quantity: 7},
	}

	totals := ComputeTotals(items)

	assert.InDelta(t, totals.Subtotal*(1+TaxRate), totals.Total, 1e-9)
	assert.InDelta(t, totals.Subtotal+totals.Tax, totals.Total, 1e-9)
}
