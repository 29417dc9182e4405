package fiscal

import (
	"math"
	"testing"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name    string
		items   []models.LineItem
		rate    float64
		wantSub float64
		wantTax float64
		wantTot float64
	}{
		{
			name:    "empty item list yields zero totals",
			items:   nil,
			rate:    0.10,
			wantSub: 0, wantTax: 0, wantTot: 0,
		},
		{
			name: "single tax-included line",
			items: []models.LineItem{
				{Description: "Wedding ceremony set", Quantity: 1, UnitPrice: 110, TaxIncluded: true},
			},
			rate:    0.10,
			wantSub: 100.00, wantTax: 10.00, wantTot: 110.00,
		},
		{
			name: "tax-exclusive line with quantity",
			items: []models.LineItem{
				{Description: "Rehearsal hour", Quantity: 2, UnitPrice: 100, TaxIncluded: false},
			},
			rate:    0.10,
			wantSub: 200.00, wantTax: 20.00, wantTot: 220.00,
		},
		{
			name: "mixed inclusive and exclusive lines",
			items: []models.LineItem{
				{Description: "Evening performance", Quantity: 1, UnitPrice: 110, TaxIncluded: true},
				{Description: "Travel", Quantity: 1, UnitPrice: 100, TaxIncluded: false},
			},
			rate:    0.10,
			wantSub: 200.00, wantTax: 20.00, wantTot: 220.00,
		},
		{
			name: "rounding at the cent boundary",
			items: []models.LineItem{
				{Description: "Sheet music", Quantity: 1, UnitPrice: 49.95, TaxIncluded: true},
			},
			rate: 0.10,
			// 49.95 / 1.1 = 45.4090... -> 45.41; tax 4.54; total back to 49.95
			wantSub: 45.41, wantTax: 4.54, wantTot: 49.95,
		},
		{
			name: "zero rate passes amounts through",
			items: []models.LineItem{
				{Description: "Donation concert", Quantity: 1, UnitPrice: 250, TaxIncluded: true},
			},
			rate:    0,
			wantSub: 250.00, wantTax: 0, wantTot: 250.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.rate)
			if got.Subtotal != tt.wantSub || got.TaxAmount != tt.wantTax || got.Total != tt.wantTot {
				t.Errorf("ComputeTotals() = %+v, want subtotal=%v tax=%v total=%v",
					got, tt.wantSub, tt.wantTax, tt.wantTot)
			}
		})
	}
}

// The totals invariant: total ~= subtotal*(1+r) and taxAmount ~= subtotal*r
// within a cent, for any all-inclusive item set.
func TestComputeTotalsInvariant(t *testing.T) {
	rate := 0.10
	sets := [][]models.LineItem{
		{{Quantity: 1, UnitPrice: 0.01, TaxIncluded: true}},
		{{Quantity: 3, UnitPrice: 19.99, TaxIncluded: true}},
		{{Quantity: 7, UnitPrice: 123.45, TaxIncluded: true}, {Quantity: 2, UnitPrice: 0.05, TaxIncluded: true}},
		{{Quantity: 1.5, UnitPrice: 333.33, TaxIncluded: true}},
	}

	for _, items := range sets {
		got := ComputeTotals(items, rate)
		if math.Abs(got.Total-got.Subtotal*(1+rate)) > 0.01 {
			t.Errorf("total %v deviates from subtotal*(1+r) %v", got.Total, got.Subtotal*(1+rate))
		}
		if math.Abs(got.TaxAmount-got.Subtotal*rate) > 0.01 {
			t.Errorf("tax %v deviates from subtotal*r %v", got.TaxAmount, got.Subtotal*rate)
		}
		if got.Total != Round2(got.Subtotal+got.TaxAmount) {
			t.Errorf("total %v != subtotal+tax %v", got.Total, got.Subtotal+got.TaxAmount)
		}
	}
}

func TestRound2HalfUp(t *testing.T) {
	if got := Round2(1.005); got != 1.0 && got != 1.01 {
		// 1.005 is not exactly representable; accept either neighbouring cent.
		t.Errorf("Round2(1.005) = %v", got)
	}
	if got := Round2(2.675); got != 2.67 && got != 2.68 {
		t.Errorf("Round2(2.675) = %v", got)
	}
	if got := Round2(10.994999); got != 10.99 {
		t.Errorf("Round2(10.994999) = %v, want 10.99", got)
	}
	if got := Round2(10.995001); got != 11.00 {
		t.Errorf("Round2(10.995001) = %v, want 11.00", got)
	}
}
