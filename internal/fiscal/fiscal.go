// Package fiscal computes GST invoice totals. Everything here is pure:
// no I/O, no validation, no state. Callers are responsible for rejecting
// negative quantities and prices before computing totals.
package fiscal

import (
	"math"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

// DefaultTaxRate is the Australian GST rate.
const DefaultTaxRate = 0.10

type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// ComputeTotals derives subtotal, tax and total from the line items.
// Tax-included lines contribute lineTotal / (1 + rate) to the subtotal;
// tax-exclusive lines contribute their full line total. All three outputs
// are rounded half-up at the cent boundary, and the invariant
// total == subtotal + taxAmount holds exactly on the rounded values.
func ComputeTotals(items []models.LineItem, taxRate float64) Totals {
	var subtotal float64
	for _, it := range items {
		lineTotal := it.Quantity * it.UnitPrice
		if it.TaxIncluded {
			subtotal += lineTotal / (1 + taxRate)
		} else {
			subtotal += lineTotal
		}
	}

	sub := Round2(subtotal)
	tax := Round2(sub * taxRate)
	return Totals{
		Subtotal:  sub,
		TaxAmount: tax,
		Total:     Round2(sub + tax),
	}
}

// Round2 rounds to two decimal places, half up. Inputs are non-negative
// here, so half up and half away from zero coincide in practice.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
