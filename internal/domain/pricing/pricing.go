// Package pricing computes cart totals: subtotal, threshold discount, tax and
// grand total. All arithmetic is exact decimal; nothing is rounded here.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-storefront/internal/domain/cart"
)

// Totals is derived from a cart snapshot and never stored on its own.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Policy holds the pricing parameters. Rates are percentages.
type Policy struct {
	// DiscountThreshold is the inclusive subtotal from which the discount applies.
	DiscountThreshold decimal.Decimal
	DiscountPercent   decimal.Decimal
	TaxPercent        decimal.Decimal
}

// DefaultPolicy is 10% off from 100 upwards, then 15% tax.
var DefaultPolicy = Policy{
	DiscountThreshold: decimal.NewFromInt(100),
	DiscountPercent:   decimal.NewFromInt(10),
	TaxPercent:        decimal.NewFromInt(15),
}

// Compute prices items under DefaultPolicy.
func Compute(items []cart.Item) Totals {
	return DefaultPolicy.Compute(items)
}

// Compute prices items. An empty cart yields all-zero totals.
func (p Policy) Compute(items []cart.Item) Totals {
	subtotal := calcSubtotal(items)

	discount := decimal.Zero
	if subtotal.GreaterThanOrEqual(p.DiscountThreshold) {
		discount = percentOf(subtotal, p.DiscountPercent)
	}

	taxed := subtotal.Sub(discount)
	tax := percentOf(taxed, p.TaxPercent)

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxed.Add(tax),
	}
}

// calcSubtotal returns the sum of price * qty across all items.
func calcSubtotal(items []cart.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent.Shift(-2))
}
