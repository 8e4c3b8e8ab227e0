package bill

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals are the derived amounts of a bill.
type Totals struct {
	Subtotal float64
	Tax      float64
	Discount float64
	Total    float64
}

// Finite reports whether every amount fits in a float64.
func (t Totals) Finite() bool {
	return finite(t.Subtotal, t.Tax, t.Discount, t.Total)
}

// Subtotal sums the line totals of items.
// A sum too large for float64 comes back as an infinity.
func Subtotal(items []Item) float64 {
	sum := decimal.Zero
	for _, it := range items {
		if !finite(it.Total) {
			return it.Total
		}

		sum = sum.Add(decimal.NewFromFloat(it.Total))
	}

	return sum.InexactFloat64()
}

// ComputeTotals applies percentage tax and discount rates to subtotal.
// Rates are not clamped: negative rates, rates over 100 and negative totals pass through.
// Non-finite inputs fall back to plain float arithmetic; check the result with Totals.Finite.
func ComputeTotals(subtotal, taxRatePercent, discountRatePercent float64) Totals {
	if !finite(subtotal, taxRatePercent, discountRatePercent) {
		tax := subtotal * taxRatePercent / 100
		discount := subtotal * discountRatePercent / 100

		return Totals{Subtotal: subtotal, Tax: tax, Discount: discount, Total: subtotal + tax - discount}
	}

	sub := decimal.NewFromFloat(subtotal)
	tax := sub.Mul(decimal.NewFromFloat(taxRatePercent)).Div(hundred)
	discount := sub.Mul(decimal.NewFromFloat(discountRatePercent)).Div(hundred)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax.InexactFloat64(),
		Discount: discount.InexactFloat64(),
		Total:    sub.Add(tax).Sub(discount).InexactFloat64(),
	}
}

// ParseRate parses a percentage rate. A blank rate is 0.
func ParseRate(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := parseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("rate %q: %w", s, ErrInvalidNumberFormat)
	}

	rate := d.InexactFloat64()
	if !finite(rate) {
		return 0, fmt.Errorf("rate %q is out of range: %w", s, ErrInvalidNumberFormat)
	}

	return rate, nil
}

// RateOf recovers a percentage rate from a stored tax or discount amount, rounded to four places.
// A zero subtotal gives "0" since any rate yields a zero amount.
func RateOf(amount, subtotal float64) string {
	if subtotal == 0 || !finite(amount, subtotal) {
		return "0"
	}

	return decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(subtotal)).
		Mul(hundred).
		Round(4).
		String()
}
