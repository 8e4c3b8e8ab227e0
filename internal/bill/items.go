package bill

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseItems pairs the submitted item columns index by index and converts each complete row into an Item.
// Rows with an empty name, quantity or price are skipped. A complete row with a non-numeric quantity or
// price fails the whole call with ErrInvalidNumberFormat.
func ParseItems(names, quantities, prices []string) ([]Item, error) {
	n := min(len(names), len(quantities), len(prices))
	items := make([]Item, 0, n)

	for i := range n {
		name, qtyStr, priceStr := names[i], quantities[i], prices[i]
		if name == "" || qtyStr == "" || priceStr == "" {
			continue
		}

		qty, err := parseNumber(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("item %d quantity %q: %w", i+1, qtyStr, ErrInvalidNumberFormat)
		}

		price, err := parseNumber(priceStr)
		if err != nil {
			return nil, fmt.Errorf("item %d price %q: %w", i+1, priceStr, ErrInvalidNumberFormat)
		}

		item := Item{
			Name:     name,
			Quantity: qty.InexactFloat64(),
			Price:    price.InexactFloat64(),
			Total:    qty.Mul(price).InexactFloat64(),
		}
		if !finite(item.Quantity, item.Price, item.Total) {
			return nil, fmt.Errorf("item %d %q x %q is out of range: %w", i+1, qtyStr, priceStr, ErrInvalidNumberFormat)
		}

		items = append(items, item)
	}

	return items, nil
}

// Parse is a convenience over ParseItems for a set of submitted rows.
func (r ItemRows) Parse() ([]Item, error) {
	return ParseItems(r.Names, r.Quantities, r.Prices)
}

func parseNumber(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// finite reports whether none of vs overflowed to an infinity (or NaN) when converted to float64.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}

	return true
}
