package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

const dbTimeout = 5 * time.Second

// itemSeparator splits the fields of an item line: "Widget; 2; 9.99".
const itemSeparator = ";"

// FormatMoney formats an amount with two decimals.
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// ParseItemLines turns "name; quantity; price" lines into raw item rows. Missing fields are left
// empty, so bill.ParseItems skips that line. Blank lines are ignored.
func ParseItemLines(text string) bill.ItemRows {
	var rows bill.ItemRows

	for line := range strings.Lines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, itemSeparator, 3)
		for len(fields) < 3 {
			fields = append(fields, "")
		}

		rows.Names = append(rows.Names, strings.TrimSpace(fields[0]))
		rows.Quantities = append(rows.Quantities, strings.TrimSpace(fields[1]))
		rows.Prices = append(rows.Prices, strings.TrimSpace(fields[2]))
	}

	return rows
}

// FormatItemLines is the inverse of ParseItemLines for stored items.
func FormatItemLines(items []bill.Item) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = strings.Join([]string{
			it.Name,
			strconv.FormatFloat(it.Quantity, 'f', -1, 64),
			strconv.FormatFloat(it.Price, 'f', -1, 64),
		}, itemSeparator+" ")
	}

	return strings.Join(lines, "\n")
}
