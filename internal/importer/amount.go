package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeDecimalComma rewrites a comma-decimal number such as "1.234,56" or "-9,99" in dot-decimal
// form. Cells without a comma, or that do not parse, are returned unchanged so bill.ParseItems still
// sees and rejects them.
func normalizeDecimalComma(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.Contains(trimmed, ",") {
		return s
	}

	clean := strings.ReplaceAll(trimmed, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return s
	}

	return d.String()
}

func normalizeAll(cells []string) {
	for i, c := range cells {
		cells[i] = normalizeDecimalComma(c)
	}
}
