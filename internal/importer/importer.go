// Package importer turns uploaded item spreadsheets into raw bill item rows.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
	enc "github.com/MrJamesThe3rd/billbook/internal/encoding"
)

// ErrNoHeader is returned when no row of the file names the name, quantity and price columns.
var ErrNoHeader = errors.New("no item header row found")

// Accepted header spellings, compared case-insensitively after trimming.
var (
	nameHeaders     = []string{"name", "item", "item_name", "description"}
	quantityHeaders = []string{"quantity", "qty", "item_quantity"}
	priceHeaders    = []string{"price", "unit_price", "item_price"}
)

// ParseItems reads a CSV of bill items separated by ',' or ';'. Rows above the header are ignored,
// as are the trailing columns not named in it. Cells are returned unparsed so they go through
// bill.ParseItems exactly like form input. Semicolon files may write numbers as "1.234,56".
func ParseItems(r io.Reader) (bill.ItemRows, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return bill.ItemRows{}, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return bill.ItemRows{}, fmt.Errorf("read items: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return bill.ItemRows{}, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return bill.ItemRows{}, ErrNoHeader
	}

	items := collect(rows[headerIdx+1:], cols)
	if reader.Comma == ';' {
		normalizeAll(items.Quantities)
		normalizeAll(items.Prices)
	}

	return items, nil
}

func collect(rows [][]string, cols columns) bill.ItemRows {
	out := bill.ItemRows{
		Names:      make([]string, 0, len(rows)),
		Quantities: make([]string, 0, len(rows)),
		Prices:     make([]string, 0, len(rows)),
	}

	for _, row := range rows {
		out.Names = append(out.Names, cellValue(row, cols.name))
		out.Quantities = append(out.Quantities, cellValue(row, cols.quantity))
		out.Prices = append(out.Prices, cellValue(row, cols.price))
	}

	return out
}

type columns struct {
	name, quantity, price int
}

// findHeader returns the first row that names all three item columns.
func findHeader(rows [][]string) (columns, int, bool) {
	for rowIdx, row := range rows {
		cols := columns{name: -1, quantity: -1, price: -1}

		for i, cell := range row {
			h := strings.ToLower(strings.TrimSpace(cell))

			switch {
			case cols.name < 0 && slices.Contains(nameHeaders, h):
				cols.name = i
			case cols.quantity < 0 && slices.Contains(quantityHeaders, h):
				cols.quantity = i
			case cols.price < 0 && slices.Contains(priceHeaders, h):
				cols.price = i
			}
		}

		if cols.name >= 0 && cols.quantity >= 0 && cols.price >= 0 {
			return cols, rowIdx, true
		}
	}

	return columns{}, 0, false
}

// sniffDelimiter picks ';' when the first non-blank line has more semicolons than commas.
// Spreadsheets in comma-decimal locales export that way.
func sniffDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
			return ';'
		}

		return ','
	}

	return ','
}

// cellValue returns the cell at idx, or "" when the row is too short.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return row[idx]
}
