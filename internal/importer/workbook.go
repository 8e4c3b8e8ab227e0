package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

// ParseWorkbook reads item rows from the first sheet of an XLSX workbook that has an item header.
// Header and row rules are the same as ParseItems.
func ParseWorkbook(r io.Reader) (bill.ItemRows, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return bill.ItemRows{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return bill.ItemRows{}, fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		cols, headerIdx, ok := findHeader(rows)
		if !ok {
			continue
		}

		return collect(rows[headerIdx+1:], cols), nil
	}

	return bill.ItemRows{}, ErrNoHeader
}
