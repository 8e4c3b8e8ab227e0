package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

const (
	SheetBills = "Bills"
	SheetItems = "Items"
)

var (
	billHeader = []any{
		"ID", "Customer", "Address", "Phone", "Bill date", "Due date",
		"Subtotal", "Tax", "Discount", "Total", "Notes",
	}
	itemHeader = []any{"Bill ID", "Item", "Quantity", "Price", "Total"}
)

func renderWorkbook(bills []*bill.Bill) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetBills); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetItems); err != nil {
		return nil, fmt.Errorf("adding sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}

	if err := writeRow(f, SheetBills, 1, billHeader); err != nil {
		return nil, err
	}

	if err := writeRow(f, SheetItems, 1, itemHeader); err != nil {
		return nil, err
	}

	if err := f.SetRowStyle(SheetBills, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}

	if err := f.SetRowStyle(SheetItems, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}

	itemRow := 2

	for i, b := range bills {
		err := writeRow(f, SheetBills, i+2, []any{
			int64(b.ID), b.CustomerName, b.CustomerAddress, b.CustomerPhone, b.BillDate, b.DueDate,
			b.Subtotal, b.Tax, b.Discount, b.Total, b.Notes,
		})
		if err != nil {
			return nil, err
		}

		for _, it := range b.Items {
			if err := writeRow(f, SheetItems, itemRow, []any{int64(b.ID), it.Name, it.Quantity, it.Price, it.Total}); err != nil {
				return nil, err
			}

			itemRow++
		}
	}

	if err := f.SetColWidth(SheetBills, "B", "C", 28); err != nil {
		return nil, fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.SetColWidth(SheetItems, "B", "B", 28); err != nil {
		return nil, fmt.Errorf("sizing columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, n, err)
	}

	return nil
}
