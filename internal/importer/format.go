package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromFilename picks the format by extension. Anything that is not .xlsx is read as CSV.
func FormatFromFilename(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return FormatXLSX
	}

	return FormatCSV
}

// Parse reads item rows from r in the given format.
func Parse(format Format, r io.Reader) (bill.ItemRows, error) {
	switch format {
	case FormatCSV:
		return ParseItems(r)
	case FormatXLSX:
		return ParseWorkbook(r)
	default:
		return bill.ItemRows{}, fmt.Errorf("unknown format: %s", format)
	}
}
