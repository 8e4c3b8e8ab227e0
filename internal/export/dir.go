package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Item links an exported bill to the file written for it.
type Item struct {
	ID       int64
	Customer string
	Total    float64
	FilePath string
}

// ExportDir writes the bill workbook and one PDF per bill into outputDir, creating it when missing.
// The workbook path is returned alongside the per-bill items.
func (s *Service) ExportDir(ctx context.Context, outputDir string) (string, []Item, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating output directory: %w", err)
	}

	wb, err := s.Workbook(ctx)
	if err != nil {
		return "", nil, err
	}

	workbookPath, err := writeDocument(outputDir, wb)
	if err != nil {
		return "", nil, err
	}

	bills, err := s.bills.List(ctx)
	if err != nil {
		return "", nil, err
	}

	items := make([]Item, 0, len(bills))

	for _, b := range bills {
		body, err := renderPDF(s.issuer, b)
		if err != nil {
			return "", nil, fmt.Errorf("rendering bill %d: %w", b.ID, err)
		}

		path, err := writeDocument(outputDir, &Document{Filename: PDFFilename(b), Body: body})
		if err != nil {
			return "", nil, err
		}

		items = append(items, Item{ID: int64(b.ID), Customer: b.CustomerName, Total: b.Total, FilePath: path})
	}

	return workbookPath, items, nil
}

func writeDocument(dir string, doc *Document) (string, error) {
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", doc.Filename, err)
	}

	return path, nil
}

// GenerateSummary lists the exported files, one line per bill.
func (s *Service) GenerateSummary(workbookPath string, items []Item) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Workbook: %s\n", filepath.Base(workbookPath))

	for _, item := range items {
		fmt.Fprintf(&sb, "* #%d | %s | %s | %s\n", item.ID, item.Customer, money(item.Total), filepath.Base(item.FilePath))
	}

	return sb.String()
}
