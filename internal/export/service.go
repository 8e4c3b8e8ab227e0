// Package export renders bills into downloadable documents.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Document is a rendered file ready to be downloaded or written to disk.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Service renders bills as a PDF document or an XLSX workbook.
type Service struct {
	bills  *bill.Service
	issuer string
	now    func() time.Time
}

// NewService creates a new export Service. issuer is printed in the PDF header.
func NewService(bills *bill.Service, issuer string) *Service {
	return &Service{
		bills:  bills,
		issuer: issuer,
		now:    time.Now,
	}
}

// PDF renders bill id as a single A4 document.
func (s *Service) PDF(ctx context.Context, id bill.ID) (*Document, error) {
	b, err := s.bills.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := renderPDF(s.issuer, b)
	if err != nil {
		return nil, fmt.Errorf("rendering bill %d: %w", id, err)
	}

	return &Document{Filename: PDFFilename(b), ContentType: ContentTypePDF, Body: body}, nil
}

// Workbook renders every bill into an XLSX file with a Bills sheet and an Items sheet.
func (s *Service) Workbook(ctx context.Context) (*Document, error) {
	bills, err := s.bills.List(ctx)
	if err != nil {
		return nil, err
	}

	body, err := renderWorkbook(bills)
	if err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}

	return &Document{
		Filename:    WorkbookFilename(s.now().Format(time.DateOnly)),
		ContentType: ContentTypeXLSX,
		Body:        body,
	}, nil
}

// PDFFilename returns the download name for a bill, e.g. "bill_12_Acme_Corp.pdf".
func PDFFilename(b *bill.Bill) string {
	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, b.CustomerName)

	return fmt.Sprintf("bill_%d_%s.pdf", b.ID, safe)
}

// WorkbookFilename returns the download name for the bill list, stamped with the given date.
func WorkbookFilename(date string) string {
	return "bills_" + strings.ReplaceAll(date, "-", "") + ".xlsx"
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func quantity(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}
