package bill

import (
	"fmt"
	"strconv"
)

// ID is the system-assigned bill identifier.
type ID int64

// ParseID parses a decimal bill id as it appears in URLs.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid bill id %q", s)
	}

	return ID(n), nil
}

// Bill is a customer invoice with its line items and computed amounts.
// Tax and Discount are amounts, not rates.
type Bill struct {
	ID              ID
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	BillDate        string // YYYY-MM-DD
	DueDate         string
	Items           []Item
	Subtotal        float64
	Tax             float64
	Discount        float64
	Total           float64
	Notes           string
}

// Item is a single line of a bill. Items have no identity of their own.
type Item struct {
	Name     string
	Quantity float64
	Price    float64
	Total    float64
}

// Customer holds the contact details last recorded for a customer.
type Customer struct {
	Name    string
	Address string
	Phone   string
}

// ItemRows holds the raw, parallel item columns as submitted by a form.
type ItemRows struct {
	Names      []string
	Quantities []string
	Prices     []string
}

// Form is the raw input for creating or replacing a bill.
type Form struct {
	CustomerName    string `validate:"required"`
	CustomerAddress string
	CustomerPhone   string
	BillDate        string `validate:"omitempty,datetime=2006-01-02"`
	DueDate         string `validate:"omitempty,datetime=2006-01-02"`
	Items           ItemRows
	TaxRate         string
	DiscountRate    string
	Notes           string
}
