package bill

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

// number accepts a JSON number or a JSON string. Parsing is left to the bill package so that
// a malformed value is reported as an invalid number rather than a malformed body.
type number string

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*n = number(s)

		return nil
	}

	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("expected number or string: %w", err)
	}

	*n = number(raw)

	return nil
}

type itemRequest struct {
	Name     string `json:"name"`
	Quantity number `json:"quantity"`
	Price    number `json:"price"`
}

type billRequest struct {
	CustomerName    string        `json:"customer_name"`
	CustomerAddress string        `json:"customer_address"`
	CustomerPhone   string        `json:"customer_phone"`
	BillDate        string        `json:"bill_date"`
	DueDate         string        `json:"due_date"`
	Items           []itemRequest `json:"items"`
	TaxRate         number        `json:"tax_rate"`
	DiscountRate    number        `json:"discount_rate"`
	Notes           string        `json:"notes"`
}

func (req billRequest) toForm() bill.Form {
	rows := bill.ItemRows{
		Names:      make([]string, len(req.Items)),
		Quantities: make([]string, len(req.Items)),
		Prices:     make([]string, len(req.Items)),
	}

	for i, it := range req.Items {
		rows.Names[i] = it.Name
		rows.Quantities[i] = string(it.Quantity)
		rows.Prices[i] = string(it.Price)
	}

	return bill.Form{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerPhone:   req.CustomerPhone,
		BillDate:        req.BillDate,
		DueDate:         req.DueDate,
		Items:           rows,
		TaxRate:         string(req.TaxRate),
		DiscountRate:    string(req.DiscountRate),
		Notes:           req.Notes,
	}
}
