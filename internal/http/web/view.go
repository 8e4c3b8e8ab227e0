package web

import (
	"strconv"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

// blankItemRows is how many empty item lines a form offers beyond the existing items.
const blankItemRows = 3

type page struct {
	AppName string
	Flash   *Flash
	Bills   []*bill.Bill
	Bill    *bill.Bill
	Form    *formView
}

type itemRow struct {
	Name, Quantity, Price string
}

type formView struct {
	Title           string
	Action          string
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	BillDate        string
	DueDate         string
	Items           []itemRow
	TaxRate         string
	DiscountRate    string
	Notes           string
}

func newFormView(title, action, today string) *formView {
	return &formView{
		Title:    title,
		Action:   action,
		BillDate: today,
		Items:    make([]itemRow, blankItemRows),
	}
}

// editFormView prefills a form from a stored bill. Bills keep tax and discount as amounts,
// so the rates are recovered from the subtotal.
func editFormView(b *bill.Bill) *formView {
	items := make([]itemRow, 0, len(b.Items)+blankItemRows)
	for _, it := range b.Items {
		items = append(items, itemRow{
			Name:     it.Name,
			Quantity: formatFloat(it.Quantity),
			Price:    formatFloat(it.Price),
		})
	}

	items = append(items, make([]itemRow, blankItemRows)...)

	return &formView{
		Title:           "Edit bill #" + strconv.FormatInt(int64(b.ID), 10),
		Action:          "/edit_bill/" + strconv.FormatInt(int64(b.ID), 10),
		CustomerName:    b.CustomerName,
		CustomerAddress: b.CustomerAddress,
		CustomerPhone:   b.CustomerPhone,
		BillDate:        b.BillDate,
		DueDate:         b.DueDate,
		Items:           items,
		TaxRate:         bill.RateOf(b.Tax, b.Subtotal),
		DiscountRate:    bill.RateOf(b.Discount, b.Subtotal),
		Notes:           b.Notes,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
