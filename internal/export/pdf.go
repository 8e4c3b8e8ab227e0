package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

var (
	colorAccent = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorMuted  = &props.Color{Red: 108, Green: 117, Blue: 125}
)

func renderPDF(issuer string, b *bill.Bill) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Bill #%d", b.ID), true).
		WithAuthor(issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(issuer, b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.4}))
	m.AddRows(customerRow(b))
	m.AddRows(line.NewRow(4))
	m.AddRows(itemHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorMuted, Thickness: 0.2}))
	m.AddRows(itemRows(b.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorMuted, Thickness: 0.2}))
	m.AddRows(totalsRow(b))

	if b.Notes != "" {
		m.AddRows(line.NewRow(4))
		m.AddRows(notesRow(b.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	return doc.GetBytes(), nil
}

func headerRow(issuer string, b *bill.Bill) core.Row {
	due := "Due: -"
	if b.DueDate != "" {
		due = "Due: " + b.DueDate
	}

	return row.New(20).Add(
		col.New(7).Add(
			text.New(issuer, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorAccent, Top: 1}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("BILL #%d", b.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Date: "+b.BillDate, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorMuted}),
			text.New(due, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorMuted}),
		),
	)
}

func customerRow(b *bill.Bill) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorMuted, Top: 2}),
			text.New(b.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 7}),
			text.New(orDash(b.CustomerAddress), props.Text{Size: 8, Top: 12}),
			text.New(orDash(b.CustomerPhone), props.Text{Size: 8, Top: 16}),
		),
	)
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1}))
	}

	return row.New(6).Add(
		h("Item", 6, align.Left),
		h("Qty", 2, align.Right),
		h("Price", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func itemRows(items []bill.Item) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("No items", props.Text{Size: 8, Color: colorMuted, Top: 1}),
		))}
	}

	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(it.Name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(quantity(it.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(money(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(money(it.Total), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}

	return rows
}

func totalsRow(b *bill.Bill) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: top})
	}

	return row.New(26).Add(
		col.New(6),
		col.New(4).Add(
			label("Subtotal:", 1),
			label("Tax:", 6),
			label("Discount:", 11),
			label("TOTAL:", 17),
		),
		col.New(2).Add(
			value(money(b.Subtotal), 1),
			value(money(b.Tax), 6),
			value("-"+money(b.Discount), 11),
			text.New(money(b.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 17, Color: colorAccent,
			}),
		),
	)
}

func notesRow(notes string) core.Row {
	return row.New(16).Add(col.New(12).Add(
		text.New("NOTES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorMuted}),
		text.New(notes, props.Text{Size: 8, Top: 5}),
	))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
