package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

// formFields backs the huh inputs. It lives behind a pointer so the bound values survive
// bubbletea copying the model on every update.
type formFields struct {
	name     string
	address  string
	phone    string
	billDate string
	dueDate  string
	items    string
	tax      string
	discount string
	notes    string
}

type FormModel struct {
	CommonModel
	bills *bill.Service

	id     bill.ID
	fields *formFields
	form   *huh.Form
	saving bool
	err    error
}

// NewFormModel opens an empty form when b is nil and an edit form otherwise.
func NewFormModel(bills *bill.Service, b *bill.Bill) FormModel {
	m := FormModel{
		bills:  bills,
		fields: &formFields{},
	}

	if b != nil {
		m.id = b.ID
		*m.fields = formFields{
			name:     b.CustomerName,
			address:  b.CustomerAddress,
			phone:    b.CustomerPhone,
			billDate: b.BillDate,
			dueDate:  b.DueDate,
			items:    FormatItemLines(b.Items),
			tax:      bill.RateOf(b.Tax, b.Subtotal),
			discount: bill.RateOf(b.Discount, b.Subtotal),
			notes:    b.Notes,
		}
	}

	m.form = m.buildForm()
	return m
}

func (m FormModel) editing() bool { return m.id != 0 }

func (m FormModel) Title() string {
	if m.editing() {
		return fmt.Sprintf("Edit Bill #%d", m.id)
	}
	return "New Bill"
}

func (m FormModel) ShortHelp() string { return "Esc: cancel | Tab: next field | Enter: submit" }

func (m FormModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m FormModel) buildForm() *huh.Form {
	f := m.fields

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Customer Name").
				Value(&f.name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("customer name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Customer Address").Value(&f.address),
			huh.NewInput().Title("Customer Phone").Value(&f.phone),
			huh.NewInput().Title("Bill Date").Placeholder("YYYY-MM-DD, blank for today").Value(&f.billDate),
			huh.NewInput().Title("Due Date").Placeholder("YYYY-MM-DD").Value(&f.dueDate),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Items").
				Description("One per line: name; quantity; price").
				Lines(8).
				Value(&f.items),
			huh.NewInput().Title("Tax (%)").Value(&f.tax),
			huh.NewInput().Title("Discount (%)").Value(&f.discount),
			huh.NewText().Title("Notes").Lines(3).Value(&f.notes),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveMsg:
		m.saving = false
		if msg.err != nil {
			// Keep the values and let the user fix them.
			m.err = msg.err
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg {
			return SavedMsg{Bill: msg.bill, Created: !m.editing()}
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && !m.saving {
			return m, Back
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true
	m.err = nil
	return m, m.saveCmd()
}

func (m FormModel) View() string {
	if m.saving {
		return lipgloss.NewStyle().Padding(2).Render("Saving bill...")
	}

	content := m.form.View()
	if m.err != nil {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) +
			"\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m FormModel) billForm() bill.Form {
	f := m.fields

	return bill.Form{
		CustomerName:    f.name,
		CustomerAddress: f.address,
		CustomerPhone:   f.phone,
		BillDate:        f.billDate,
		DueDate:         f.dueDate,
		Items:           ParseItemLines(f.items),
		TaxRate:         f.tax,
		DiscountRate:    f.discount,
		Notes:           f.notes,
	}
}

type saveMsg struct {
	bill *bill.Bill
	err  error
}

func (m FormModel) saveCmd() tea.Cmd {
	form := m.billForm()
	id := m.id

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			b   *bill.Bill
			err error
		)
		if id != 0 {
			b, err = m.bills.Update(ctx, id, form)
		} else {
			b, err = m.bills.Create(ctx, form)
		}

		return saveMsg{bill: b, err: err}
	}
}
