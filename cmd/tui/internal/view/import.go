package view

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
	"github.com/MrJamesThe3rd/billbook/internal/importer"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateCustomer
	importStateImporting
	importStateResult
)

type importFields struct {
	name     string
	address  string
	phone    string
	tax      string
	discount string
}

// ImportModel builds a bill from an item spreadsheet (CSV or XLSX) and a few customer fields.
type ImportModel struct {
	CommonModel
	bills *bill.Service

	state      importState
	filePicker filepicker.Model
	path       string
	fields     *importFields
	form       *huh.Form

	status string
	err    error
}

func NewImportModel(bills *bill.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		bills:      bills,
		filePicker: fp,
		fields:     &importFields{},
	}
}

func (m ImportModel) Title() string { return "Import Items" }

func (m ImportModel) ShortHelp() string { return "Esc: back | Enter: select" }

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Bill #%d created with %d items, total %s.",
			msg.bill.ID, len(msg.bill.Items), FormatMoney(msg.bill.Total))

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		return m.updateFilePick(msg)
	case importStateCustomer:
		return m.updateCustomer(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateCustomer, importStateResult:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.state = importStateCustomer
		m.form = m.buildCustomerForm()

		return m, m.form.Init()
	}

	return m, cmd
}

func (m ImportModel) buildCustomerForm() *huh.Form {
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
			huh.NewInput().Title("Tax (%)").Value(&f.tax),
			huh.NewInput().Title("Discount (%)").Value(&f.discount),
		).Description(fmt.Sprintf("Items from %s", filepath.Base(m.path))),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) updateCustomer(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateImporting
	m.status = fmt.Sprintf("Importing from %s...", m.path)

	return m, m.importCmd(m.path, *m.fields)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select item file (.csv or .xlsx):\n\n%s", m.filePicker.View()),
		)
	case importStateCustomer:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) + "\n\n(Esc to go back)",
	)
}

// Messages

type importResultMsg struct {
	bill *bill.Bill
	err  error
}

func (m ImportModel) importCmd(path string, fields importFields) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rows, err := importer.Parse(importer.FormatFromFilename(path), f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		b, err := m.bills.Create(ctx, bill.Form{
			CustomerName:    fields.name,
			CustomerAddress: fields.address,
			CustomerPhone:   fields.phone,
			Items:           rows,
			TaxRate:         fields.tax,
			DiscountRate:    fields.discount,
		})

		return importResultMsg{bill: b, err: err}
	}
}
