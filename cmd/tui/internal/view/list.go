package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateConfirmDelete
)

type ListModel struct {
	CommonModel
	bills *bill.Service

	state   listState
	table   table.Model
	rows    []*bill.Bill
	form    *huh.Form
	confirm *bool

	showDetail bool
	loading    bool
	err        error
	status     string
}

func NewListModel(bills *bill.Service) ListModel {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Customer", Width: 30},
		{Title: "Due", Width: 12},
		{Title: "Total", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		bills:   bills,
		table:   t,
		loading: true,
	}
}

// WithStatus shows a one-line message above the table.
func (m ListModel) WithStatus(status string) ListModel {
	m.status = status
	return m
}

func (m ListModel) Title() string { return "Bills" }
func (m ListModel) ShortHelp() string {
	if m.state == listStateConfirmDelete {
		return "Confirm delete | Esc: cancel"
	}
	return "Esc: back | Enter: details | n: new | e: edit | x: delete | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.bills
		m.err = nil
		m.refreshTable()
		return m, nil

	case deleteMsg:
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Bill #%d deleted.", msg.id)
		}
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateConfirmDelete:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""
			return m, m.loadCmd()
		case "enter":
			m.showDetail = !m.showDetail
			return m, nil
		case "n":
			return m, editCmd(nil)
		case "e":
			if b := m.selected(); b != nil {
				return m, editCmd(b)
			}
			return m, nil
		case "x":
			return m.enterConfirmDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ListModel) enterConfirmDelete() (tea.Model, tea.Cmd) {
	b := m.selected()
	if b == nil {
		return m, nil
	}

	m.confirm = new(false)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete bill #%d for %s?", b.ID, b.CustomerName)).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateConfirmDelete
	m.table.Blur()
	return m, m.form.Init()
}

func (m ListModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	b := m.selected()
	if !*m.confirm || b == nil {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	return m, m.deleteCmd(b.ID)
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bills...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	var panel string

	switch {
	case m.state == listStateConfirmDelete && m.form != nil:
		panel = m.form.View()
	case m.showDetail:
		if b := m.selected(); b != nil {
			panel = detail(b)
		}
	}

	if panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(panel))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func detail(b *bill.Bill) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", activeStyle(fmt.Sprintf("Bill #%d", b.ID)))
	fmt.Fprintf(&sb, "%s\n", b.CustomerName)

	if b.CustomerAddress != "" {
		fmt.Fprintf(&sb, "%s\n", b.CustomerAddress)
	}

	if b.CustomerPhone != "" {
		fmt.Fprintf(&sb, "%s\n", b.CustomerPhone)
	}

	fmt.Fprintf(&sb, "\nDate: %s  Due: %s\n\n", b.BillDate, orDash(b.DueDate))

	for _, it := range b.Items {
		fmt.Fprintf(&sb, "%-20s %6s x %8s = %9s\n",
			it.Name, strconv.FormatFloat(it.Quantity, 'f', -1, 64), FormatMoney(it.Price), FormatMoney(it.Total))
	}

	fmt.Fprintf(&sb, "\nSubtotal %s\nTax      %s\nDiscount -%s\nTotal    %s\n",
		FormatMoney(b.Subtotal), FormatMoney(b.Tax), FormatMoney(b.Discount), activeStyle(FormatMoney(b.Total)))

	if b.Notes != "" {
		fmt.Fprintf(&sb, "\n%s\n", lipgloss.NewStyle().Faint(true).Render(b.Notes))
	}

	return sb.String()
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (m ListModel) selected() *bill.Bill {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}
	return m.rows[idx]
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, b := range m.rows {
		rows = append(rows, table.Row{
			strconv.FormatInt(int64(b.ID), 10),
			b.BillDate,
			b.CustomerName,
			b.DueDate,
			FormatMoney(b.Total),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	bills []*bill.Bill
	err   error
}

func (m ListModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		bills, err := m.bills.List(ctx)
		return loadListMsg{bills: bills, err: err}
	}
}

type deleteMsg struct {
	id  bill.ID
	err error
}

func (m ListModel) deleteCmd(id bill.ID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteMsg{id: id, err: m.bills.Delete(ctx, id)}
	}
}

func editCmd(b *bill.Bill) tea.Cmd {
	return func() tea.Msg {
		return EditBillMsg{Bill: b}
	}
}
