package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
	"github.com/MrJamesThe3rd/billbook/internal/export"
)

const exportTimeout = 2 * time.Minute

type exportStep int

const (
	exportStepCounting exportStep = iota
	exportStepDirectory
	exportStepWriting
	exportStepDone
)

// ExportModel writes the bill workbook and one PDF per bill into a directory chosen by the user.
type ExportModel struct {
	CommonModel
	bills   *bill.Service
	exports *export.Service

	step    exportStep
	count   int
	dir     *string
	form    *huh.Form
	spinner spinner.Model
	result  viewport.Model
	err     error
}

func NewExportModel(bills *bill.Service, exports *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		bills:   bills,
		exports: exports,
		dir:     new("./exports"),
		spinner: s,
		result:  viewport.New(80, 15),
	}
}

func (m ExportModel) Title() string { return "Export Bills" }

func (m ExportModel) ShortHelp() string {
	switch m.step {
	case exportStepWriting:
		return "Exporting..."
	case exportStepDone:
		return "Esc: back to menu | ↑/↓: scroll"
	}
	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.countCmd())
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.step != exportStepWriting {
		return m, Back
	}

	switch msg := msg.(type) {
	case countMsg:
		if msg.err != nil {
			m.step = exportStepDone
			m.err = msg.err
			return m, nil
		}

		m.count = msg.count
		m.step = exportStepDirectory
		m.form = m.directoryForm()
		return m, m.form.Init()

	case exportResultMsg:
		m.step = exportStepDone
		m.err = msg.err
		m.result.SetContent(msg.summary)
		return m, nil

	case tea.WindowSizeMsg:
		m.result.Width = msg.Width - 4
		m.result.Height = max(msg.Height-12, 5)
	}

	switch m.step {
	case exportStepDirectory:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.step = exportStepWriting
		return m, tea.Batch(m.spinner.Tick, m.exportCmd(*m.dir))

	case exportStepDone:
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m ExportModel) directoryForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output Directory").
				Description(fmt.Sprintf("Writes the bill workbook and %d PDFs; the directory is created if missing", m.count)).
				Placeholder("./exports").
				Value(m.dir),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ExportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.step {
	case exportStepCounting:
		return pad.Render(m.spinner.View() + " Counting bills...")
	case exportStepDirectory:
		return pad.Render(m.form.View())
	case exportStepWriting:
		return pad.Render(fmt.Sprintf("%s Writing %d bills to %s...", m.spinner.View(), m.count, *m.dir))
	}

	if m.err != nil {
		return pad.Render(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Render("Export Complete!")

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.result.View()))
}

// Messages

type countMsg struct {
	count int
	err   error
}

type exportResultMsg struct {
	summary string
	err     error
}

func (m ExportModel) countCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		bills, err := m.bills.List(ctx)
		return countMsg{count: len(bills), err: err}
	}
}

func (m ExportModel) exportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		workbook, items, err := m.exports.ExportDir(ctx, dir)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{summary: m.exports.GenerateSummary(workbook, items)}
	}
}
