package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/billbook/internal/bill"
	billStore "github.com/MrJamesThe3rd/billbook/internal/bill/store"
	"github.com/MrJamesThe3rd/billbook/internal/config"
	"github.com/MrJamesThe3rd/billbook/internal/database"
	"github.com/MrJamesThe3rd/billbook/internal/export"
)

type model struct {
	appName       string
	billService   *bill.Service
	exportService *export.Service

	currentView View

	listView   view.ListModel
	formView   view.FormModel
	importView view.ImportModel
	exportView view.ExportModel
}

type View int

const (
	ViewMenu   View = 0
	ViewList   View = 1
	ViewForm   View = 2
	ViewImport View = 3
	ViewExport View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	store := billStore.New(db, cfg.DB.Driver)
	if err := store.Migrate(context.Background()); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	billSvc := bill.NewService(store)
	expSvc := export.NewService(billSvc, cfg.App.Name)

	return model{
		appName:       cfg.App.Name,
		billService:   billSvc,
		exportService: expSvc,
		currentView:   ViewMenu,
		listView:      view.NewListModel(billSvc),
		formView:      view.NewFormModel(billSvc, nil),
		importView:    view.NewImportModel(billSvc),
		exportView:    view.NewExportModel(billSvc, expSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.billService)

				return m, m.listView.Init()
			case "2":
				return m.openForm(nil)
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.billService)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.billService, m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.EditBillMsg:
		return m.openForm(msg.Bill)
	case view.SavedMsg:
		status := fmt.Sprintf("Bill #%d updated.", msg.Bill.ID)
		if msg.Created {
			status = fmt.Sprintf("Bill #%d created.", msg.Bill.ID)
		}

		m.currentView = ViewList
		m.listView = view.NewListModel(m.billService).WithStatus(status)

		return m, m.listView.Init()
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewForm:
		var newModel tea.Model
		newModel, cmd = m.formView.Update(msg)
		m.formView = newModel.(view.FormModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) openForm(b *bill.Bill) (tea.Model, tea.Cmd) {
	m.currentView = ViewForm
	m.formView = view.NewFormModel(m.billService, b)

	return m, m.formView.Init()
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewList:
		return m.listView
	case ViewForm:
		return m.formView
	case ViewImport:
		return m.importView
	case ViewExport:
		return m.exportView
	}

	return nil
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. List Bills\n" +
				"2. New Bill\n" +
				"3. Import Items\n" +
				"4. Export Bills\n\n" +
				"q. Quit",
		)
	}

	v := m.current()
	if v == nil {
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(v.Title())
	help := lipgloss.NewStyle().Faint(true).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, v.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
