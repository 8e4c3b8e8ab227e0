package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct{}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// EditBillMsg asks the root model to open the bill form. A nil Bill means a new bill.
type EditBillMsg struct {
	Bill *bill.Bill
}

// SavedMsg reports a bill written by the form.
type SavedMsg struct {
	Bill    *bill.Bill
	Created bool
}
