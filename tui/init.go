package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the session and, when a query was given, searches right away.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, b.startSession()}

	if term := strings.TrimSpace(b.options.Query); term != "" {
		b.inputC.SetValue(term)
		b.startLoading("Searching for " + term + "...")
		cmds = append(cmds, b.searchItems(term), b.spinnerC.Tick)
	}

	return tea.Batch(cmds...)
}
