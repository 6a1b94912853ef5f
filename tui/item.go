package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/style"
)

// listItem adapts a catalog item to list.Item.
type listItem struct {
	item *source.Item
	// playing marks the item currently on screen.
	playing bool
}

func (t *listItem) Title() string {
	title := t.item.Title
	if t.playing {
		title = fmt.Sprintf("%s %s", title, lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Play)))
	}
	return title
}

func (t *listItem) Description() string {
	var parts []string

	if t.item.Author != "" {
		parts = append(parts, t.item.Author)
	}

	if t.item.Live {
		parts = append(parts, lipgloss.NewStyle().Foreground(style.LiveColor).Bold(true).Render(source.LiveDuration))
	} else if t.item.Duration != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(t.item.Duration))
	}

	return strings.Join(parts, " • ")
}

func (t *listItem) FilterValue() string {
	return t.item.Title + " " + t.item.Author
}
