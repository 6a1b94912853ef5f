// Package ui renders short-lived notifications under a terminal view.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/screenroom/screenroom/style"
)

// Model holds at most one notification.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// Current returns the notification on screen, if any.
func (m *Model) Current() string {
	return m.notification
}

// ClearNotificationMsg clears the notification shown at At.
type ClearNotificationMsg struct {
	At time.Time
}

// Notify returns a tea.Cmd that shows text as a notification.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return text
	}
}

// NotifyError shows err as a notification, prefixed with what failed.
func NotifyError(what string, err error) tea.Cmd {
	return Notify(fmt.Sprintf("%s: %s", what, err))
}

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// ClearNotification clears the notification shown at at once its lifetime is over.
func ClearNotification(at time.Time) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{At: at}
	})
}

// Update shows string messages and clears them after Lifetime.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case string:
		m.notification = msg
		m.notifiedAt = time.Now()
		return ClearNotification(m.notifiedAt)
	case ClearNotificationMsg:
		// a newer notification outlives the tick of an older one
		if msg.At.Equal(m.notifiedAt) {
			m.notification = ""
		}
		return nil
	}
	return nil
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	return content + "  " + style.Faint(m.notification)
}
