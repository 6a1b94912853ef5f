// Package tui is the interactive terminal front end of a playback session.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/screenroom/screenroom/room"
	"github.com/screenroom/screenroom/session"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Query is searched as soon as the interface opens.
	Query string
	// User names whoever sits at the terminal.
	User string
}

// Run opens a session on the configured source and drives it until the user quits.
func Run(options *Options) error {
	s := &sink{}

	r, err := room.New(room.Options{Hooks: s, View: s, Menu: s})
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bubble := newBubble(options, r, session.NewUser(options.User))
	bubble.ctx = ctx

	program := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx))
	s.attach(program.Send)

	_, err = program.Run()
	s.attach(nil)
	return err
}
