package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/session"
)

type (
	titleMsg     string
	remainingMsg float64
	volumeMsg    string
	rolloffMsg   string
	controlsMsg  bool

	pageMsg  *catalog.Page
	emptyMsg string
	clearMsg struct{}

	menuMsg bool
)

// sink forwards session and catalog callbacks into the program as messages.
// Callbacks arrive from controller and pager goroutines, never from Update.
type sink struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

func (s *sink) attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *sink) deliver(msg tea.Msg) {
	s.mu.RLock()
	send := s.send
	s.mu.RUnlock()

	if send != nil {
		send(msg)
	}
}

// display.Hooks

func (s *sink) UpdateTitle(title string)           { s.deliver(titleMsg(title)) }
func (s *sink) UpdateRemainingTime(secs float64)   { s.deliver(remainingMsg(secs)) }
func (s *sink) UpdateVolumeLabel(label string)     { s.deliver(volumeMsg(label)) }
func (s *sink) UpdateRolloffLabel(label string)    { s.deliver(rolloffMsg(label)) }
func (s *sink) UpdateControlsVisible(visible bool) { s.deliver(controlsMsg(visible)) }

// catalog.View

func (s *sink) Clear()                  { s.deliver(clearMsg{}) }
func (s *sink) Show(page *catalog.Page) { s.deliver(pageMsg(page)) }
func (s *sink) Empty(term string)       { s.deliver(emptyMsg(term)) }

// session.Menu

func (s *sink) Open(context.Context, session.User) error {
	s.deliver(menuMsg(true))
	return nil
}

func (s *sink) Close(context.Context, session.User) error {
	s.deliver(menuMsg(false))
	return nil
}
