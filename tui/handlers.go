package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/gate"
	"github.com/screenroom/screenroom/internal/ui"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/open"
	"github.com/screenroom/screenroom/session"
)

type (
	startedMsg struct {
		err      error
		snapshot session.Snapshot
	}

	commandDoneMsg struct {
		command  gate.Command
		item     string
		err      error
		snapshot session.Snapshot
	}

	searchDoneMsg struct {
		term string
		err  error
	}
)

// Every call below may block on the controller or run a hook, so none of it
// happens inside Update.

func (b *statefulBubble) startSession() tea.Cmd {
	return func() tea.Msg {
		err := b.room.Controller.Start(b.ctx)
		return startedMsg{err: err, snapshot: b.room.Controller.Snapshot()}
	}
}

func (b *statefulBubble) dispatch(cmd gate.Command) tea.Cmd {
	return func() tea.Msg {
		err := b.room.Gate.Dispatch(b.ctx, b.user, cmd)
		return commandDoneMsg{command: cmd, err: err, snapshot: b.room.Controller.Snapshot()}
	}
}

func (b *statefulBubble) playItem(id string) tea.Cmd {
	return func() tea.Msg {
		err := b.room.Gate.PlayItem(b.ctx, b.user, id)
		return commandDoneMsg{command: gate.Play, item: id, err: err, snapshot: b.room.Controller.Snapshot()}
	}
}

func (b *statefulBubble) searchItems(term string) tea.Cmd {
	return func() tea.Msg {
		log.WithFields(log.Fields{"term": term}).Info("searching")
		_, err := b.room.Pager.Search(b.ctx, term, catalog.Params{})
		return searchDoneMsg{term: term, err: err}
	}
}

// turnPage moves the catalog one page forward or back. The page itself
// arrives through the catalog view.
func (b *statefulBubble) turnPage(forward bool) tea.Cmd {
	return func() tea.Msg {
		turn := b.room.Pager.PreviousPage
		if forward {
			turn = b.room.Pager.NextPage
		}

		if turn().IsAbsent() {
			return "Nothing to page through"
		}
		return nil
	}
}

func (b *statefulBubble) openStream() tea.Cmd {
	item := b.snapshot.Item
	if item == nil || !item.Resolved() {
		return ui.Notify("Nothing is playing")
	}

	return func() tea.Msg {
		if err := open.URL(item.URI, ""); err != nil {
			log.Error(err)
			return fmt.Sprintf("Could not open stream: %s", err)
		}
		return nil
	}
}

// describe turns a command failure into a notification.
func describe(msg commandDoneMsg) string {
	switch {
	case errors.Is(msg.err, gate.ErrBusy):
		return fmt.Sprintf("Still working on the previous command, %s dropped", msg.command)
	case errors.Is(msg.err, session.ErrClosed):
		return "The session is closed"
	case msg.item != "":
		return fmt.Sprintf("Cannot play %s: %s", msg.item, msg.err)
	default:
		return fmt.Sprintf("%s failed: %s", msg.command, msg.err)
	}
}
