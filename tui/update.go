package tui

import (
	"fmt"
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/screenroom/screenroom/gate"
	"github.com/screenroom/screenroom/internal/ui"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/query"
	"github.com/screenroom/screenroom/session"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// string and ui.ClearNotificationMsg
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case titleMsg:
		b.nowPlaying.title = string(msg)
		return b, cmd
	case remainingMsg:
		b.nowPlaying.remaining = float64(msg)
		return b, cmd
	case volumeMsg:
		b.nowPlaying.volume = string(msg)
		return b, cmd
	case rolloffMsg:
		b.nowPlaying.rolloff = string(msg)
		return b, cmd
	case controlsMsg:
		b.nowPlaying.controlsHidden = !bool(msg)
		b.keymap.controlsHidden = b.nowPlaying.controlsHidden
		return b, cmd
	case clearMsg:
		b.page = nil
		b.catalogC.SetItems(nil)
		return b, cmd
	case pageMsg:
		b.showPage(msg)
		b.stopLoading()
		b.newState(catalogState)
		return b, cmd
	case emptyMsg:
		b.stopLoading()
		b.catalogC.Title = fmt.Sprintf("No playable results for %q", string(msg))
		b.newState(catalogState)
		return b, cmd
	case menuMsg:
		return b, tea.Batch(cmd, b.onMenu(bool(msg)))
	case startedMsg:
		b.snapshot = msg.snapshot
		if msg.err != nil {
			return b, tea.Batch(cmd, ui.NotifyError("Autostart", msg.err))
		}
		if msg.snapshot.State == session.Playing.String() && b.state == searchState && b.inputC.Value() == "" {
			b.newState(nowPlayingState)
		}
		return b, cmd
	case commandDoneMsg:
		return b, tea.Batch(cmd, b.onCommandDone(msg))
	case searchDoneMsg:
		if msg.err != nil {
			b.stopLoading()
			b.raiseError(msg.err)
		}
		return b, cmd
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case loadingState:
		_, stateCmd = b.updateLoading(msg)
	case searchState:
		_, stateCmd = b.updateSearch(msg)
	case catalogState:
		_, stateCmd = b.updateCatalog(msg)
	case nowPlayingState:
		_, stateCmd = b.updateNowPlaying(msg)
	case errorState:
		_, stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

// onMenu follows the menu opened or closed by the session.
func (b *statefulBubble) onMenu(open bool) tea.Cmd {
	switch {
	case open && b.page != nil:
		b.newState(catalogState)
	case open:
		b.newState(searchState)
		return textinput.Blink
	case b.state == catalogState || b.state == searchState:
		b.newState(nowPlayingState)
	}
	return nil
}

func (b *statefulBubble) onCommandDone(msg commandDoneMsg) tea.Cmd {
	b.snapshot = msg.snapshot

	if msg.err != nil {
		log.WithFields(log.Fields{"command": msg.command.String(), "item": msg.item}).Warn(msg.err)
		return ui.Notify(describe(msg))
	}

	if b.page != nil {
		b.showPage(b.page)
	}

	if msg.command == gate.Play && msg.snapshot.State == session.Playing.String() {
		b.newState(nowPlayingState)
	}

	return nil
}

// transportCommand maps a key to the gate command it triggers.
func (b *statefulBubble) transportCommand(msg tea.KeyMsg) mo.Option[gate.Command] {
	if bubblesKey.Matches(msg, b.keymap.playStop) {
		if b.snapshot.State == session.Playing.String() {
			return mo.Some(gate.Stop)
		}
		return mo.Some(gate.Play)
	}

	bindings := []lo.Tuple2[bubblesKey.Binding, gate.Command]{
		lo.T2(b.keymap.pause, gate.Pause),
		lo.T2(b.keymap.rewind, gate.Rewind),
		lo.T2(b.keymap.fastForward, gate.FastForward),
		lo.T2(b.keymap.volumeUp, gate.VolumeUp),
		lo.T2(b.keymap.volumeDown, gate.VolumeDown),
		lo.T2(b.keymap.rolloffUp, gate.RolloffUp),
		lo.T2(b.keymap.rolloffDown, gate.RolloffDown),
		lo.T2(b.keymap.toggleControls, gate.ToggleControls),
	}

	binding, ok := lo.Find(bindings, func(t lo.Tuple2[bubblesKey.Binding, gate.Command]) bool {
		return bubblesKey.Matches(msg, t.A)
	})
	if !ok {
		return mo.None[gate.Command]()
	}
	return mo.Some(binding.B)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.back) {
		b.stopLoading()
		if b.statesHistory.Len() > 0 {
			b.previousState()
		} else {
			b.setState(searchState)
		}
		return b, nil
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		term := strings.TrimSpace(b.inputC.Value())

		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && term != "":
			if viper.GetBool(key.SearchRememberQueries) {
				go func() {
					if err := query.Remember(term, 1); err != nil {
						log.Warn(err)
					}
				}()
			}
			b.searchSuggestion = mo.None[string]()
			b.startLoading(fmt.Sprintf("Searching for %s...", term))
			return b, tea.Batch(b.searchItems(term), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.CursorEnd()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.inputC.Value() != "" {
				b.inputC.SetValue("")
			} else {
				b.previousState()
			}
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	value := b.inputC.Value()
	if value != "" && viper.GetBool(key.SearchShowQuerySuggestions) {
		if suggestion, ok := query.Suggest(value).Get(); ok && suggestion != value {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else if b.searchSuggestion.IsPresent() {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updateCatalog(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			selected, ok := b.catalogC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			return b, b.playItem(selected.item.ID)
		case bubblesKey.Matches(msg, b.keymap.nextPage):
			return b, b.turnPage(true)
		case bubblesKey.Matches(msg, b.keymap.prevPage):
			return b, b.turnPage(false)
		case bubblesKey.Matches(msg, b.keymap.search):
			b.newState(searchState)
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.menu):
			return b, b.dispatch(gate.CloseMenu)
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}

		if command, ok := b.transportCommand(msg).Get(); ok {
			return b, b.dispatch(command)
		}
	}

	b.catalogC, cmd = b.catalogC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateNowPlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.menu):
			return b, b.dispatch(gate.OpenMenu)
		case bubblesKey.Matches(msg, b.keymap.search):
			b.newState(searchState)
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.openURL):
			return b, b.openStream()
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}

		if command, ok := b.transportCommand(msg).Get(); ok {
			return b, b.dispatch(command)
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}
