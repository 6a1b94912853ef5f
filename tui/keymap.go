package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/style"
)

// statefulKeymap holds every binding; help() picks the ones shown per state.
type statefulKeymap struct {
	state state

	// controlsHidden drops the transport bindings from the help line.
	controlsHidden bool

	quit, forceQuit,
	confirm,
	acceptSearchSuggestion,
	back,
	search,
	up, down,
	top, bottom,
	nextPage, prevPage,
	playStop, pause,
	rewind, fastForward,
	volumeUp, volumeDown,
	rolloffUp, rolloffDown,
	menu, toggleControls,
	openURL,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		acceptSearchSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		nextPage: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next page"),
		),
		prevPage: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous page"),
		),
		playStop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/stop"),
		),
		pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		rewind: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "rewind"),
		),
		fastForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "fast-forward"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		rolloffUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "rolloff up"),
		),
		rolloffDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "rolloff down"),
		),
		menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		toggleControls: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide controls"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open stream"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) transport() []key.Binding {
	if k.controlsHidden {
		return []key.Binding{k.toggleControls}
	}
	return []key.Binding{k.playStop, k.pause, k.rewind, k.fastForward, k.volumeUp, k.volumeDown, k.rolloffUp, k.rolloffDown, k.toggleControls}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit, k.back))
	case searchState:
		return to2(h(withDescription(k.confirm, "search"), k.acceptSearchSuggestion, k.back, k.forceQuit))
	case catalogState:
		return h(k.confirm, k.nextPage, k.prevPage, k.search, k.back),
			append(h(k.confirm, k.nextPage, k.prevPage, k.search, k.menu, k.back), k.transport()...)
	case nowPlayingState:
		short := h(k.playStop, k.pause, k.menu, k.search, k.quit)
		if k.controlsHidden {
			short = h(k.menu, k.toggleControls, k.quit)
		}
		return short, append(h(k.menu, k.search, k.openURL, k.quit), k.transport()...)
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

// forList leaves left and right to the transport, so lists page with n and N.
func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
