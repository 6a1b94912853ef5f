package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/internal/ui"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/room"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/style"
	"github.com/screenroom/screenroom/util"
	"github.com/spf13/viper"
)

// nowPlaying mirrors what the session published through its hooks.
type nowPlaying struct {
	title          string
	remaining      float64
	volume         string
	rolloff        string
	controlsHidden bool
}

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	inputC   textinput.Model
	catalogC list.Model
	helpC    help.Model

	room *room.Room
	user session.User
	ctx  context.Context

	page       *catalog.Page
	nowPlaying nowPlaying
	snapshot   session.Snapshot

	progressStatus string
	lastError      error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)

	if s == searchState {
		b.inputC.Focus()
	} else {
		b.inputC.Blur()
	}
}

// newState moves to s, remembering where we came from.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, errorState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if previous, ok := b.statesHistory.Pop().Get(); ok {
		b.setState(previous)
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.catalogC.SetSize(listWidth, listHeight)
	b.catalogC.Help.Width = listWidth
	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading(status string) {
	b.progressStatus = status
	b.newState(loadingState)
}

func (b *statefulBubble) stopLoading() {
	b.progressStatus = ""
}

// showPage fills the catalog list and marks the item on screen. The cursor
// only moves back to the top for a different page.
func (b *statefulBubble) showPage(page *catalog.Page) {
	turned := b.page != page
	b.page = page

	playing := ""
	if b.snapshot.Item != nil {
		playing = b.snapshot.Item.ID
	}

	items := make([]list.Item, len(page.Items))
	for i, item := range page.Items {
		items[i] = &listItem{item: item, playing: item.ID == playing}
	}

	b.catalogC.SetItems(items)
	if turned {
		b.catalogC.ResetSelected()
	}
	b.catalogC.Title = fmt.Sprintf("%s - page %d of %d", page.Term, page.PageNumber(), page.NumberOfPages)
}

func newBubble(options *Options, r *room.Room, user session.User) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{Limit: 16},
		keymap:        keymap,
		room:          r,
		user:          user,
		ctx:           context.Background(),
		notifier:      &ui.Model{},
		options:       options,
		nowPlaying:    nowPlaying{remaining: -1},
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.catalogC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.catalogC.KeyMap = keymap.forList()
	bubble.catalogC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.catalogC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.catalogC.Title = "Catalog"
	bubble.catalogC.Styles.NoItems = paddingStyle
	bubble.catalogC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.TitleColor).Padding(0, 1)
	bubble.catalogC.StatusMessageLifetime = time.Hour * 999
	bubble.catalogC.SetShowPagination(false)
	bubble.catalogC.SetShowStatusBar(false)
	bubble.catalogC.SetFilteringEnabled(false)
	bubble.catalogC.SetStatusBarItemName("item", "items")

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search %s (v%s)", r.Source.Name(), constant.Version)
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(searchState)

	return &bubble
}
