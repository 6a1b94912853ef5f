package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/screenroom/screenroom/config"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/room"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/source"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	if err := config.Setup(); err != nil {
		panic(err)
	}
}

type stubSource struct {
	searchErr error
}

func (stubSource) Name() string { return "stub" }
func (stubSource) ID() string   { return "stub" }

func (s stubSource) Search(context.Context, string, int) ([]*source.SearchResult, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return []*source.SearchResult{
		{ID: "a", Title: "Alpha", Author: "Ann", Length: "1:00", Type: source.TypeVideo},
		{ID: "b", Title: "Beta", Author: "Ben", Length: "2:00", Type: source.TypeVideo},
	}, nil
}

func (stubSource) Info(_ context.Context, id string) (*source.StreamInfo, error) {
	return &source.StreamInfo{
		ID:            id,
		Title:         "Title " + id,
		LengthSeconds: 60,
		Formats:       []source.Format{{Itag: 18, URL: "https://cdn/" + id}},
	}, nil
}

// harness runs the commands of a key press in the test goroutine and feeds
// every resulting message back into the bubble.
type harness struct {
	b   *statefulBubble
	rec *player.Recorder

	mu    sync.Mutex
	inbox []tea.Msg
}

func newHarness(src source.Source) *harness {
	h := &harness{rec: &player.Recorder{}}

	s := &sink{}
	s.attach(h.post)

	r, err := room.New(room.Options{Source: src, Renderer: h.rec, Hooks: s, View: s, Menu: s})
	So(err, ShouldBeNil)
	Reset(r.Close)

	h.b = newBubble(&Options{}, r, session.NewUser("tester"))
	return h
}

func (h *harness) post(msg tea.Msg) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inbox = append(h.inbox, msg)
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	default:
		h.post(msg)
	}
}

// flush delivers queued messages. Commands returned here are timers and
// blinks, so they are dropped.
func (h *harness) flush() {
	for {
		h.mu.Lock()
		if len(h.inbox) == 0 {
			h.mu.Unlock()
			return
		}
		msg := h.inbox[0]
		h.inbox = h.inbox[1:]
		h.mu.Unlock()

		h.b.Update(msg)
	}
}

func (h *harness) press(msg tea.KeyMsg) {
	_, cmd := h.b.Update(msg)
	h.run(cmd)
	h.flush()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestSearchAndPlay(t *testing.T) {
	Convey("Given the terminal interface", t, func() {
		h := newHarness(stubSource{})
		So(h.b.state, ShouldEqual, searchState)

		Convey("Starting the session publishes the sound labels", func() {
			h.run(h.b.startSession())
			h.flush()
			So(h.b.nowPlaying.volume, ShouldEqual, "Vol: 50%")
			So(h.b.nowPlaying.rolloff, ShouldEqual, "Rolloff: 5.0m")
		})

		Convey("Searching shows the catalog", func() {
			h.b.inputC.SetValue("lofi")
			h.press(enter)

			So(h.b.state, ShouldEqual, catalogState)
			So(h.b.catalogC.Items(), ShouldHaveLength, 2)
			So(h.b.catalogC.Title, ShouldContainSubstring, "lofi")

			Convey("Enter plays the selected item", func() {
				h.press(enter)

				So(h.b.state, ShouldEqual, nowPlayingState)
				start, ok := h.rec.LastStart()
				So(ok, ShouldBeTrue)
				So(start.Item.ID, ShouldEqual, "a")
				So(h.b.nowPlaying.title, ShouldContainSubstring, "Title a")
				So(h.b.View(), ShouldContainSubstring, "Now Playing")

				Convey("Volume keys go through the gate", func() {
					h.press(runes("+"))
					So(h.b.nowPlaying.volume, ShouldEqual, "Vol: 60%")
				})

				Convey("Space stops what plays", func() {
					h.press(space)
					So(h.b.snapshot.State, ShouldEqual, session.Stopped.String())
				})

				Convey("The menu key reopens the catalog", func() {
					h.press(runes("m"))
					So(h.b.state, ShouldEqual, catalogState)

					item, ok := h.b.catalogC.Items()[0].(*listItem)
					So(ok, ShouldBeTrue)
					So(item.playing, ShouldBeTrue)

					Convey("And closes it again", func() {
						h.press(runes("m"))
						So(h.b.state, ShouldEqual, nowPlayingState)
					})
				})

				Convey("Hiding the controls trims the help", func() {
					h.press(runes("h"))
					So(h.b.nowPlaying.controlsHidden, ShouldBeTrue)
					So(h.b.keymap.ShortHelp(), ShouldHaveLength, 3)
				})
			})

			Convey("Escape goes back to the search", func() {
				h.press(esc)
				So(h.b.state, ShouldEqual, searchState)
			})
		})
	})
}

func TestSearchFailure(t *testing.T) {
	Convey("A failed search shows the error", t, func() {
		h := newHarness(stubSource{searchErr: errors.New("offline")})

		h.b.inputC.SetValue("lofi")
		h.press(enter)

		So(h.b.state, ShouldEqual, errorState)
		So(h.b.View(), ShouldContainSubstring, "offline")

		Convey("And escape returns to the search", func() {
			h.press(esc)
			So(h.b.state, ShouldEqual, searchState)
		})
	})
}

func TestPagingWithoutResults(t *testing.T) {
	Convey("Paging before any search is reported", t, func() {
		h := newHarness(stubSource{})
		So(h.b.turnPage(true)(), ShouldEqual, "Nothing to page through")
	})
}
