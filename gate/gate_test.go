package gate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/tracker"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeCommands struct {
	mu      sync.Mutex
	calls   map[string]int
	hold    chan struct{}
	entered chan struct{}
	fail    error
	panics  bool
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{
		calls:   make(map[string]int),
		entered: make(chan struct{}, 1),
	}
}

func (f *fakeCommands) record(name string) error {
	f.mu.Lock()
	f.calls[name]++
	hold, fail, panics := f.hold, f.fail, f.panics
	f.mu.Unlock()

	if panics {
		panic("handler exploded")
	}

	if hold != nil {
		f.entered <- struct{}{}
		<-hold
	}

	return fail
}

func (f *fakeCommands) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeCommands) Play(context.Context, session.User) error { return f.record("play") }
func (f *fakeCommands) PlayItem(_ context.Context, _ session.User, id string) error {
	return f.record("play:" + id)
}
func (f *fakeCommands) Stop(context.Context, session.User) error           { return f.record("stop") }
func (f *fakeCommands) Pause(context.Context, session.User) error          { return f.record("pause") }
func (f *fakeCommands) Rewind(context.Context, session.User) error         { return f.record("rewind") }
func (f *fakeCommands) FastForward(context.Context, session.User) error    { return f.record("fast-forward") }
func (f *fakeCommands) OpenMenu(context.Context, session.User) error       { return f.record("open-menu") }
func (f *fakeCommands) CloseMenu(context.Context, session.User) error      { return f.record("close-menu") }
func (f *fakeCommands) ToggleControls(context.Context, session.User) error { return f.record("toggle") }

func (f *fakeCommands) ChangeVolume(dir player.Direction) float64 {
	_ = f.record("volume-" + dir.String())
	return 0
}

func (f *fakeCommands) ChangeRolloff(dir player.Direction) float64 {
	_ = f.record("rolloff-" + dir.String())
	return 0
}

func TestParseCommand(t *testing.T) {
	Convey("Every command parses back from its name", t, func() {
		for _, c := range All() {
			parsed, err := ParseCommand(c.String())
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, c)
		}
	})

	Convey("Names are case and separator insensitive", t, func() {
		c, err := ParseCommand(" Fast_Forward ")
		So(err, ShouldBeNil)
		So(c, ShouldEqual, FastForward)
	})

	Convey("Unknown names are rejected", t, func() {
		_, err := ParseCommand("eject")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "volume-up")
	})

	Convey("Louder is the Down arrow of the volume control", t, func() {
		target := newFakeCommands()
		g := New(target)
		So(g.Dispatch(context.Background(), session.System, VolumeUp), ShouldBeNil)
		So(target.count("volume-down"), ShouldEqual, 1)
	})

	Convey("Only volume and rolloff are sound commands", t, func() {
		So(VolumeUp.Sound(), ShouldBeTrue)
		So(RolloffDown.Sound(), ShouldBeTrue)
		So(Play.Sound(), ShouldBeFalse)
		So(ToggleControls.Sound(), ShouldBeFalse)
	})
}

func TestTransportLatch(t *testing.T) {
	Convey("Given a gate whose play handler is in progress", t, func() {
		target := newFakeCommands()
		target.hold = make(chan struct{})
		g := New(target)
		ctx := context.Background()

		done := make(chan error, 1)
		go func() {
			done <- g.Dispatch(ctx, session.System, Play)
		}()
		<-target.entered

		Convey("Repeated transport commands collapse into the running one", func() {
			for i := 0; i < 10; i++ {
				So(g.Dispatch(ctx, session.System, Play), ShouldEqual, ErrBusy)
			}
			So(g.Dispatch(ctx, session.System, Stop), ShouldEqual, ErrBusy)
			So(g.PlayItem(ctx, session.System, "a"), ShouldEqual, ErrBusy)

			close(target.hold)
			So(<-done, ShouldBeNil)

			So(target.count("play"), ShouldEqual, 1)
			So(target.count("stop"), ShouldEqual, 0)
		})

		Convey("Sound commands are not blocked", func() {
			So(g.Dispatch(ctx, session.System, VolumeDown), ShouldBeNil)
			So(target.count("volume-up"), ShouldEqual, 1)

			close(target.hold)
			So(<-done, ShouldBeNil)
		})

		Convey("The latch is released afterwards", func() {
			close(target.hold)
			So(<-done, ShouldBeNil)

			target.mu.Lock()
			target.hold = nil
			target.mu.Unlock()

			So(g.Dispatch(ctx, session.System, Stop), ShouldBeNil)
			So(target.count("stop"), ShouldEqual, 1)
		})
	})

	Convey("Given a failing handler", t, func() {
		target := newFakeCommands()
		g := New(target)
		ctx := context.Background()

		Convey("The error is returned and the latch released", func() {
			target.fail = errors.New("no stream")
			So(g.Dispatch(ctx, session.System, Play), ShouldEqual, target.fail)

			target.fail = nil
			So(g.Dispatch(ctx, session.System, Play), ShouldBeNil)
			So(target.count("play"), ShouldEqual, 2)
		})

		Convey("A panic becomes an error and the latch released", func() {
			target.panics = true
			err := g.Dispatch(ctx, session.System, Rewind)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "handler exploded")

			target.panics = false
			So(g.Dispatch(ctx, session.System, Rewind), ShouldBeNil)
		})
	})

	Convey("Unknown commands are rejected", t, func() {
		g := New(newFakeCommands())
		err := g.Dispatch(context.Background(), session.System, Command(99))
		So(errors.Is(err, ErrUnknownCommand), ShouldBeTrue)
	})
}

func TestSoundDebounce(t *testing.T) {
	Convey("Given a gate with a manual clock", t, func() {
		target := newFakeCommands()
		clock := tracker.NewManualClock(time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC))
		g := New(target, WithClock(clock), WithDebounce(125*time.Millisecond))
		ctx := context.Background()

		Convey("Rapid sound commands collapse to one", func() {
			So(g.Dispatch(ctx, session.System, VolumeDown), ShouldBeNil)
			for i := 0; i < 20; i++ {
				clock.Advance(5 * time.Millisecond)
				So(g.Dispatch(ctx, session.System, VolumeDown), ShouldEqual, ErrBusy)
			}
			So(target.count("volume-up"), ShouldEqual, 1)
		})

		Convey("The window applies across sound commands", func() {
			So(g.Dispatch(ctx, session.System, VolumeUp), ShouldBeNil)
			So(g.Dispatch(ctx, session.System, RolloffUp), ShouldEqual, ErrBusy)
		})

		Convey("Commands spaced by the window all run", func() {
			for i := 0; i < 4; i++ {
				So(g.Dispatch(ctx, session.System, RolloffDown), ShouldBeNil)
				clock.Advance(125 * time.Millisecond)
			}
			So(target.count("rolloff-down"), ShouldEqual, 4)
		})

		Convey("Transport commands are not debounced", func() {
			So(g.Dispatch(ctx, session.System, Play), ShouldBeNil)
			So(g.Dispatch(ctx, session.System, Play), ShouldBeNil)
			So(target.count("play"), ShouldEqual, 2)
		})
	})
}
