package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/tracker"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeResolver struct {
	mu      sync.Mutex
	items   map[string]*source.Item
	calls   []string
	hold    map[string]chan struct{}
	entered chan string
}

func newFakeResolver(items ...*source.Item) *fakeResolver {
	r := &fakeResolver{
		items:   make(map[string]*source.Item),
		hold:    make(map[string]chan struct{}),
		entered: make(chan string, 1),
	}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeResolver) Resolve(_ context.Context, id string) (*source.Item, error) {
	r.mu.Lock()
	r.calls = append(r.calls, id)
	item, ok := r.items[id]
	gate := r.hold[id]
	r.mu.Unlock()

	if gate != nil {
		r.entered <- id
		<-gate
	}

	if !ok {
		return nil, errors.New("not found")
	}
	return item, nil
}

type fakeNext map[string]string

func (n fakeNext) NextItem(id string) mo.Option[string] {
	next, ok := n[id]
	return mo.TupleToOption(next, ok)
}

type fakeMenu struct {
	opened, closed int
}

func (m *fakeMenu) Open(context.Context, User) error {
	m.opened++
	return nil
}

func (m *fakeMenu) Close(context.Context, User) error {
	m.closed++
	return nil
}

type recordedHooks struct {
	mu        sync.Mutex
	title     string
	remaining float64
	volume    string
	rolloff   string
	visible   bool
}

func (h *recordedHooks) UpdateTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = title
}

func (h *recordedHooks) UpdateRemainingTime(seconds float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remaining = seconds
}

func (h *recordedHooks) UpdateVolumeLabel(label string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.volume = label
}

func (h *recordedHooks) UpdateRolloffLabel(label string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rolloff = label
}

func (h *recordedHooks) UpdateControlsVisible(visible bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visible = visible
}

func item(id string, seconds int) *source.Item {
	i := &source.Item{ID: id, Title: "Title " + id, URI: "https://cdn/" + id}
	i.SetDuration(seconds)
	return i
}

type harness struct {
	controller *Controller
	resolver   *fakeResolver
	renderer   *player.Recorder
	clock      *tracker.ManualClock
	scheduler  *tracker.ManualScheduler
	hooks      *recordedHooks
	menu       *fakeMenu
}

func newHarness(opts Options, next fakeNext, items ...*source.Item) *harness {
	h := &harness{
		resolver:  newFakeResolver(items...),
		renderer:  &player.Recorder{},
		clock:     tracker.NewManualClock(time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)),
		scheduler: &tracker.ManualScheduler{},
		hooks:     &recordedHooks{},
		menu:      &fakeMenu{},
	}

	h.controller = NewController(Deps{
		Resolver:  h.resolver,
		Renderer:  h.renderer,
		Next:      next,
		Menu:      h.menu,
		Hooks:     h.hooks,
		Clock:     h.clock,
		Scheduler: h.scheduler,
	}, opts)

	return h
}

func (h *harness) startedIDs() []string {
	var ids []string
	for _, s := range h.renderer.Starts() {
		ids = append(ids, s.Item.ID)
	}
	return ids
}

func (h *harness) lastOffset() float64 {
	s, _ := h.renderer.LastStart()
	return s.Sound.StartOffsetSeconds
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.DefaultItem = "a"
	return opts
}

func TestPlayPauseStop(t *testing.T) {
	Convey("Given a stopped session", t, func() {
		h := newHarness(testOptions(), nil, item("a", 100), item("b", 60))
		ctx := context.Background()
		c := h.controller

		So(c.Snapshot().State, ShouldEqual, "stopped")

		Convey("Play starts the default item", func() {
			So(c.Play(ctx, System), ShouldBeNil)

			snap := c.Snapshot()
			So(snap.State, ShouldEqual, "playing")
			So(snap.Item.ID, ShouldEqual, "a")
			So(h.startedIDs(), ShouldResemble, []string{"a"})
			So(h.scheduler.Live(), ShouldEqual, 1)
			So(h.hooks.title, ShouldEqual, "Title a")
			So(h.hooks.remaining, ShouldEqual, 100)
		})

		Convey("Pause keeps the instance and Play resumes it in place", func() {
			So(c.Play(ctx, System), ShouldBeNil)
			h.clock.Advance(10 * time.Second)

			So(c.Pause(ctx, System), ShouldBeNil)
			So(c.Snapshot().State, ShouldEqual, "paused")
			So(c.Snapshot().Elapsed, ShouldEqual, 10)
			So(h.scheduler.Live(), ShouldEqual, 0)

			h.clock.Advance(time.Minute)
			So(c.Play(ctx, System), ShouldBeNil)

			So(h.renderer.Events(), ShouldResemble, []string{"start:a", "pause:a", "resume:a"})
			So(c.Snapshot().State, ShouldEqual, "playing")
			So(c.Snapshot().Elapsed, ShouldEqual, 10)
			So(h.scheduler.Live(), ShouldEqual, 1)
		})

		Convey("Stop releases the instance and Play restarts from the saved offset", func() {
			So(c.Play(ctx, System), ShouldBeNil)
			h.clock.Advance(10 * time.Second)

			So(c.Stop(ctx, System), ShouldBeNil)
			So(c.Snapshot().State, ShouldEqual, "stopped")
			So(h.renderer.Events(), ShouldContain, "stop:a")
			So(h.scheduler.Live(), ShouldEqual, 0)

			So(c.Play(ctx, System), ShouldBeNil)
			So(h.startedIDs(), ShouldResemble, []string{"a", "a"})
			So(h.lastOffset(), ShouldEqual, 10)
		})

		Convey("PlayItem replaces the current item from the start", func() {
			So(c.Play(ctx, System), ShouldBeNil)
			h.clock.Advance(10 * time.Second)

			So(c.PlayItem(ctx, System, "b"), ShouldBeNil)
			So(h.renderer.Events(), ShouldResemble, []string{"start:a", "stop:a", "start:b"})
			So(h.lastOffset(), ShouldEqual, 0)
			So(h.scheduler.Live(), ShouldEqual, 1)
		})

		Convey("A paused session can be stopped", func() {
			So(c.Play(ctx, System), ShouldBeNil)
			So(c.Pause(ctx, System), ShouldBeNil)
			So(c.Stop(ctx, System), ShouldBeNil)
			So(c.Snapshot().State, ShouldEqual, "stopped")
		})

		Convey("Pause and Stop do nothing when stopped", func() {
			So(c.Pause(ctx, System), ShouldBeNil)
			So(c.Stop(ctx, System), ShouldBeNil)
			So(h.renderer.Events(), ShouldBeEmpty)
		})

		Convey("Close rejects further plays", func() {
			So(c.Play(ctx, System), ShouldBeNil)
			c.Close()

			So(h.renderer.Events(), ShouldContain, "stop:a")
			So(c.Play(ctx, System), ShouldEqual, ErrClosed)
		})
	})
}

func TestResolutionFailures(t *testing.T) {
	Convey("Given a session", t, func() {
		h := newHarness(testOptions(), nil, item("a", 100))
		ctx := context.Background()
		c := h.controller

		Convey("An unresolvable item leaves the session stopped", func() {
			err := c.PlayItem(ctx, System, "missing")
			So(err, ShouldNotBeNil)
			So(c.Snapshot().State, ShouldEqual, "stopped")
			So(h.renderer.Events(), ShouldBeEmpty)
			So(h.scheduler.Live(), ShouldEqual, 0)
		})

		Convey("A renderer failure leaves the session stopped", func() {
			h.renderer.FailNextStart(errors.New("no display"))

			err := c.PlayItem(ctx, System, "a")
			So(err, ShouldNotBeNil)
			So(c.Snapshot().State, ShouldEqual, "stopped")
			So(h.scheduler.Live(), ShouldEqual, 0)
		})

		Convey("A resolution superseded by a newer command is dropped", func() {
			h.resolver.items["slow"] = item("slow", 100)
			gate := make(chan struct{})
			h.resolver.hold["slow"] = gate

			done := make(chan error, 1)
			go func() {
				done <- c.PlayItem(ctx, System, "slow")
			}()

			So(<-h.resolver.entered, ShouldEqual, "slow")
			So(c.PlayItem(ctx, System, "a"), ShouldBeNil)

			close(gate)
			So(<-done, ShouldBeNil)

			So(h.startedIDs(), ShouldResemble, []string{"a"})
			So(c.Snapshot().Item.ID, ShouldEqual, "a")
			So(h.scheduler.Live(), ShouldEqual, 1)
		})

		Convey("Stop during a play's resolution cancels it", func() {
			gate := make(chan struct{})
			h.resolver.hold["a"] = gate

			done := make(chan error, 1)
			go func() {
				done <- c.Play(ctx, System)
			}()

			So(<-h.resolver.entered, ShouldEqual, "a")
			So(c.Stop(ctx, System), ShouldBeNil)

			close(gate)
			So(<-done, ShouldBeNil)

			So(c.Snapshot().State, ShouldEqual, "stopped")
			So(h.renderer.Starts(), ShouldBeEmpty)
			So(h.scheduler.Live(), ShouldEqual, 0)
		})
	})

	Convey("Given an item about to end", t, func() {
		h := newHarness(testOptions(), fakeNext{"a": "b"}, item("a", 30), item("b", 60))
		ctx := context.Background()
		c := h.controller
		So(c.Play(ctx, System), ShouldBeNil)

		Convey("Stop during the advance's resolution cancels it", func() {
			gate := make(chan struct{})
			h.resolver.mu.Lock()
			h.resolver.hold["b"] = gate
			h.resolver.mu.Unlock()

			h.clock.Advance(31 * time.Second)
			fired := make(chan struct{})
			go func() {
				h.scheduler.Fire()
				close(fired)
			}()

			So(<-h.resolver.entered, ShouldEqual, "b")
			So(c.Stop(ctx, System), ShouldBeNil)

			close(gate)
			<-fired

			So(c.Snapshot().State, ShouldEqual, "stopped")
			So(h.startedIDs(), ShouldResemble, []string{"a"})
			So(h.scheduler.Live(), ShouldEqual, 0)
		})
	})
}

func TestTick(t *testing.T) {
	Convey("Given a playing item", t, func() {
		ctx := context.Background()

		Convey("The tick reports the remaining time", func() {
			h := newHarness(testOptions(), nil, item("a", 30))
			So(h.controller.Play(ctx, System), ShouldBeNil)

			h.clock.Advance(10 * time.Second)
			h.scheduler.Fire()

			So(h.hooks.remaining, ShouldEqual, 20)
			So(h.startedIDs(), ShouldResemble, []string{"a"})
		})

		Convey("The end of an item advances to the next one", func() {
			h := newHarness(testOptions(), fakeNext{"a": "b"}, item("a", 30), item("b", 60))
			So(h.controller.Play(ctx, System), ShouldBeNil)

			h.clock.Advance(31 * time.Second)
			h.scheduler.Fire()

			So(h.renderer.Events(), ShouldResemble, []string{"start:a", "stop:a", "start:b"})
			So(h.lastOffset(), ShouldEqual, 0)
			So(h.scheduler.Live(), ShouldEqual, 1)
		})

		Convey("An item with no successor replays", func() {
			h := newHarness(testOptions(), nil, item("a", 30))
			So(h.controller.Play(ctx, System), ShouldBeNil)

			h.clock.Advance(31 * time.Second)
			h.scheduler.Fire()

			So(h.startedIDs(), ShouldResemble, []string{"a", "a"})
			So(h.lastOffset(), ShouldEqual, 0)
		})

		Convey("A cancelled tick does nothing", func() {
			h := newHarness(testOptions(), nil, item("a", 30))
			So(h.controller.Play(ctx, System), ShouldBeNil)
			So(h.controller.Pause(ctx, System), ShouldBeNil)

			h.clock.Advance(time.Minute)
			h.scheduler.Fire()

			So(h.controller.Snapshot().State, ShouldEqual, "paused")
			So(h.startedIDs(), ShouldResemble, []string{"a"})
		})
	})
}

func TestSeek(t *testing.T) {
	Convey("Given an item playing for 40 seconds", t, func() {
		h := newHarness(testOptions(), nil, item("a", 100))
		ctx := context.Background()
		c := h.controller

		So(c.Play(ctx, System), ShouldBeNil)
		h.clock.Advance(40 * time.Second)

		Convey("Rewind restarts it 15 seconds earlier", func() {
			So(c.Rewind(ctx, System), ShouldBeNil)
			So(h.startedIDs(), ShouldResemble, []string{"a", "a"})
			So(h.lastOffset(), ShouldEqual, 25)
			So(h.scheduler.Live(), ShouldEqual, 1)
		})

		Convey("Rewind never goes below zero", func() {
			So(c.Rewind(ctx, System), ShouldBeNil)
			So(c.Rewind(ctx, System), ShouldBeNil)
			So(c.Rewind(ctx, System), ShouldBeNil)
			So(h.lastOffset(), ShouldEqual, 0)
		})

		Convey("FastForward restarts it 15 seconds later", func() {
			So(c.FastForward(ctx, System), ShouldBeNil)
			So(h.lastOffset(), ShouldEqual, 55)
		})

		Convey("FastForward does nothing near the end", func() {
			h.clock.Advance(50 * time.Second)

			So(c.FastForward(ctx, System), ShouldBeNil)
			So(h.startedIDs(), ShouldResemble, []string{"a"})
			So(c.Snapshot().State, ShouldEqual, "playing")
		})

		Convey("Seeking a paused item does nothing", func() {
			So(c.Pause(ctx, System), ShouldBeNil)
			So(c.Rewind(ctx, System), ShouldBeNil)
			So(h.startedIDs(), ShouldResemble, []string{"a"})
		})
	})
}

func TestInterruption(t *testing.T) {
	Convey("Given a session with an interruption every 20 minutes", t, func() {
		opts := testOptions()
		opts.Interruption = InterruptionOptions{
			ItemID:      "ad",
			Rerun:       20 * time.Minute,
			TitlePrefix: "Announcement: ",
		}

		h := newHarness(opts, nil, item("a", 3600), item("b", 60), item("ad", 30))
		ctx := context.Background()
		c := h.controller

		So(c.PlayItem(ctx, System, "a"), ShouldBeNil)

		Convey("The first play is preempted", func() {
			So(h.startedIDs(), ShouldResemble, []string{"ad"})
			So(h.hooks.title, ShouldEqual, "Announcement: Title ad")
			So(c.Snapshot().Interrupting, ShouldBeTrue)
		})

		Convey("User commands are ignored while it runs", func() {
			So(c.Stop(ctx, System), ShouldBeNil)
			So(c.PlayItem(ctx, System, "b"), ShouldBeNil)
			So(c.Pause(ctx, System), ShouldBeNil)
			So(c.OpenMenu(ctx, System), ShouldBeNil)
			So(c.FastForward(ctx, System), ShouldBeNil)

			So(c.Snapshot().State, ShouldEqual, "playing")
			So(h.startedIDs(), ShouldResemble, []string{"ad"})
			So(h.menu.opened, ShouldEqual, 0)
		})

		Convey("Sound controls still apply", func() {
			So(c.ChangeVolume(player.Down), ShouldEqual, 0.6)
			So(h.renderer.Events(), ShouldContain, "volume=0.60:ad")
		})

		Convey("When it ends the requested item plays", func() {
			h.clock.Advance(31 * time.Second)
			h.scheduler.Fire()

			So(h.startedIDs(), ShouldResemble, []string{"ad", "a"})
			So(h.lastOffset(), ShouldEqual, 0)
			So(c.Snapshot().Interrupting, ShouldBeFalse)
			So(h.hooks.title, ShouldEqual, "Title a")

			Convey("It does not fire again before the rerun interval", func() {
				h.clock.Advance(10 * time.Minute)
				So(c.PlayItem(ctx, System, "b"), ShouldBeNil)
				So(h.startedIDs(), ShouldResemble, []string{"ad", "a", "b"})
			})

			Convey("It fires again after the rerun interval and restores the saved offset", func() {
				h.clock.Advance(21 * time.Minute)
				So(c.Pause(ctx, System), ShouldBeNil)
				So(c.Play(ctx, System), ShouldBeNil)

				So(h.startedIDs(), ShouldResemble, []string{"ad", "a", "ad"})
				So(h.lastOffset(), ShouldEqual, 0)

				h.clock.Advance(31 * time.Second)
				h.scheduler.Fire()

				So(h.startedIDs(), ShouldResemble, []string{"ad", "a", "ad", "a"})
				So(h.lastOffset(), ShouldEqual, 1260)
			})
		})
	})

	Convey("Given an interruption item that cannot be resolved", t, func() {
		opts := testOptions()
		opts.Interruption = InterruptionOptions{ItemID: "gone", Rerun: 20 * time.Minute}

		h := newHarness(opts, nil, item("a", 100))
		ctx := context.Background()

		Convey("The requested item plays instead", func() {
			So(h.controller.PlayItem(ctx, System, "a"), ShouldBeNil)
			So(h.startedIDs(), ShouldResemble, []string{"a"})
			So(h.controller.Snapshot().Interrupting, ShouldBeFalse)
			So(h.resolver.calls, ShouldResemble, []string{"gone", "a"})
		})
	})
}

func TestSoundAndControls(t *testing.T) {
	Convey("Given a playing session", t, func() {
		h := newHarness(testOptions(), nil, item("a", 100), item("b", 100))
		ctx := context.Background()
		c := h.controller

		So(c.Start(ctx), ShouldBeNil)
		So(h.hooks.volume, ShouldEqual, "Vol: 50%")
		So(h.hooks.rolloff, ShouldEqual, "Rolloff: 5.0m")
		So(h.hooks.visible, ShouldBeTrue)

		So(c.Play(ctx, System), ShouldBeNil)

		Convey("Volume changes reach the live instance and the label", func() {
			So(c.ChangeVolume(player.Down), ShouldEqual, 0.6)
			So(h.renderer.Events(), ShouldContain, "volume=0.60:a")
			So(h.hooks.volume, ShouldEqual, "Vol: 60%")

			Convey("And carry over to the next item", func() {
				So(c.PlayItem(ctx, System, "b"), ShouldBeNil)
				s, _ := h.renderer.LastStart()
				So(s.Sound.Volume, ShouldEqual, 0.6)
			})
		})

		Convey("Rolloff changes reach the live instance and the label", func() {
			So(c.ChangeRolloff(player.Up), ShouldEqual, 5.2)
			So(h.renderer.Events(), ShouldContain, "rolloff=5.2:a")
			So(h.hooks.rolloff, ShouldEqual, "Rolloff: 5.2m")
		})

		Convey("ToggleControls flips visibility", func() {
			So(c.ToggleControls(ctx, System), ShouldBeNil)
			So(h.hooks.visible, ShouldBeFalse)
			So(c.Snapshot().ControlsHidden, ShouldBeTrue)

			Convey("And Stop shows them again", func() {
				So(c.Stop(ctx, System), ShouldBeNil)
				So(h.hooks.visible, ShouldBeTrue)
				So(c.Snapshot().ControlsHidden, ShouldBeFalse)
			})
		})

		Convey("The menu opens and closes", func() {
			So(c.OpenMenu(ctx, System), ShouldBeNil)
			So(c.CloseMenu(ctx, System), ShouldBeNil)
			So(h.menu.opened, ShouldEqual, 1)
			So(h.menu.closed, ShouldEqual, 1)
		})
	})

	Convey("Given autostart", t, func() {
		opts := testOptions()
		opts.Autostart = true
		h := newHarness(opts, nil, item("a", 100))

		Convey("Start plays the default item", func() {
			So(h.controller.Start(context.Background()), ShouldBeNil)
			So(h.startedIDs(), ShouldResemble, []string{"a"})
		})
	})
}
