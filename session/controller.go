// Package session implements the playback state machine of a shared media surface.
package session

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/samber/mo"
	"github.com/screenroom/screenroom/display"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/tracker"
	"github.com/sirupsen/logrus"
)

// Resolver turns an item id into a playable item.
type Resolver interface {
	Resolve(ctx context.Context, id string) (*source.Item, error)
}

// NextItems answers which item follows another.
type NextItems interface {
	NextItem(id string) mo.Option[string]
}

// Menu is the catalog surface opened from the transport controls.
type Menu interface {
	Open(ctx context.Context, user User) error
	Close(ctx context.Context, user User) error
}

// Deps are the collaborators of a Controller. Resolver and Renderer are required.
type Deps struct {
	Resolver  Resolver
	Renderer  player.Renderer
	Next      NextItems
	Menu      Menu
	Hooks     display.Hooks
	Clock     tracker.Clock
	Scheduler tracker.Scheduler
}

type noNext struct{}

func (noNext) NextItem(string) mo.Option[string] { return mo.None[string]() }

// Controller owns a Session and serializes every transition on it.
//
// Resolution runs without the lock held. Every play and stop bumps a
// generation counter; a resolution that returns under an older generation
// is stale and dropped.
type Controller struct {
	mu         sync.Mutex
	session    *Session
	generation uint64
	closed     bool

	deps Deps
	opts Options

	// ctx scopes the transitions started by the tick.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewController returns a controller for a fresh stopped session.
func NewController(deps Deps, opts Options) *Controller {
	if deps.Next == nil {
		deps.Next = noNext{}
	}
	if deps.Hooks == nil {
		deps.Hooks = display.Nop{}
	}
	if deps.Clock == nil {
		deps.Clock = tracker.SystemClock{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = tracker.TickerScheduler{}
	}
	if opts.TickPeriod <= 0 {
		opts.TickPeriod = DefaultOptions().TickPeriod
	}
	if opts.MaxRolloff <= opts.MinRolloff {
		opts.MinRolloff, opts.MaxRolloff = DefaultOptions().MinRolloff, DefaultOptions().MaxRolloff
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		session: newSession(opts.Sound, opts.Interruption.Enabled()),
		deps:    deps,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *Controller) logger(user User) *logrus.Entry {
	return log.WithFields(log.Fields{
		"session": c.session.ID,
		"user":    user.Name,
	})
}

// Start publishes the initial labels and plays the default item when autostart is on.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	c.deps.Hooks.UpdateVolumeLabel(display.VolumeLabel(c.session.Sound.Volume))
	c.deps.Hooks.UpdateRolloffLabel(display.RolloffLabel(c.session.Sound.RolloffStartDistance))
	c.deps.Hooks.UpdateControlsVisible(!c.session.ControlsHidden)
	c.mu.Unlock()

	if !c.opts.Autostart {
		return nil
	}

	return c.play(ctx, System, "", false, true)
}

// Play plays the current item, or the default item if there is none, from
// its saved offset. A paused session resumes in place.
func (c *Controller) Play(ctx context.Context, user User) error {
	return c.play(ctx, user, "", false, false)
}

// PlayItem plays the item with the given id from the beginning.
func (c *Controller) PlayItem(ctx context.Context, user User, id string) error {
	return c.play(ctx, user, id, true, false)
}

func (c *Controller) play(ctx context.Context, user User, id string, reset, internal bool) error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	s := c.session
	logger := c.logger(user)

	if !internal && s.interrupting() {
		c.mu.Unlock()
		logger.Info("play ignored while an interruption runs")
		return nil
	}

	if id == "" {
		if s.Current != nil {
			id = s.Current.ID
		} else {
			id = c.opts.DefaultItem
		}
	}

	if c.resumeLocked(id, reset, logger) {
		c.mu.Unlock()
		return nil
	}

	if s.State != Stopped && s.instance != nil {
		c.stopLocked(logger)
	}

	if reset {
		s.Progress = tracker.Progress{}
	}

	target := id
	grafted := c.graftLocked(id)
	if grafted {
		target = c.opts.Interruption.ItemID
	}

	c.generation++
	gen := c.generation
	c.mu.Unlock()

	logger.WithField("item", target).WithField("generation", gen).Infof("resolving")
	item, err := c.deps.Resolver.Resolve(ctx, target)

	if err != nil && grafted {
		logger.WithField("item", target).Warnf("interruption unavailable, playing %s: %v", id, err)

		c.mu.Lock()
		if gen != c.generation {
			current := c.generation
			c.mu.Unlock()
			discard(logger, target, gen, current)
			return nil
		}
		c.ungraftLocked()
		c.mu.Unlock()

		grafted = false
		target = id
		item, err = c.deps.Resolver.Resolve(ctx, target)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		discard(logger, target, gen, c.generation)
		return nil
	}

	if err != nil {
		if grafted {
			c.ungraftLocked()
		}
		s.State = Stopped
		logger.WithField("item", target).Errorf("resolution failed: %v", err)
		return err
	}

	return c.startLocked(ctx, item, grafted, logger)
}

// resumeLocked resumes a paused instance in place when nothing else needs to change.
func (c *Controller) resumeLocked(id string, reset bool, logger *logrus.Entry) bool {
	s := c.session

	if s.State != Paused || s.instance == nil || s.Current == nil {
		return false
	}

	if reset || s.Current.ID != id || c.interruptionDueLocked() {
		return false
	}

	if err := s.instance.Resume(); err != nil {
		logger.Warnf("resume failed, restarting: %v", err)
		return false
	}

	s.Progress = s.Progress.Restarted(c.deps.Clock.Now())
	s.State = Playing
	c.armLocked()
	logger.WithField("item", id).Info("resumed")
	return true
}

// graftLocked substitutes the interruption for the requested item when one is due.
func (c *Controller) graftLocked(requested string) bool {
	if !c.interruptionDueLocked() {
		return false
	}

	in := c.session.Interruption
	in.Active = true
	in.Saved = c.session.Progress
	in.ResumeID = requested
	c.session.Progress = tracker.Progress{}
	return true
}

// ungraftLocked undoes a graft that could not play. The rerun interval
// restarts so a broken interruption item is not retried on every command.
func (c *Controller) ungraftLocked() {
	in := c.session.Interruption
	in.Active = false
	in.LastFiredAt = c.deps.Clock.Now()
	c.session.Progress = in.Saved
	in.Saved = tracker.Progress{}
	in.ResumeID = ""
}

func (c *Controller) interruptionDueLocked() bool {
	in := c.session.Interruption
	if in == nil || in.Active {
		return false
	}

	return c.deps.Clock.Now().Sub(in.LastFiredAt) > c.opts.Interruption.Rerun
}

func (c *Controller) startLocked(ctx context.Context, item *source.Item, grafted bool, logger *logrus.Entry) error {
	s := c.session
	now := c.deps.Clock.Now()

	if grafted {
		item = item.WithTitlePrefix(c.opts.Interruption.TitlePrefix)
	}

	s.Progress = s.Progress.Restarted(now)

	// volume and rolloff carry over; everything else starts from the defaults
	s.Sound = player.SoundOptions{
		Volume:               s.Sound.Volume,
		RolloffStartDistance: s.Sound.RolloffStartDistance,
		Spread:               c.opts.Sound.Spread,
		StartOffsetSeconds:   s.Progress.RunningSeconds,
	}

	c.deps.Hooks.UpdateTitle(item.Title)
	c.deps.Hooks.UpdateRemainingTime(tracker.Remaining(now, s.Progress, item.DurationSeconds))

	instance, err := c.deps.Renderer.Start(ctx, item, s.Sound)
	if err != nil {
		if grafted {
			c.ungraftLocked()
		}
		s.State = Stopped
		logger.WithField("item", item.ID).Errorf("renderer failed: %v", err)
		return fmt.Errorf("start playback: %w", err)
	}

	s.Current = item
	s.instance = instance
	s.State = Playing
	c.armLocked()

	logger.WithField("item", item.ID).
		WithField("offset", s.Progress.RunningSeconds).
		WithField("interruption", grafted).
		Info("playing")
	return nil
}

// armLocked replaces the tick task with a fresh one bound to the current generation.
func (c *Controller) armLocked() {
	s := c.session
	if s.tick != nil {
		s.tick.Cancel()
	}

	gen := c.generation
	s.tick = c.deps.Scheduler.Every(c.opts.TickPeriod, func() {
		c.onTick(gen)
	})
}

func (c *Controller) onTick(gen uint64) {
	c.mu.Lock()

	s := c.session
	if c.closed || gen != c.generation || s.State != Playing {
		c.mu.Unlock()
		return
	}

	logger := c.logger(System)

	if s.Current == nil {
		c.mu.Unlock()
		logger.Warn("tick without a current item")
		return
	}

	now := c.deps.Clock.Now()
	remaining := tracker.Remaining(now, s.Progress, s.Current.DurationSeconds)
	s.Progress.RunningSeconds = tracker.Elapsed(now, s.Progress)

	if remaining > 0 {
		c.deps.Hooks.UpdateRemainingTime(remaining)
		c.mu.Unlock()
		return
	}

	finished := s.Current.ID
	c.stopLocked(logger)

	var (
		next  string
		reset = true
	)

	if s.interrupting() {
		in := s.Interruption
		in.Active = false
		in.LastFiredAt = now
		s.Progress = in.Saved
		next = in.ResumeID
		in.Saved = tracker.Progress{}
		in.ResumeID = ""
		reset = false
	} else {
		next = c.deps.Next.NextItem(finished).OrElse(finished)
	}

	c.mu.Unlock()

	logger.WithField("item", finished).Infof("finished, advancing to %s", next)
	if err := c.play(c.ctx, System, next, reset, true); err != nil {
		logger.WithField("item", next).Errorf("advance failed: %v", err)
	}
}

// Pause suspends playback without releasing the instance.
func (c *Controller) Pause(_ context.Context, user User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	if s.State != Playing || s.interrupting() || s.instance == nil {
		return nil
	}

	if s.tick != nil {
		s.tick.Cancel()
		s.tick = nil
	}

	s.Progress = s.Progress.Frozen(c.deps.Clock.Now())

	if err := s.instance.Pause(); err != nil {
		return fmt.Errorf("pause: %w", err)
	}

	s.State = Paused
	c.logger(user).Info("paused")
	return nil
}

// Stop ends playback and brings the controls back. It has no effect while an
// interruption runs. A stopped session can still have a play resolving, and
// Stop drops that one too.
func (c *Controller) Stop(_ context.Context, user User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := c.logger(user)
	s := c.session

	if s.interrupting() {
		logger.Info("stop ignored while an interruption runs")
		return nil
	}

	if s.ControlsHidden {
		s.ControlsHidden = false
		c.deps.Hooks.UpdateControlsVisible(true)
	}

	if s.State == Stopped {
		c.generation++
		return nil
	}

	c.stopLocked(logger)
	c.deps.Hooks.UpdateRemainingTime(-1)
	return nil
}

// stopLocked cancels the tick, freezes progress and releases the instance.
// It also invalidates any resolution in flight.
func (c *Controller) stopLocked(logger *logrus.Entry) {
	s := c.session

	if s.tick != nil {
		s.tick.Cancel()
		s.tick = nil
	}

	if s.State == Playing {
		s.Progress = s.Progress.Frozen(c.deps.Clock.Now())
	}

	if s.instance != nil {
		if err := s.instance.Stop(); err != nil {
			logger.Warnf("stop instance: %v", err)
		}
		s.instance = nil
	}

	s.State = Stopped
	c.generation++
}

// Rewind replays the current item seek-distance seconds earlier.
func (c *Controller) Rewind(ctx context.Context, user User) error {
	return c.seek(ctx, user, -c.opts.SeekDistance)
}

// FastForward replays the current item seek-distance seconds later.
// It has no effect when less than the seek distance remains.
func (c *Controller) FastForward(ctx context.Context, user User) error {
	return c.seek(ctx, user, c.opts.SeekDistance)
}

func (c *Controller) seek(ctx context.Context, user User, delta float64) error {
	c.mu.Lock()

	s := c.session
	if s.State != Playing || s.interrupting() || s.Current == nil {
		c.mu.Unlock()
		return nil
	}

	now := c.deps.Clock.Now()
	elapsed := tracker.Elapsed(now, s.Progress)

	if delta > 0 && tracker.Remaining(now, s.Progress, s.Current.DurationSeconds) <= delta {
		c.mu.Unlock()
		return nil
	}

	id := s.Current.ID
	logger := c.logger(user)

	c.stopLocked(logger)
	s.Progress = tracker.At(math.Max(0, elapsed+delta))
	c.mu.Unlock()

	logger.WithField("item", id).Infof("seek %+.0fs", delta)
	return c.play(ctx, user, id, false, false)
}

// ChangeVolume steps the volume and applies it to the live instance.
func (c *Controller) ChangeVolume(dir player.Direction) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	s.Sound.Volume = player.StepVolume(s.Sound.Volume, dir)

	if s.instance != nil {
		if err := s.instance.SetVolume(s.Sound.Volume); err != nil {
			c.logger(System).Warnf("set volume: %v", err)
		}
	}

	c.deps.Hooks.UpdateVolumeLabel(display.VolumeLabel(s.Sound.Volume))
	return s.Sound.Volume
}

// ChangeRolloff steps the rolloff start distance and applies it to the live instance.
func (c *Controller) ChangeRolloff(dir player.Direction) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	s.Sound.RolloffStartDistance = player.StepRolloff(s.Sound.RolloffStartDistance, dir, c.opts.MinRolloff, c.opts.MaxRolloff)

	if s.instance != nil {
		if err := s.instance.SetRolloff(s.Sound.RolloffStartDistance); err != nil {
			c.logger(System).Warnf("set rolloff: %v", err)
		}
	}

	c.deps.Hooks.UpdateRolloffLabel(display.RolloffLabel(s.Sound.RolloffStartDistance))
	return s.Sound.RolloffStartDistance
}

// OpenMenu opens the catalog. It has no effect while an interruption runs.
func (c *Controller) OpenMenu(ctx context.Context, user User) error {
	if c.menuBlocked(user) || c.deps.Menu == nil {
		return nil
	}
	return c.deps.Menu.Open(ctx, user)
}

// CloseMenu closes the catalog. It has no effect while an interruption runs.
func (c *Controller) CloseMenu(ctx context.Context, user User) error {
	if c.menuBlocked(user) || c.deps.Menu == nil {
		return nil
	}
	return c.deps.Menu.Close(ctx, user)
}

func (c *Controller) menuBlocked(user User) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.interrupting() {
		c.logger(user).Info("menu blocked while an interruption runs")
		return true
	}
	return false
}

// ToggleControls shows or hides the on-surface controls.
func (c *Controller) ToggleControls(_ context.Context, user User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.ControlsHidden = !c.session.ControlsHidden
	c.deps.Hooks.UpdateControlsVisible(!c.session.ControlsHidden)
	c.logger(user).WithField("hidden", c.session.ControlsHidden).Debug("controls toggled")
	return nil
}

// Snapshot returns the current state of the session.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	snap := Snapshot{
		SessionID:      s.ID,
		State:          s.State.String(),
		Item:           s.Current,
		Elapsed:        s.Progress.RunningSeconds,
		Volume:         s.Sound.Volume,
		Rolloff:        s.Sound.RolloffStartDistance,
		Interrupting:   s.interrupting(),
		ControlsHidden: s.ControlsHidden,
	}

	if s.State == Playing {
		snap.Elapsed = tracker.Elapsed(c.deps.Clock.Now(), s.Progress)
	}

	if s.Current != nil {
		snap.Remaining = s.Current.DurationSeconds - snap.Elapsed
	}

	return snap
}

// Close stops playback, interruption included, and rejects further plays.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.stopLocked(c.logger(System))
	c.cancel()
}

func discard(logger *logrus.Entry, item string, gen, current uint64) {
	logger.Debug(&StaleTransitionError{ItemID: item, Generation: gen, Current: current})
}
