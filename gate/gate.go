// Package gate collapses rapid repeated activations of the playback controls
// into single commands before they reach the session.
package gate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/tracker"
)

var (
	// ErrBusy is returned when a command is dropped because another one holds its latch.
	ErrBusy = errors.New("command in progress")

	ErrUnknownCommand = errors.New("unknown command")
)

// DefaultDebounce is the minimum spacing of sound commands.
const DefaultDebounce = 125 * time.Millisecond

// Commands is the controller behind the gate.
type Commands interface {
	Play(ctx context.Context, user session.User) error
	PlayItem(ctx context.Context, user session.User, id string) error
	Stop(ctx context.Context, user session.User) error
	Pause(ctx context.Context, user session.User) error
	Rewind(ctx context.Context, user session.User) error
	FastForward(ctx context.Context, user session.User) error
	OpenMenu(ctx context.Context, user session.User) error
	CloseMenu(ctx context.Context, user session.User) error
	ToggleControls(ctx context.Context, user session.User) error
	ChangeVolume(dir player.Direction) float64
	ChangeRolloff(dir player.Direction) float64
}

type handler func(target Commands, ctx context.Context, user session.User) error

func sound(change func(Commands, player.Direction) float64, dir player.Direction) handler {
	return func(target Commands, _ context.Context, _ session.User) error {
		change(target, dir)
		return nil
	}
}

var handlers = map[Command]handler{
	Play:           Commands.Play,
	Stop:           Commands.Stop,
	Pause:          Commands.Pause,
	Rewind:         Commands.Rewind,
	FastForward:    Commands.FastForward,
	OpenMenu:       Commands.OpenMenu,
	CloseMenu:      Commands.CloseMenu,
	ToggleControls: Commands.ToggleControls,
	// the volume control is inverted: its Down arrow makes it louder
	VolumeUp:       sound(Commands.ChangeVolume, player.Down),
	VolumeDown:     sound(Commands.ChangeVolume, player.Up),
	RolloffUp:      sound(Commands.ChangeRolloff, player.Up),
	RolloffDown:    sound(Commands.ChangeRolloff, player.Down),
}

type latch struct {
	held atomic.Bool
}

func (l *latch) acquire() bool {
	return l.held.CompareAndSwap(false, true)
}

func (l *latch) release() {
	l.held.Store(false)
}

// Gate forwards commands to a controller. Transport and menu commands share
// one latch; sound commands share another and are debounced.
type Gate struct {
	target    Commands
	clock     tracker.Clock
	debounce  time.Duration
	transport latch
	sound     latch

	// lastSound is only touched while the sound latch is held.
	lastSound time.Time
}

type Option func(*Gate)

func WithClock(clock tracker.Clock) Option {
	return func(g *Gate) {
		g.clock = clock
	}
}

func WithDebounce(d time.Duration) Option {
	return func(g *Gate) {
		g.debounce = d
	}
}

// New returns a gate in front of target.
func New(target Commands, opts ...Option) *Gate {
	g := &Gate{
		target:   target,
		clock:    tracker.SystemClock{},
		debounce: DefaultDebounce,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Dispatch runs cmd unless its latch is held, in which case it returns ErrBusy.
func (g *Gate) Dispatch(ctx context.Context, user session.User, cmd Command) error {
	h, ok := handlers[cmd]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if cmd.Sound() {
		return g.guard(&g.sound, cmd, user, func() error {
			now := g.clock.Now()
			if !g.lastSound.IsZero() && now.Sub(g.lastSound) < g.debounce {
				return ErrBusy
			}

			g.lastSound = now
			return h(g.target, ctx, user)
		})
	}

	return g.guard(&g.transport, cmd, user, func() error {
		return h(g.target, ctx, user)
	})
}

// PlayItem plays a specific item through the transport latch.
func (g *Gate) PlayItem(ctx context.Context, user session.User, id string) error {
	return g.guard(&g.transport, Play, user, func() error {
		return g.target.PlayItem(ctx, user, id)
	})
}

func (g *Gate) guard(l *latch, cmd Command, user session.User, fn func() error) (err error) {
	logger := log.WithFields(log.Fields{
		"command": cmd.String(),
		"user":    user.Name,
	})

	if !l.acquire() {
		logger.Debug("dropped, latch held")
		return ErrBusy
	}
	defer l.release()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: recovered from panic: %v", cmd, r)
			logger.Error(err)
		}
	}()

	err = fn()
	if errors.Is(err, ErrBusy) {
		logger.Debug("dropped, debounced")
	} else if err != nil {
		logger.Warnf("failed: %v", err)
	}

	return err
}
