package player

import (
	"context"

	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/source"
)

// Silent renders nothing. The session still runs its timeline, which is what
// headless servers and remote surfaces need.
type Silent struct{}

func (Silent) Name() string {
	return BackendSilent
}

func (Silent) Start(_ context.Context, item *source.Item, opts SoundOptions) (Instance, error) {
	entry := log.WithFields(log.Fields{"item": item.ID})
	entry.WithFields(log.Fields{
		"offset": opts.StartOffsetSeconds,
		"volume": opts.Volume,
	}).Info("silent playback started")

	return silentInstance{entry: entry}, nil
}

type silentInstance struct {
	entry interface {
		Debugf(format string, args ...interface{})
	}
}

func (s silentInstance) Pause() error  { s.entry.Debugf("pause"); return nil }
func (s silentInstance) Resume() error { s.entry.Debugf("resume"); return nil }
func (s silentInstance) Stop() error   { s.entry.Debugf("stop"); return nil }

func (s silentInstance) SetVolume(v float64) error {
	s.entry.Debugf("volume %.2f", v)
	return nil
}

func (s silentInstance) SetRolloff(d float64) error {
	s.entry.Debugf("rolloff %.1f", d)
	return nil
}
