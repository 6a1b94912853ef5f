// Package player defines a unified abstraction layer for media playback engines.
// The architecture supports multiple backends, with the primary implementation targeting 'mpv' via its JSON-IPC interface.
package player

import (
	"context"
	"fmt"

	"github.com/screenroom/screenroom/source"
)

// Renderer creates media instances.
type Renderer interface {
	// Name returns the backend identifier.
	Name() string

	// Start begins rendering item with the given sound options.
	// opts.StartOffsetSeconds selects where playback begins.
	Start(ctx context.Context, item *source.Item, opts SoundOptions) (Instance, error)
}

// Instance is a live media rendering resource. It is owned by a single session.
type Instance interface {
	Pause() error
	Resume() error
	// SetVolume applies a volume in [0, 1].
	SetVolume(volume float64) error
	// SetRolloff applies a spatial audio rolloff start distance in meters.
	SetRolloff(distance float64) error
	// Stop ends rendering and releases the resource. Further calls are no-ops.
	Stop() error
}

// Backend identifiers.
const (
	BackendMPV    = "mpv"
	BackendIINA   = "iina"
	BackendSilent = "silent"
)

// AvailableBackends lists the renderer names accepted by New.
func AvailableBackends() []string {
	return []string{BackendMPV, BackendIINA, BackendSilent}
}

// New returns the renderer for backend.
func New(backend string, extraArgs ...string) (Renderer, error) {
	switch backend {
	case BackendMPV, "":
		return NewMPV(extraArgs...), nil
	case BackendIINA:
		return NewIINA(extraArgs...), nil
	case BackendSilent:
		return Silent{}, nil
	default:
		return nil, fmt.Errorf("unknown player backend %q", backend)
	}
}
