package session

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by commands issued after Close.
var ErrClosed = errors.New("session closed")

// StaleTransitionError reports a resolution that finished after a newer
// command superseded it. It is discarded, never returned to callers.
type StaleTransitionError struct {
	ItemID     string
	Generation uint64
	Current    uint64
}

func (e *StaleTransitionError) Error() string {
	return fmt.Sprintf("stale transition to %q: generation %d superseded by %d", e.ItemID, e.Generation, e.Current)
}
