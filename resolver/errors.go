package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPlayableFormat is returned when a source offers no stream the renderer can play.
	ErrNoPlayableFormat = errors.New("no playable stream format")

	// ErrEmptyID is returned when resolution is requested without an item id.
	ErrEmptyID = errors.New("empty item id")
)

// ResolutionError reports that an item could not be turned into a playable descriptor.
type ResolutionError struct {
	ID  string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.ID, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
