// Package filesystem holds the afero backend every file access goes through.
// Tests swap it for an in-memory one.
package filesystem

import (
	"sync/atomic"

	"github.com/spf13/afero"
)

var backend atomic.Pointer[afero.Afero]

func init() {
	SetOsFs()
}

// API returns the current backend.
func API() afero.Afero {
	return *backend.Load()
}

func SetOsFs() {
	set(afero.NewOsFs())
}

// SetMemMapFs switches to a fresh, empty in-memory filesystem.
func SetMemMapFs() {
	set(afero.NewMemMapFs())
}

func set(fs afero.Fs) {
	backend.Store(&afero.Afero{Fs: fs})
}
