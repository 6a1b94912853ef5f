// Package tracker converts wall-clock time into playback progress and schedules the periodic tick
// that polls it.
package tracker

import (
	"math"
	"time"
)

// Progress is the playback position of the active item.
//
// RunningSeconds is the elapsed time accumulated at the last pause or stop.
// StartTime is recomputed on every (re)start so that elapsed time is a pure
// function of the wall clock.
type Progress struct {
	StartTime      time.Time `json:"start_time"`
	RunningSeconds float64   `json:"running_seconds"`
}

// Elapsed returns the seconds elapsed since p.StartTime, at millisecond resolution and never negative.
func Elapsed(now time.Time, p Progress) float64 {
	ms := math.Round(float64(now.Sub(p.StartTime)) / float64(time.Millisecond))
	return math.Max(0, ms) / 1000
}

// Remaining returns duration minus elapsed. It goes negative once the item overruns.
func Remaining(now time.Time, p Progress, duration float64) float64 {
	return duration - Elapsed(now, p)
}

// Restarted anchors StartTime so that Elapsed(now) equals RunningSeconds.
func (p Progress) Restarted(now time.Time) Progress {
	offset := time.Duration(p.RunningSeconds * float64(time.Second))
	return Progress{
		StartTime:      now.Add(-offset),
		RunningSeconds: p.RunningSeconds,
	}
}

// Frozen captures the elapsed time into RunningSeconds.
func (p Progress) Frozen(now time.Time) Progress {
	p.RunningSeconds = Elapsed(now, p)
	return p
}

// At returns a progress that resumes from the given offset.
func At(seconds float64) Progress {
	return Progress{RunningSeconds: math.Max(0, seconds)}
}
