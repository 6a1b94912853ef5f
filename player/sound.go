package player

import (
	"fmt"

	"github.com/screenroom/screenroom/util"
)

// SoundOptions are applied to every new instance.
type SoundOptions struct {
	Volume               float64 `json:"volume"`
	RolloffStartDistance float64 `json:"rolloff_start_distance"`
	Spread               float64 `json:"spread"`
	StartOffsetSeconds   float64 `json:"start_offset_seconds"`
}

// Direction is the arrow pressed on a sound control.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ParseDirection accepts "up" and "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Down, fmt.Errorf("unknown direction %q", s)
	}
}

const (
	volumeFineThreshold = 0.1
	volumeFineStep      = 0.02
	volumeStep          = 0.1
	rolloffStep         = 0.2
)

// StepVolume returns the volume after one press of the control.
//
// The volume control is mounted upside down on the surface: Down raises the
// volume and Up lowers it. Steps shrink to 0.02 near silence.
func StepVolume(volume float64, dir Direction) float64 {
	v := util.RoundTo(volume, 2)

	switch dir {
	case Down:
		if v >= 1 {
			v = 1
		} else if v < volumeFineThreshold {
			v += volumeFineStep
		} else {
			v += volumeStep
		}
	default:
		if v <= 0 {
			v = 0
		} else if v <= volumeFineThreshold {
			v -= volumeFineStep
		} else {
			v -= volumeStep
		}
	}

	return util.RoundTo(util.Clamp(v, 0, 1), 2)
}

// StepRolloff returns the rolloff start distance after one press, bounded to [minimum, maximum].
func StepRolloff(distance float64, dir Direction, minimum, maximum float64) float64 {
	d := distance

	switch dir {
	case Down:
		if d-rolloffStep <= minimum {
			d = minimum
		} else {
			d -= rolloffStep
		}
	default:
		if d >= maximum {
			d = maximum
		} else {
			d += rolloffStep
		}
	}

	return util.Clamp(util.RoundTo(d, 2), minimum, maximum)
}
