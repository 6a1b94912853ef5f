package gate

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Command is a control on the playback surface.
type Command int

const (
	Play Command = iota
	Stop
	Pause
	Rewind
	FastForward
	OpenMenu
	CloseMenu
	ToggleControls
	VolumeUp
	VolumeDown
	RolloffUp
	RolloffDown
)

var names = map[Command]string{
	Play:           "play",
	Stop:           "stop",
	Pause:          "pause",
	Rewind:         "rewind",
	FastForward:    "fast-forward",
	OpenMenu:       "open-menu",
	CloseMenu:      "close-menu",
	ToggleControls: "toggle-controls",
	VolumeUp:       "volume-up",
	VolumeDown:     "volume-down",
	RolloffUp:      "rolloff-up",
	RolloffDown:    "rolloff-down",
}

func (c Command) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Sound reports whether the command goes through the debounced sound latch.
func (c Command) Sound() bool {
	return c >= VolumeUp && c <= RolloffDown
}

// All returns every command in declaration order.
func All() []Command {
	return lo.Map(lo.Range(len(names)), func(i int, _ int) Command {
		return Command(i)
	})
}

// ParseCommand accepts the command names, case-insensitively, with either '-' or '_'.
func ParseCommand(s string) (Command, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")

	for c, name := range names {
		if name == normalized {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown command %q, expected one of: %s", s, strings.Join(lo.Map(All(), func(c Command, _ int) string {
		return c.String()
	}), ", "))
}
