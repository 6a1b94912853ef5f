package display

import (
	"fmt"
	"math"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/screenroom/screenroom/util"
)

const (
	TitleMaxLength = 55
	TitleWrapWidth = 35
)

// FormatTitle keeps printable ASCII, truncates long titles with "..." and
// wraps the result for the title panel.
func FormatTitle(title string) string {
	printable := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, title)

	printable = strings.TrimSpace(printable)
	if len(printable) > TitleMaxLength {
		printable = printable[:TitleMaxLength] + "..."
	}

	return wrap.String(wordwrap.String(printable, TitleWrapWidth), TitleWrapWidth)
}

// FormatRemaining renders remaining seconds as HH:MM:SS. Unknown times render as zero.
func FormatRemaining(seconds float64) string {
	if seconds <= -1 {
		return "00:00:00"
	}
	return util.SecondsToString(int(math.Max(0, math.Round(seconds))))
}

// VolumeLabel renders a [0, 1] volume as a percentage.
func VolumeLabel(volume float64) string {
	return fmt.Sprintf("Vol: %d%%", int(math.Round(volume*100)))
}

// RolloffLabel renders a rolloff distance in meters.
func RolloffLabel(distance float64) string {
	return fmt.Sprintf("Rolloff: %.1fm", distance)
}
