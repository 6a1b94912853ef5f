package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/style"
	"github.com/screenroom/screenroom/util"
)

// Console prints every update as a styled line.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole returns hooks writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, line)
}

func (c *Console) UpdateTitle(title string) {
	width := TitleWrapWidth
	if w, _, err := util.TerminalSize(); err == nil && w > 0 {
		width = util.Min(w, 80)
	}

	c.println(strings.Join([]string{
		style.Faint(strings.Repeat("─", width)),
		style.Title(icon.Get(icon.Play) + " Now playing"),
		style.Bold(FormatTitle(title)),
	}, "\n"))
}

func (c *Console) UpdateRemainingTime(seconds float64) {
	c.println(style.Fg(color.Cyan)("Remaining ") + FormatRemaining(seconds))
}

func (c *Console) UpdateVolumeLabel(label string) {
	c.println(style.Fg(color.Yellow)(icon.Get(icon.Volume) + " " + label))
}

func (c *Console) UpdateRolloffLabel(label string) {
	c.println(style.Fg(color.Purple)(icon.Get(icon.Rolloff) + " " + label))
}

func (c *Console) UpdateControlsVisible(visible bool) {
	if visible {
		c.println(style.Faint("controls shown"))
	} else {
		c.println(style.Faint("controls hidden"))
	}
}
