package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/display"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case searchState:
		output = b.viewSearch()
	case catalogState:
		output = b.viewCatalog()
	case nowPlayingState:
		output = b.viewNowPlaying()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search " + b.room.Source.Name()),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint("tab: "+suggestion))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewCatalog() string {
	return listExtraPaddingStyle.Render(b.catalogC.View())
}

func (b *statefulBubble) stateIcon() string {
	switch b.snapshot.State {
	case session.Playing.String():
		return icon.Get(icon.Play)
	case session.Paused.String():
		return icon.Get(icon.Pause)
	default:
		return icon.Get(icon.Stop)
	}
}

func (b *statefulBubble) viewNowPlaying() string {
	truncate := style.Truncate(b.width)

	title := b.nowPlaying.title
	if title == "" {
		title = style.Faint("Nothing playing")
	} else {
		title = style.Fg(color.Purple)(title)
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		truncate(fmt.Sprintf("%s %s", b.stateIcon(), title)),
	}

	if b.snapshot.Interrupting {
		lines = append(lines, "", style.Tag(style.Base, style.InterruptionColor)(icon.Get(icon.Interruption)+" interruption"))
	}

	if b.nowPlaying.remaining >= 0 && (b.snapshot.Item == nil || !b.snapshot.Item.Live) {
		lines = append(lines, "", fmt.Sprintf("%s %s left", icon.Get(icon.Progress), display.FormatRemaining(b.nowPlaying.remaining)))
	}

	if !b.nowPlaying.controlsHidden {
		lines = append(lines,
			"",
			style.Faint(fmt.Sprintf("%s %s    %s %s",
				icon.Get(icon.Volume), b.nowPlaying.volume,
				icon.Get(icon.Rolloff), b.nowPlaying.rolloff,
			)),
		)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	if addHelp {
		if h := lipgloss.Height(l); b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
