package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/style"
	"github.com/spf13/viper"
)

// dependencyOf returns the executable the configured player backend runs.
func dependencyOf(backend string) (string, bool) {
	switch backend {
	case player.BackendMPV, "":
		return "mpv", true
	case player.BackendIINA:
		return "iina", runtime.GOOS == constant.Darwin
	default:
		return "", false
	}
}

// CheckDependencies exits when the configured player is not installed.
func CheckDependencies() {
	dep, ok := dependencyOf(viper.GetString(key.PlayerBackend))
	if !ok {
		return
	}

	if _, err := exec.LookPath(dep); err != nil {
		printMissingDependencyError(dep)
		os.Exit(1)
	}
}

func installCommand(dep string) string {
	switch runtime.GOOS {
	case constant.Darwin:
		if dep == "iina" {
			return "brew install --cask iina"
		}
		return "brew install " + dep
	case constant.Linux:
		return "sudo apt install " + dep
	case constant.Windows:
		return "scoop install " + dep
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The player '%s' was not found in your PATH.\nPick another one with --player, e.g. --player %s", dep, player.BackendSilent))

	suggestion := ""
	if installCmd := installCommand(dep); installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
