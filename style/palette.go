package style

import "github.com/charmbracelet/lipgloss"

// The interface palette. Unlike package color these are fixed hex values.
var (
	Base      = lipgloss.Color("#16161e")
	Text      = lipgloss.Color("#c0caf5")
	Muted     = lipgloss.Color("#565f89")
	Marquee   = lipgloss.Color("#e0af68")
	Curtain   = lipgloss.Color("#f7768e")
	Spotlight = lipgloss.Color("#bb9af7")
)

var (
	AccentColor       = Spotlight
	TitleColor        = Marquee
	InterruptionColor = Marquee
	LiveColor         = Curtain
	ErrorColor        = Curtain
	FaintColor        = Muted
)
