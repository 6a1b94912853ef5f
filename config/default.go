package config

import (
	"time"

	"github.com/screenroom/screenroom/key"
)

var (
	// Default maps every key to its field.
	Default = make(map[string]Field, key.DefinedFieldsCount)

	// EnvExposed lists the keys bound to environment variables, in
	// registration order.
	EnvExposed = make([]string, 0, key.DefinedFieldsCount)
)

func register(name string, value any, description string) {
	if _, ok := Default[name]; ok {
		panic("config: " + name + " registered twice")
	}

	Default[name] = Field{Key: name, Value: value, Description: description}
	EnvExposed = append(EnvExposed, name)
}

func init() {

	// playback
	register(key.PlaybackSeekDistance, 15, "Seconds skipped by rewind and fast-forward")
	register(key.PlaybackTickPeriod, 5*time.Second, "How often the remaining time is polled while playing")
	register(key.PlaybackAutostart, false, "Start playing the default item as soon as a session opens")
	register(key.PlaybackDefaultItem, "9gmykUdtUlo", "Item played when nothing else was selected")

	// sound
	register(key.SoundVolume, 0.5, "Initial volume. From 0 to 1")
	register(key.SoundRolloff, 5.0, "Initial spatial audio rolloff start distance, in meters")
	register(key.SoundMinRolloff, 0.2, "Smallest rolloff start distance, in meters")
	register(key.SoundMaxRolloff, 250.0, "Largest rolloff start distance, in meters")
	register(key.SoundSpread, 0.25, "Spatial audio spread. From 0 to 1")

	// interruption
	register(key.InterruptionItem, "", "Item played as an interruption before the regular program.\nLeave empty to disable")
	register(key.InterruptionRerunMinutes, 20, "Minimum minutes between two interruptions")
	register(key.InterruptionDisabled, false, "Disable interruptions even if an item is set")
	register(key.InterruptionTitlePrefix, "Announcement: ", "Prefix shown before the interruption title")

	// resolver
	register(key.ResolverDefaultTTL, 60*time.Second, "Lifetime of cached failed resolutions")
	register(key.ResolverSuccessTTL, 600*time.Second, "Lifetime of cached successful resolutions")
	register(key.ResolverRetries, 2, "Retries for a resolution that failed on the network")
	register(key.ResolverPreferredFormats, []int{22, 18}, "Stream format tags in order of preference.\nHLS is used when none of them is offered")

	// catalog
	register(key.CatalogPageSize, 18, "Items per catalog page")
	register(key.CatalogMaxResults, 90, "Maximum search results kept for paging")

	// gate
	register(key.GateDebounce, 125*time.Millisecond, "Window in which repeated volume and rolloff commands are dropped")

	// player
	register(key.PlayerBackend, "mpv", "Media player to use.\nAvailable options are: mpv, iina, silent")
	register(key.PlayerMPVArgs, []string{}, "Extra arguments passed to mpv")

	// server
	register(key.ServerAddress, ":8080", "Address the serve command listens on")

	// sources
	register(key.SourceDefault, "builtin", "Source to use.\nType \"screenroom sources list\" to show available sources")
	register(key.SourceAPIURL, "https://yewtu.be", "Base URL of the JSON API used by the builtin source")
	register(key.SourceCookie, "", "Cookie sent with builtin source requests.\nPrefer \"screenroom auth\" which stores it in the keyring")
	register(key.SourceClientID, "", "Client identity sent with builtin source requests")

	// search
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.SearchRememberQueries, true, "Remember search queries for suggestions")

	// ui
	register(key.TUIItemSpacing, 1, "Number of blank lines between catalog entries")
	register(key.TUISearchPromptString, "> ", "Prompt shown in front of the search input")

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")

	// logs
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
}
