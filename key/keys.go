// Package key names every configuration key.
package key

// DefinedFieldsCount is the number of keys config registers.
const DefinedFieldsCount = 37

// Transport of a session.
const (
	PlaybackSeekDistance = "playback.seek_distance"
	PlaybackTickPeriod   = "playback.tick_period"
	PlaybackAutostart    = "playback.autostart"
	PlaybackDefaultItem  = "playback.default_item"
)

// Sound options applied to every new media instance.
const (
	SoundVolume     = "sound.volume"
	SoundRolloff    = "sound.rolloff"
	SoundMinRolloff = "sound.min_rolloff"
	SoundMaxRolloff = "sound.max_rolloff"
	SoundSpread     = "sound.spread"
)

// Interruption clip played ahead of the program on a timer.
const (
	InterruptionItem         = "interruption.item"
	InterruptionRerunMinutes = "interruption.rerun_minutes"
	InterruptionDisabled     = "interruption.disabled"
	InterruptionTitlePrefix  = "interruption.title_prefix"
)

// Resolution cache lifetimes and format policy.
const (
	ResolverDefaultTTL       = "resolver.default_ttl"
	ResolverSuccessTTL       = "resolver.success_ttl"
	ResolverRetries          = "resolver.retries"
	ResolverPreferredFormats = "resolver.preferred_formats"
)

// Catalog paging.
const (
	CatalogPageSize   = "catalog.page_size"
	CatalogMaxResults = "catalog.max_results"
)

const (
	GateDebounce = "gate.debounce"
)

// External video player.
const (
	PlayerBackend = "player.backend"
	PlayerMPVArgs = "player.mpv_args"
)

const (
	ServerAddress = "server.address"
)

// Content sources.
const (
	SourceDefault  = "source.default"
	SourceAPIURL   = "source.api_url"
	SourceCookie   = "source.cookie"
	SourceClientID = "source.client_id"
)

// Search history and suggestions.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchRememberQueries      = "search.remember_queries"
)

// Terminal interface.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
)

const (
	IconsVariant = "icons.variant"
)

// Log files.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Command line output.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
