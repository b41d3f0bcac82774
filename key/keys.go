// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Account - these keys control automatic sign-in to the site.
const (
	ZalukajLogin    = "zalukaj.login"
	ZalukajUsername = "zalukaj.username"
)

// Video selection - preferred labels picked without prompting when the player offers them.
const (
	VideoQuality = "video.quality"
	VideoVersion = "video.version"
)

// Network - these keys tune the scraping session.
const (
	NetworkTimeout        = "network.timeout"
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Listing cache.
const (
	CacheLifetime = "cache.lifetime"
)

// History Tracking - these keys configure the persistence of media consumption state.
const (
	HistorySaveOnPlay = "history.save_on_play"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Media Playback - these keys maintain the configuration for external video players.
const (
	Player                     = "player.default"
	PlayerCompletionPercentage = "player.completion_percentage"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
