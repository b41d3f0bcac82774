// Package constant defines immutable application-level identifiers and site defaults.
package constant

const (
	// Zalukaj is the canonical application identifier used for filesystem paths and CLI branding.
	Zalukaj = "zalukaj"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent mirrors a desktop Chrome build; the site serves a reduced page to unknown agents.
	UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/66.0.3359.181 Safari/537.36"
)

// Build metadata, set with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
