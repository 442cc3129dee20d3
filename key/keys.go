// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Search Pipeline - these keys govern how a title is resolved against the provider directory.
const (
	SearchMultiSource          = "search.multi_source"
	SearchDefaultType          = "search.default_type"
	SearchTimeout              = "search.timeout"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Provider Directory - these keys select and probe the set of VOD endpoints.
const (
	ProvidersDirectory    = "providers.directory"
	ProvidersCheckTimeout = "providers.check_timeout"
)

// Result Cache.
const (
	CacheTTL = "cache.ttl"
)

// Network - these keys tune the HTTP client used against providers.
const (
	NetworkImpersonate = "network.impersonate"
	NetworkUserAgent   = "network.user_agent"
)

// Output.
const (
	OutputTruncate = "output.truncate"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored = "cli.colored"
)
