// Package constant defines immutable application-level identifiers and built-in defaults.
package constant

const (
	// Homestream is the canonical application identifier used for filesystem paths and CLI branding.
	Homestream = "homestream"

	// Version is the current application semantic version string.
	Version = "1.2.1"

	// UserAgent is the default HTTP User-Agent sent to VOD providers.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, populated through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
