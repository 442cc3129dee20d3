// Package where resolves the filesystem locations used by homestream.
package where

import (
	"os"
	"path/filepath"

	"github.com/homestream-cli/homestream/constant"
	"github.com/homestream-cli/homestream/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "HOMESTREAM_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory.
// HOMESTREAM_CONFIG_PATH takes precedence over the platform user config directory.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Homestream))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Homestream))
}

// Logs resolves the directory holding dated log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Providers resolves the provider directory override file.
func Providers() string {
	return filepath.Join(Config(), "providers.txt")
}

// Streams resolves the file backing the merged stream cache.
func Streams() string {
	return filepath.Join(Cache(), "streams.json")
}

// Queries resolves the resolved-title history used for suggestions.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}
