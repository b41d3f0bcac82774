// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/zalukaj-cli/zalukaj/constant"
	"github.com/zalukaj-cli/zalukaj/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "ZALUKAJ_CONFIG_PATH"

// EnvDataPath overrides the directory holding session state (the cookie jar).
const EnvDataPath = "ZALUKAJ_DATA_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// ZALUKAJ_CONFIG_PATH takes precedence over the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Zalukaj))
}

// Data resolves the directory holding per-user session state.
// It plays the role of the media-center "profile" folder the cookie file used to live in.
func Data() string {
	if custom, ok := os.LookupEnv(EnvDataPath); ok {
		return ensureDir(custom)
	}

	return ensureDir(filepath.Join(Config(), "data"))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Zalukaj))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Cookies resolves the persisted cookie jar file.
func Cookies() string {
	return filepath.Join(Data(), constant.CookiesFileName)
}

// History resolves the absolute path to the localized watch history persistence file.
func History() string {
	return filepath.Join(Data(), "history.json")
}

// Queries resolves the absolute path to the localized search query suggestion registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Listings resolves the directory holding cached catalog listings, one file per listing kind.
func Listings() string {
	return ensureDir(filepath.Join(Cache(), "listings"))
}

// Temp resolves a volatile filesystem path for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Zalukaj))
}
