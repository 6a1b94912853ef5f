// Package where resolves the directories the application keeps its files in.
// Every directory is created on first use.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/filesystem"
)

// Overrides for the config and cache roots.
const (
	EnvConfigPath = "SCREENROOM_CONFIG_PATH"
	EnvCachePath  = "SCREENROOM_CACHE_PATH"
)

func mkdir(elem ...string) string {
	path := filepath.Join(elem...)
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// root returns the override in env, or base/<app>. When base cannot be
// determined the working directory is used.
func root(env string, base func() (string, error), fallback string) string {
	if custom, ok := os.LookupEnv(env); ok && custom != "" {
		return mkdir(custom)
	}

	dir, err := base()
	if err != nil {
		return mkdir(fallback, constant.App)
	}
	return mkdir(dir, constant.App)
}

// Config holds screenroom.toml, the logs and the Lua sources.
func Config() string {
	return root(EnvConfigPath, os.UserConfigDir, ".config")
}

func Cache() string {
	return root(EnvCachePath, os.UserCacheDir, ".cache")
}

func Logs() string {
	return mkdir(Config(), "logs")
}

// Sources holds the user Lua sources.
func Sources() string {
	return mkdir(Config(), "sources")
}

// LuaCache holds the cached search results and responses of Lua sources.
func LuaCache() string {
	return mkdir(Cache(), "lua")
}

// Queries is the search history file.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Temp is wiped on every start.
func Temp() string {
	return mkdir(os.TempDir(), constant.App)
}
