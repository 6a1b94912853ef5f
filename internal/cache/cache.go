// Package cache persists the results of Lua content sources between runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/where"
)

// TTL bounds the age of a cached search page. Stream URLs expire much sooner
// and are never written here.
const TTL = 24 * time.Hour

// Key derives a file name from a term and the source that answered it.
func Key(term, sourceID string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(term), " ")) + "\x00" + sourceID
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func path(key string) string {
	return filepath.Join(where.LuaCache(), key+".json")
}

// Read decodes the entry for key into target. It reports false on a miss or an expired entry.
func Read(key string, target any) bool {
	fs := filesystem.API()
	p := path(key)

	info, err := fs.Stat(p)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := fs.ReadFile(p)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.Warnf("cache entry %s is corrupt: %v", key, err)
		_ = fs.Remove(p)
		return false
	}

	return true
}

// Write stores data under key, replacing the previous entry atomically.
func Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	fs := filesystem.API()
	p := path(key)
	tmp := p + ".tmp"

	if err := fs.WriteFile(tmp, encoded, 0o644); err != nil {
		return err
	}

	return fs.Rename(tmp, p)
}

// Prune removes expired entries and returns how many were removed.
func Prune() int {
	fs := filesystem.API()

	var removed int
	_ = fs.Walk(where.LuaCache(), func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) > TTL && fs.Remove(p) == nil {
			removed++
		}
		return nil
	})

	if removed > 0 {
		log.Infof("pruned %d expired cache entries", removed)
	}

	return removed
}

// Clear removes every entry.
func Clear() error {
	return filesystem.API().RemoveAll(where.LuaCache())
}
