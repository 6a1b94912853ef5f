// Package version checks for newer releases and compares version strings.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/network"
	"github.com/screenroom/screenroom/util"
	"github.com/screenroom/screenroom/where"
)

const (
	checkTimeout = 5 * time.Second
	checkEvery   = 48 * time.Hour
)

var latestCache = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   checkEvery,
	FileSystem: &filesystem.GacheFs{},
})

var releasesURL = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

// ReleaseURL is the page of the release with the given version.
func ReleaseURL(version string) string {
	return "https://github.com/" + constant.Repository + "/releases/tag/v" + version
}

// Latest returns the newest released version, asking GitHub at most once
// every two days.
func Latest() (string, error) {
	if cached, expired, err := latestCache.Get(); err == nil && !expired && cached != "" {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	tag, err := fetchTag(ctx)
	if err != nil {
		return "", err
	}

	latest := strings.TrimPrefix(tag, "v")
	_ = latestCache.Set(latest)
	return latest, nil
}

func fetchTag(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("latest release: %s", resp.Status)
	}

	var release struct {
		Tag string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("latest release: %w", err)
	}
	if release.Tag == "" {
		return "", fmt.Errorf("latest release: no tag")
	}

	return release.Tag, nil
}
