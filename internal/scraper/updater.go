package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/network"
)

// Extension is the file extension of a Lua content source.
const Extension = ".lua"

// maxScriptSize bounds a downloaded script.
const maxScriptSize = 1 << 20

func checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Install downloads the script at rawURL into dir. The existing script with
// the same name is swapped atomically and only when its contents differ.
func Install(ctx context.Context, rawURL, dir string) (target string, changed bool, err error) {
	name := path.Base(rawURL)
	if !strings.HasSuffix(name, Extension) {
		return "", false, fmt.Errorf("%s does not point to a %s script", rawURL, Extension)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("download %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptSize))
	if err != nil {
		return "", false, err
	}

	fs := filesystem.API()
	target = filepath.Join(dir, name)

	if local, err := fs.ReadFile(target); err == nil && checksum(local) == checksum(body) {
		return target, false, nil
	}

	tmp := target + ".tmp"
	if err := fs.WriteFile(tmp, body, 0o644); err != nil {
		return "", false, err
	}

	if err := fs.Rename(tmp, target); err != nil {
		_ = fs.Remove(tmp)
		return "", false, err
	}

	return target, true, nil
}
