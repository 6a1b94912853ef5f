// Package provider lists the content sources: the built-in catalog API and user Lua scripts.
package provider

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/auth"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/internal/scraper"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/network"
	"github.com/screenroom/screenroom/provider/custom"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/util"
	"github.com/screenroom/screenroom/where"
	"github.com/spf13/viper"
)

// CustomProviderExtension is the extension of Lua source files.
const CustomProviderExtension = scraper.Extension

// Provider creates a source on demand.
type Provider struct {
	ID           string
	Name         string
	UsesHeadless bool
	IsCustom     bool
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns the built-in providers.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   APIName,
			Name: APIName,
			CreateSource: func() (source.Source, error) {
				return NewAPISource(viper.GetString(key.SourceAPIURL), network.Client, auth.Load())
			},
		},
	}
}

// Customs returns the Lua providers found in the sources directory.
func Customs() []*Provider {
	providers, err := CustomProviders()
	if err != nil {
		return nil
	}
	return providers
}

// Get finds a provider by name. Built-in providers shadow scripts of the same name.
func Get(name string) (*Provider, bool) {
	return lo.Find(append(Builtins(), Customs()...), func(p *Provider) bool {
		return p.Name == name
	})
}

// Default returns the source named by the configuration.
func Default() (source.Source, error) {
	name := viper.GetString(key.SourceDefault)

	p, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("source %q not found", name)
	}

	return p.CreateSource()
}

// CustomProviders scans the sources directory for Lua scripts.
func CustomProviders() ([]*Provider, error) {
	dir := where.Sources()

	files, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), CustomProviderExtension) {
			continue
		}

		path := filepath.Join(dir, f.Name())
		name := util.FileStem(f.Name())

		providers = append(providers, &Provider{
			ID:           custom.IDfromName(name),
			Name:         name,
			UsesHeadless: isHeadless(path),
			IsCustom:     true,
			CreateSource: func() (source.Source, error) {
				return custom.LoadSource(path)
			},
		})
	}

	return providers, nil
}

func isHeadless(path string) bool {
	content, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return bytes.Contains(content, []byte(`require("headless")`)) ||
		bytes.Contains(content, []byte(`require('headless')`))
}
