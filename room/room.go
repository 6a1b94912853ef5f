// Package room assembles a playback session from the configuration: a
// content source, its resolver, the catalog pager, the controller and the
// command gate in front of it.
package room

import (
	"fmt"

	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/display"
	"github.com/screenroom/screenroom/gate"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/provider"
	"github.com/screenroom/screenroom/resolver"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/source"
	"github.com/spf13/viper"
)

// Options override parts of the configured room.
type Options struct {
	// Source replaces the configured default source.
	Source source.Source
	// Renderer replaces the configured player backend.
	Renderer player.Renderer
	Hooks    display.Hooks
	View     catalog.View
	Menu     session.Menu
}

// Room is a wired session.
type Room struct {
	Source     source.Source
	Resolver   *resolver.Resolver
	Pager      *catalog.Pager
	Controller *session.Controller
	Gate       *gate.Gate
}

// ResolverOptions reads the resolver options from the configuration.
func ResolverOptions() []resolver.Option {
	return []resolver.Option{
		resolver.WithTTL(viper.GetDuration(key.ResolverDefaultTTL), viper.GetDuration(key.ResolverSuccessTTL)),
		resolver.WithPreferredFormats(viper.GetIntSlice(key.ResolverPreferredFormats)...),
		resolver.WithRetries(viper.GetInt(key.ResolverRetries), resolver.DefaultRetryDelay),
	}
}

// PagerOptions reads the catalog options from the configuration.
func PagerOptions() []catalog.Option {
	return []catalog.Option{
		catalog.WithPageSize(viper.GetInt(key.CatalogPageSize)),
		catalog.WithMaxResults(viper.GetInt(key.CatalogMaxResults)),
	}
}

// Renderer returns the configured player backend.
func Renderer() (player.Renderer, error) {
	return player.New(viper.GetString(key.PlayerBackend), viper.GetStringSlice(key.PlayerMPVArgs)...)
}

// New builds a room. Nothing plays until the controller is started.
func New(options Options) (*Room, error) {
	src := options.Source
	if src == nil {
		var err error
		if src, err = provider.Default(); err != nil {
			return nil, err
		}
	}

	renderer := options.Renderer
	if renderer == nil {
		var err error
		if renderer, err = Renderer(); err != nil {
			return nil, err
		}
	}

	res := resolver.New(src, ResolverOptions()...)
	pager := catalog.NewPager(src, options.View, PagerOptions()...)

	controller := session.NewController(session.Deps{
		Resolver: res,
		Renderer: renderer,
		Next:     pager,
		Menu:     options.Menu,
		Hooks:    options.Hooks,
	}, session.OptionsFromConfig())

	g := gate.New(controller, gate.WithDebounce(viper.GetDuration(key.GateDebounce)))

	log.WithFields(log.Fields{
		"source":   src.Name(),
		"renderer": renderer.Name(),
	}).Info("room assembled")

	return &Room{
		Source:     src,
		Resolver:   res,
		Pager:      pager,
		Controller: controller,
		Gate:       g,
	}, nil
}

// Close stops playback and releases the source.
func (r *Room) Close() {
	r.Controller.Close()
	if closer, ok := r.Source.(interface{ Close() }); ok {
		closer.Close()
	}
}

// String describes the room for logs and errors.
func (r *Room) String() string {
	return fmt.Sprintf("room on %s", r.Source.Name())
}
