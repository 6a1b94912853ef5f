// Package icon renders status symbols in the configured variant.
package icon

import (
	"github.com/screenroom/screenroom/key"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

const (
	plain   = "plain"
	emoji   = "emoji"
	nerd    = "nerd"
	kaomoji = "kaomoji"
	squares = "squares"
)

var variants = []string{plain, emoji, nerd, kaomoji, squares}

func AvailableVariants() []string {
	return slices.Clone(variants)
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) in(variant string) string {
	switch variant {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return d.plain
	}
}

// Get renders i in the configured variant. Unknown variants fall back to plain.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.in(viper.GetString(key.IconsVariant))
}
