package session

import (
	"time"

	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/player"
	"github.com/spf13/viper"
)

// InterruptionOptions configures the administrative clip.
type InterruptionOptions struct {
	ItemID      string
	Rerun       time.Duration
	TitlePrefix string
}

// Enabled reports whether an interruption item is configured.
func (o InterruptionOptions) Enabled() bool {
	return o.ItemID != ""
}

// Options tune a Controller.
type Options struct {
	SeekDistance float64
	TickPeriod   time.Duration
	DefaultItem  string
	Autostart    bool
	Sound        player.SoundOptions
	MinRolloff   float64
	MaxRolloff   float64
	Interruption InterruptionOptions
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		SeekDistance: 15,
		TickPeriod:   5 * time.Second,
		Sound: player.SoundOptions{
			Volume:               0.5,
			RolloffStartDistance: 5,
			Spread:               0.25,
		},
		MinRolloff: 0.2,
		MaxRolloff: 250,
	}
}

// OptionsFromConfig reads Options from the configuration.
func OptionsFromConfig() Options {
	opts := Options{
		SeekDistance: viper.GetFloat64(key.PlaybackSeekDistance),
		TickPeriod:   viper.GetDuration(key.PlaybackTickPeriod),
		DefaultItem:  viper.GetString(key.PlaybackDefaultItem),
		Autostart:    viper.GetBool(key.PlaybackAutostart),
		Sound: player.SoundOptions{
			Volume:               viper.GetFloat64(key.SoundVolume),
			RolloffStartDistance: viper.GetFloat64(key.SoundRolloff),
			Spread:               viper.GetFloat64(key.SoundSpread),
		},
		MinRolloff: viper.GetFloat64(key.SoundMinRolloff),
		MaxRolloff: viper.GetFloat64(key.SoundMaxRolloff),
	}

	if !viper.GetBool(key.InterruptionDisabled) {
		opts.Interruption = InterruptionOptions{
			ItemID:      viper.GetString(key.InterruptionItem),
			Rerun:       time.Duration(viper.GetInt(key.InterruptionRerunMinutes)) * time.Minute,
			TitlePrefix: viper.GetString(key.InterruptionTitlePrefix),
		}
	}

	return opts
}
