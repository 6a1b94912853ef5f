// Package config registers every setting, its default and its environment
// binding, and loads screenroom.toml through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvKeyReplacer turns a key such as sound.min_rolloff into SOUND_MIN_ROLLOFF.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup binds defaults and environment variables, then reads the config
// file if there is one. A missing file is not an error.
func Setup() error {
	viper.SetFs(filesystem.API())
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}
	for _, name := range EnvExposed {
		viper.MustBindEnv(name)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}

	return Validate()
}

// Backends lists the accepted values of player.backend.
var Backends = []string{"mpv", "iina", "silent"}

// Validate checks the loaded values that the session cannot recover from.
func Validate() error {
	var errs []error

	unit := func(name string) {
		if v := viper.GetFloat64(name); v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s: %v is outside [0, 1]", name, v))
		}
	}
	unit(key.SoundVolume)
	unit(key.SoundSpread)

	lowest, highest := viper.GetFloat64(key.SoundMinRolloff), viper.GetFloat64(key.SoundMaxRolloff)
	if lowest <= 0 || lowest > highest {
		errs = append(errs, fmt.Errorf("%s: %v must be positive and at most %s (%v)", key.SoundMinRolloff, lowest, key.SoundMaxRolloff, highest))
	} else if rolloff := viper.GetFloat64(key.SoundRolloff); rolloff < lowest || rolloff > highest {
		errs = append(errs, fmt.Errorf("%s: %v is outside [%v, %v]", key.SoundRolloff, rolloff, lowest, highest))
	}

	if backend := viper.GetString(key.PlayerBackend); !lo.Contains(Backends, backend) {
		errs = append(errs, fmt.Errorf("%s: unknown backend %q, expected one of %s", key.PlayerBackend, backend, strings.Join(Backends, ", ")))
	}

	if viper.GetInt(key.CatalogPageSize) <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", key.CatalogPageSize))
	}

	if _, err := logrus.ParseLevel(viper.GetString(key.LogsLevel)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", key.LogsLevel, err))
	}

	return errors.Join(errs...)
}
