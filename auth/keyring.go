// Package auth stores the content source credentials in the system keyring.
package auth

import (
	"errors"

	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/key"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	cookieUser   = "source-cookie"
	clientIDUser = "source-client-id"
)

// Credentials authenticate requests to the built-in source.
type Credentials struct {
	Cookie   string
	ClientID string
}

// Empty reports whether no credential is set.
func (c Credentials) Empty() bool {
	return c.Cookie == "" && c.ClientID == ""
}

func SetCookie(cookie string) error {
	return keyring.Set(constant.App, cookieUser, cookie)
}

func SetClientID(id string) error {
	return keyring.Set(constant.App, clientIDUser, id)
}

// Delete removes both credentials. Missing entries are not an error.
func Delete() error {
	var errs []error
	for _, user := range []string{cookieUser, clientIDUser} {
		if err := keyring.Delete(constant.App, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load returns the stored credentials. Configuration values, including
// SCREENROOM_SOURCE_COOKIE and SCREENROOM_SOURCE_CLIENT_ID, win over the keyring.
func Load() Credentials {
	return Credentials{
		Cookie:   lookup(key.SourceCookie, cookieUser),
		ClientID: lookup(key.SourceClientID, clientIDUser),
	}
}

func lookup(configKey, user string) string {
	if v := viper.GetString(configKey); v != "" {
		return v
	}

	v, err := keyring.Get(constant.App, user)
	if err != nil {
		return ""
	}
	return v
}
