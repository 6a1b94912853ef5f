package auth

import (
	"testing"

	"github.com/screenroom/screenroom/key"
	"github.com/spf13/viper"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestCredentials(t *testing.T) {
	Convey("Given stored credentials", t, func() {
		So(Delete(), ShouldBeNil)
		viper.Set(key.SourceCookie, "")
		viper.Set(key.SourceClientID, "")

		So(SetCookie("PREF=1"), ShouldBeNil)
		So(SetClientID("web"), ShouldBeNil)

		Convey("They are loaded from the keyring", func() {
			creds := Load()
			So(creds.Cookie, ShouldEqual, "PREF=1")
			So(creds.ClientID, ShouldEqual, "web")
			So(creds.Empty(), ShouldBeFalse)
		})

		Convey("Configuration wins over the keyring", func() {
			viper.Set(key.SourceCookie, "PREF=2")
			So(Load().Cookie, ShouldEqual, "PREF=2")
		})

		Convey("Delete clears them", func() {
			So(Delete(), ShouldBeNil)
			So(Load().Empty(), ShouldBeTrue)
			So(Delete(), ShouldBeNil)
		})
	})
}
