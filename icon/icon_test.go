package icon

import (
	"testing"

	"github.com/screenroom/screenroom/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Every icon has a symbol in every variant", t, func() {
		Reset(func() { viper.Set(key.IconsVariant, plain) })

		for _, variant := range AvailableVariants() {
			viper.Set(key.IconsVariant, variant)
			for i := range icons {
				So(Get(i), ShouldNotBeEmpty)
			}
		}
	})

	Convey("An unknown variant falls back to plain", t, func() {
		viper.Set(key.IconsVariant, "runes")
		So(Get(Play), ShouldEqual, icons[Play].plain)
	})

	Convey("An unregistered icon renders nothing", t, func() {
		So(Get(Icon(-1)), ShouldBeEmpty)
	})
}
