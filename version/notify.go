package version

import (
	"fmt"

	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/style"
	"github.com/screenroom/screenroom/util"
	"github.com/spf13/viper"
)

// Notify prints a banner when a newer release exists. A failed check is
// only logged.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a new version...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()

	if err != nil {
		log.Warnf("version check: %s", err)
		return
	}

	if newer, err := Compare(latest, constant.Version); err != nil || newer <= 0 {
		return
	}

	fmt.Printf("\n%s %s %s\n%s\n\n",
		style.Fg(color.Orange)(icon.Get(icon.Progress)),
		style.Bold("screenroom "+latest+" is out"),
		style.Faint(fmt.Sprintf("(you have %s)", constant.Version)),
		style.Faint(ReleaseURL(latest)),
	)
}
