package log

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given the logger", t, func() {
		Reset(func() {
			viper.Set(key.LogsWrite, false)
			_ = Setup()
		})

		Convey("Nothing is written while logs are off", func() {
			filesystem.SetMemMapFs()
			viper.Set(key.LogsWrite, false)
			So(Setup(), ShouldBeNil)

			Info("dropped")
			files, _ := filesystem.API().ReadDir(where.Logs())
			So(files, ShouldBeEmpty)
		})

		Convey("Entries go to today's file when logs are on", func() {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsLevel, "info")
			viper.Set(key.LogsJson, false)
			So(Setup(), ShouldBeNil)

			WithFields(Fields{"item": "abc"}).Info("resolved")
			Debug("below the level")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)

			text := string(data)
			So(text, ShouldContainSubstring, "resolved")
			So(text, ShouldContainSubstring, "item=abc")
			So(strings.Contains(text, "below the level"), ShouldBeFalse)
		})
	})
}
