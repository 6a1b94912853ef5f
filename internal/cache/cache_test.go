package cache

import (
	"testing"
	"time"

	"github.com/screenroom/screenroom/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type page struct {
	Term string   `json:"term"`
	IDs  []string `json:"ids"`
}

func TestKey(t *testing.T) {
	Convey("Keys ignore case and repeated spaces", t, func() {
		So(Key("Lo-Fi  Radio", "lua"), ShouldEqual, Key("lo-fi radio", "lua"))
	})

	Convey("Keys differ per source", t, func() {
		So(Key("lofi", "a"), ShouldNotEqual, Key("lofi", "b"))
	})
}

func TestReadWrite(t *testing.T) {
	Convey("Given a written entry", t, func() {
		So(Clear(), ShouldBeNil)

		key := Key("lofi", "test")
		So(Write(key, page{Term: "lofi", IDs: []string{"a", "b"}}), ShouldBeNil)

		Convey("It reads back", func() {
			var got page
			So(Read(key, &got), ShouldBeTrue)
			So(got.IDs, ShouldResemble, []string{"a", "b"})
		})

		Convey("An expired entry is a miss and is pruned", func() {
			old := time.Now().Add(-2 * TTL)
			So(filesystem.API().Chtimes(path(key), old, old), ShouldBeNil)

			var got page
			So(Read(key, &got), ShouldBeFalse)
			So(Prune(), ShouldEqual, 1)
		})

		Convey("A missing entry is a miss", func() {
			var got page
			So(Read(Key("other", "test"), &got), ShouldBeFalse)
		})
	})
}
