package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Given the filesystem backend", t, func() {
		Reset(SetMemMapFs)

		Convey("It starts on the OS filesystem", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Every in-memory filesystem starts empty", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
			So(API().WriteFile("/queries.json", []byte("{}"), 0o644), ShouldBeNil)

			SetMemMapFs()
			exists, err := API().Exists("/queries.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})

		Convey("The gache adapter writes through the backend", func() {
			SetMemMapFs()
			fs := GacheFs{}
			So(fs.MkdirAll("/cache", 0o755), ShouldBeNil)

			f, err := fs.OpenFile("/cache/entry", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte("x"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/entry")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "x")
		})
	})
}
