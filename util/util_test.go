package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse runs", func() {
			So(SanitizeFilename("a  b??c"), ShouldEqual, "a_b_c")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
	})
}

func TestFileHelpers(t *testing.T) {
	Convey("FileStem drops the directory and the extension", t, func() {
		So(FileStem("/sources/my.source.lua"), ShouldEqual, "my.source")
		So(FileStem("plain"), ShouldEqual, "plain")
	})

	Convey("Capitalize handles multibyte runes", t, func() {
		So(Capitalize("élan"), ShouldEqual, "Élan")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestSecondsToString(t *testing.T) {
	Convey("SecondsToString", t, func() {
		So(SecondsToString(3661), ShouldEqual, "01:01:01")
		So(SecondsToString(0), ShouldEqual, "00:00:00")
		So(SecondsToString(86399), ShouldEqual, "23:59:59")

		Convey("Wraps past a day and floors negatives", func() {
			So(SecondsToString(86400+61), ShouldEqual, "00:01:01")
			So(SecondsToString(-5), ShouldEqual, "00:00:00")
		})
	})
}

func TestHMSToSeconds(t *testing.T) {
	Convey("HMSToSeconds", t, func() {
		n, err := HMSToSeconds("01:01:01")
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 3661)

		Convey("Accepts short forms", func() {
			n, err = HMSToSeconds("4:05")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 245)

			n, err = HMSToSeconds("42")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 42)
		})

		Convey("Rejects garbage", func() {
			for _, in := range []string{"", "aa:bb", "1:2:3:4", "-1:00"} {
				_, err = HMSToSeconds(in)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("Round-trips every second of a day", func() {
			ok := true
			for s := 0; s < secondsPerDay; s++ {
				back, err := HMSToSeconds(SecondsToString(s))
				if err != nil || back != s {
					ok = false
					break
				}
			}
			So(ok, ShouldBeTrue)
		})
	})
}

func TestMaxMinClamp(t *testing.T) {
	Convey("Max/Min/Clamp", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Clamp(1.2, 0.0, 1.0), ShouldEqual, 1.0)
		So(Clamp(-3, 0, 10), ShouldEqual, 0)
		So(Clamp(0.4, 0.2, 250.0), ShouldEqual, 0.4)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestRoundTo(t *testing.T) {
	Convey("RoundTo", t, func() {
		So(RoundTo(0.07000000001, 2), ShouldEqual, 0.07)
		So(RoundTo(5.19999, 1), ShouldEqual, 5.2)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek().MustGet(), ShouldEqual, 2)
		So(s.Pop().MustGet(), ShouldEqual, 2)
		So(s.Pop().MustGet(), ShouldEqual, 1)
		So(s.Pop().IsAbsent(), ShouldBeTrue)

		Convey("A limit drops the oldest entries", func() {
			limited := Stack[string]{Limit: 2}
			limited.Push("a")
			limited.Push("b")
			limited.Push("c")
			So(limited.Len(), ShouldEqual, 2)
			So(limited.Pop().MustGet(), ShouldEqual, "c")
			So(limited.Pop().MustGet(), ShouldEqual, "b")
			So(limited.Pop().IsAbsent(), ShouldBeTrue)
		})
	})
}
