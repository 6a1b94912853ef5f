package display

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatTitle(t *testing.T) {
	Convey("FormatTitle", t, func() {
		Convey("Short titles pass through", func() {
			So(FormatTitle("Hello world"), ShouldEqual, "Hello world")
		})

		Convey("Non-printable characters are dropped", func() {
			So(FormatTitle("Café\tdel Mar ☃"), ShouldEqual, "Cafdel Mar")
		})

		Convey("Long titles are truncated and wrapped", func() {
			long := strings.Repeat("word ", 20)
			out := FormatTitle(long)

			So(strings.HasSuffix(out, "..."), ShouldBeTrue)
			So(len(strings.ReplaceAll(out, "\n", " ")), ShouldBeLessThanOrEqualTo, TitleMaxLength+3)
			for _, line := range strings.Split(out, "\n") {
				So(len(line), ShouldBeLessThanOrEqualTo, TitleWrapWidth)
			}
		})
	})
}

func TestLabels(t *testing.T) {
	Convey("Labels", t, func() {
		So(VolumeLabel(0.5), ShouldEqual, "Vol: 50%")
		So(VolumeLabel(0.07), ShouldEqual, "Vol: 7%")
		So(RolloffLabel(5), ShouldEqual, "Rolloff: 5.0m")
		So(RolloffLabel(0.2), ShouldEqual, "Rolloff: 0.2m")
	})

	Convey("FormatRemaining", t, func() {
		So(FormatRemaining(3661), ShouldEqual, "01:01:01")
		So(FormatRemaining(-0.5), ShouldEqual, "00:00:00")
		So(FormatRemaining(-1), ShouldEqual, "00:00:00")
	})
}

type countingHooks struct {
	titles []string
	shown  []bool
}

func (c *countingHooks) UpdateTitle(title string)     { c.titles = append(c.titles, title) }
func (c *countingHooks) UpdateRemainingTime(float64)  {}
func (c *countingHooks) UpdateVolumeLabel(string)     {}
func (c *countingHooks) UpdateRolloffLabel(string)    {}
func (c *countingHooks) UpdateControlsVisible(v bool) { c.shown = append(c.shown, v) }

func TestMulti(t *testing.T) {
	Convey("Multi fans out to every hook", t, func() {
		a, b := &countingHooks{}, &countingHooks{}
		m := Multi{a, Nop{}, b}

		m.UpdateTitle("x")
		m.UpdateControlsVisible(false)

		So(a.titles, ShouldResemble, []string{"x"})
		So(b.titles, ShouldResemble, []string{"x"})
		So(b.shown, ShouldResemble, []bool{false})
	})
}

func TestConsole(t *testing.T) {
	Convey("Console writes one entry per update", t, func() {
		var buf bytes.Buffer
		c := NewConsole(&buf)

		c.UpdateVolumeLabel("Vol: 60%")
		c.UpdateRemainingTime(61)

		out := buf.String()
		So(out, ShouldContainSubstring, "Vol: 60%")
		So(out, ShouldContainSubstring, "00:01:01")
	})
}
