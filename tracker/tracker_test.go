package tracker

import (
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestElapsed(t *testing.T) {
	Convey("Given a progress started at a known instant", t, func() {
		clock := NewManualClock(epoch)
		p := Progress{}.Restarted(clock.Now())

		Convey("Elapsed follows the wall clock", func() {
			So(Elapsed(clock.Now(), p), ShouldEqual, 0)
			clock.Advance(2500 * time.Millisecond)
			So(Elapsed(clock.Now(), p), ShouldEqual, 2.5)
		})

		Convey("Elapsed never decreases while the clock advances", func() {
			prev := Elapsed(clock.Now(), p)
			for i := 0; i < 100; i++ {
				clock.Advance(time.Duration(i) * 37 * time.Millisecond)
				next := Elapsed(clock.Now(), p)
				So(next, ShouldBeGreaterThanOrEqualTo, prev)
				prev = next
			}
		})

		Convey("Elapsed is never negative", func() {
			So(Elapsed(epoch.Add(-time.Hour), p), ShouldEqual, 0)
		})

		Convey("Remaining is duration minus elapsed", func() {
			for _, d := range []float64{0, 1, 30, 3600} {
				clock.Advance(1234 * time.Millisecond)
				now := clock.Now()
				So(Remaining(now, p, d), ShouldEqual, d-Elapsed(now, p))
			}
		})
	})
}

func TestRestartAndFreeze(t *testing.T) {
	Convey("Given a progress resumed from an offset", t, func() {
		clock := NewManualClock(epoch)
		p := At(42).Restarted(clock.Now())

		So(Elapsed(clock.Now(), p), ShouldEqual, 42)

		Convey("Freezing captures the elapsed time", func() {
			clock.Advance(3 * time.Second)
			frozen := p.Frozen(clock.Now())
			So(frozen.RunningSeconds, ShouldEqual, 45)

			Convey("And restarting later resumes from it", func() {
				clock.Advance(time.Minute)
				resumed := frozen.Restarted(clock.Now())
				So(Elapsed(clock.Now(), resumed), ShouldEqual, 45)
			})
		})

		Convey("Negative offsets clamp to zero", func() {
			So(At(-5).RunningSeconds, ShouldEqual, 0)
		})
	})
}

func TestManualScheduler(t *testing.T) {
	Convey("Given a manual scheduler", t, func() {
		s := &ManualScheduler{}
		var calls int

		task := s.Every(5*time.Second, func() { calls++ })
		So(s.Live(), ShouldEqual, 1)

		Convey("Fire runs live tasks", func() {
			s.Fire()
			s.Fire()
			So(calls, ShouldEqual, 2)
		})

		Convey("Cancelled tasks never run", func() {
			task.Cancel()
			task.Cancel()
			s.Fire()
			So(calls, ShouldEqual, 0)
			So(s.Live(), ShouldEqual, 0)
		})

		Convey("A task may cancel itself while firing", func() {
			var self Task
			self = s.Every(time.Second, func() { self.Cancel() })
			s.Fire()
			So(s.Live(), ShouldEqual, 1)
		})
	})
}

func TestTickerScheduler(t *testing.T) {
	Convey("Given a ticker scheduler", t, func() {
		var calls atomic.Int32
		task := TickerScheduler{}.Every(5*time.Millisecond, func() { calls.Add(1) })

		time.Sleep(40 * time.Millisecond)
		task.Cancel()
		seen := calls.Load()
		So(seen, ShouldBeGreaterThan, 0)

		Convey("No ticks arrive after cancel", func() {
			time.Sleep(30 * time.Millisecond)
			So(calls.Load(), ShouldBeLessThanOrEqualTo, seen+1)
		})
	})
}
