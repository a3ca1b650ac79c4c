package history_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ssaa/navigator/internal/domain/history"
)

func TestDelta(t *testing.T) {
	Convey("Given a differ with the default 2-point noise floor", t, func() {
		differ := history.New()

		Convey("When the position has not moved", func() {
			_, ok := differ.Delta(
				history.Position{Sync: 50, Velocity: 50},
				history.Position{Sync: 50, Velocity: 50},
			)

			Convey("Then no trail should be reported", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When both axes moved within the floor", func() {
			_, ok := differ.Delta(
				history.Position{Sync: 51.5, Velocity: 48.5},
				history.Position{Sync: 50, Velocity: 50},
			)

			Convey("Then the movement is jitter and no trail is reported", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When one axis moved beyond the floor", func() {
			trail, ok := differ.Delta(
				history.Position{Sync: 55, Velocity: 50},
				history.Position{Sync: 50, Velocity: 50},
			)

			Convey("Then a trail should be reported with both endpoints unchanged", func() {
				So(ok, ShouldBeTrue)
				So(trail.From, ShouldResemble, history.Position{Sync: 50, Velocity: 50})
				So(trail.To, ShouldResemble, history.Position{Sync: 55, Velocity: 50})
			})
		})

		Convey("When a single axis moved by just over the floor", func() {
			_, ok := differ.Delta(
				history.Position{Sync: 50, Velocity: 52.1},
				history.Position{Sync: 50, Velocity: 50},
			)

			Convey("Then any single-axis move above the floor triggers a trail", func() {
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When a single axis moved by exactly the floor", func() {
			_, ok := differ.Delta(
				history.Position{Sync: 52, Velocity: 50},
				history.Position{Sync: 50, Velocity: 50},
			)

			Convey("Then the boundary counts as jitter", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When movement is downward", func() {
			trail, ok := differ.Delta(
				history.Position{Sync: 40, Velocity: 50},
				history.Position{Sync: 50, Velocity: 50},
			)

			Convey("Then direction does not matter, only magnitude", func() {
				So(ok, ShouldBeTrue)
				So(trail.To.Sync, ShouldEqual, 40)
			})
		})
	})

	Convey("Given a differ with a custom noise floor", t, func() {
		differ := history.New(history.WithNoiseFloor(10))

		Convey("When movement stays within the wider floor", func() {
			_, ok := differ.Delta(
				history.Position{Sync: 58, Velocity: 50},
				history.Position{Sync: 50, Velocity: 50},
			)

			Convey("Then no trail should be reported", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
