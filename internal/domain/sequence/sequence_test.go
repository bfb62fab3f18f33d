package sequence_test

import (
	"errors"
	"testing"

	"github.com/hooplens/rotation/internal/domain/gameclock"
	"github.com/hooplens/rotation/internal/domain/model"
	"github.com/hooplens/rotation/internal/domain/sequence"
	. "github.com/smartystreets/goconvey/convey"
)

func ev(num int64, period int, clock string) model.Event {
	return model.Event{GameID: 1, EventNum: num, Period: period, Clock: clock}
}

func nums(events []model.Event) []int64 {
	out := make([]int64, len(events))
	for i := range events {
		out[i] = events[i].EventNum
	}
	return out
}

func TestOrder(t *testing.T) {
	Convey("Given events scattered across periods", t, func() {
		Convey("When remaining time alone decides", func() {
			events := []model.Event{
				ev(3, 1, "2:00"), // 1920
				ev(1, 1, "8:00"), // 2280
				ev(2, 1, "5:00"), // 2100
			}
			ordered, err := sequence.Order(events)

			Convey("Then events sort by remaining descending", func() {
				So(err, ShouldBeNil)
				So(nums(ordered), ShouldResemble, []int64{1, 2, 3})
			})

			Convey("And the input slice is untouched", func() {
				So(events[0].EventNum, ShouldEqual, 3)
				So(events[0].GameTimeRemaining, ShouldEqual, 0)
			})
		})

		Convey("When a period boundary produces equal remaining values", func() {
			// End of period 1 and start of period 2 both normalize to 1800.
			events := []model.Event{
				ev(8, 2, "10:00"),
				ev(7, 1, "0:00"),
			}
			ordered, err := sequence.Order(events)

			Convey("Then the earlier period wins the tie", func() {
				So(err, ShouldBeNil)
				So(nums(ordered), ShouldResemble, []int64{7, 8})
				So(ordered[0].GameTimeRemaining, ShouldEqual, 1800)
				So(ordered[1].GameTimeRemaining, ShouldEqual, 1800)
			})
		})

		Convey("When an overtime value exceeds a late regulation value", func() {
			// Overtime is measured on its own clock, so period 5 at 4:00
			// (240s) is numerically above period 4 at 1:00 (60s). The
			// primary remaining-descending key places the overtime event
			// first; this matches the source ordering exactly and must not
			// be "fixed", since the interval and assignment passes are
			// built around it.
			events := []model.Event{
				ev(20, 5, "4:00"), // 240
				ev(10, 4, "1:00"), // 60
			}
			ordered, err := sequence.Order(events)

			Convey("Then the numerically larger overtime value sorts first", func() {
				So(err, ShouldBeNil)
				So(nums(ordered), ShouldResemble, []int64{20, 10})
			})
		})

		Convey("When remaining and period both tie", func() {
			events := []model.Event{
				ev(5, 3, "7:30"),
				ev(4, 3, "7:30"),
			}
			ordered, err := sequence.Order(events)

			Convey("Then the original event number decides", func() {
				So(err, ShouldBeNil)
				So(nums(ordered), ShouldResemble, []int64{4, 5})
			})
		})

		Convey("When a clock fails to parse", func() {
			events := []model.Event{
				ev(1, 1, "8:00"),
				ev(2, 1, "not-a-clock"),
			}
			_, err := sequence.Order(events)

			Convey("Then ordering aborts with the malformed clock error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, gameclock.ErrMalformedClock), ShouldBeTrue)
			})
		})
	})
}
