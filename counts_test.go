package qsearch

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCounts(t *testing.T) {
	Convey("Given some counts", t, func() {
		counts := Counts{1: 30, 6: 50, 4: 20}

		Convey("It should report totals and frequencies", func() {
			So(counts.Total(), ShouldEqual, 100)
			So(counts.Frequency(6), ShouldAlmostEqual, 0.5, 1e-12)
			So(counts.Frequency(7), ShouldEqual, 0.0)
			So(Counts{}.Frequency(0), ShouldEqual, 0.0)
		})

		Convey("It should list indices in order", func() {
			So(counts.Indices(), ShouldResemble, []int{1, 4, 6})
		})

		Convey("It should find the most frequent outcome", func() {
			index, count := counts.MostFrequent()
			So(index, ShouldEqual, 6)
			So(count, ShouldEqual, 50)

			index, _ = Counts{3: 5, 2: 5}.MostFrequent()
			So(index, ShouldEqual, 2)
		})

		Convey("It should render MSB-first bit patterns", func() {
			So(counts.Bitstrings(3), ShouldResemble, map[string]int{
				"001": 30,
				"110": 50,
				"100": 20,
			})
		})

		Convey("It should merge other counts", func() {
			counts.Merge(Counts{1: 5, 7: 5})
			So(counts.Total(), ShouldEqual, 110)
			So(counts[7], ShouldEqual, 5)
			So(counts[1], ShouldEqual, 35)
		})
	})
}
