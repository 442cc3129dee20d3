package title

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should resolve a Chinese numeral season marker", func() {
			c := Parse("无尽之剑第三部")
			So(c.BaseName, ShouldEqual, "无尽之剑")
			So(c.Season, ShouldEqual, 3)
		})

		Convey("Should resolve 季 markers and trim the remainder", func() {
			c := Parse("庆余年 第二季")
			So(c.BaseName, ShouldEqual, "庆余年")
			So(c.Season, ShouldEqual, 2)
		})

		Convey("Should resolve ASCII digits inside a marker", func() {
			c := Parse("名侦探柯南第12季")
			So(c.BaseName, ShouldEqual, "名侦探柯南")
			So(c.Season, ShouldEqual, 12)
		})

		Convey("Should remove a marker in the middle of the title", func() {
			c := Parse("间谍过家家第一季 Part2")
			So(c.BaseName, ShouldEqual, "间谍过家家 Part2")
			So(c.Season, ShouldEqual, 1)
		})

		Convey("Should default to 1 for numerals outside the table", func() {
			c := Parse("海贼王第十二季")
			So(c.BaseName, ShouldEqual, "海贼王")
			So(c.Season, ShouldEqual, 1)
		})

		Convey("Should prefer the marker over trailing digits", func() {
			c := Parse("鬼灭之刃第二季2")
			So(c.BaseName, ShouldEqual, "鬼灭之刃2")
			So(c.Season, ShouldEqual, 2)
		})

		Convey("Should resolve trailing digits", func() {
			c := Parse("怪奇物语4")
			So(c.BaseName, ShouldEqual, "怪奇物语")
			So(c.Season, ShouldEqual, 4)
		})

		Convey("Should treat a trailing zero as season 1", func() {
			c := Parse("Title 0")
			So(c.BaseName, ShouldEqual, "Title")
			So(c.Season, ShouldEqual, 1)
		})

		Convey("Should fall back to the trimmed title", func() {
			c := Parse("  三体  ")
			So(c.BaseName, ShouldEqual, "三体")
			So(c.Season, ShouldEqual, 1)
		})

		Convey("Should handle an empty title", func() {
			c := Parse("")
			So(c.BaseName, ShouldEqual, "")
			So(c.Season, ShouldEqual, 1)
		})

		Convey("Should be deterministic", func() {
			for _, raw := range []string{"无尽之剑第三部", "怪奇物语4", "", "三体"} {
				So(Parse(raw), ShouldResemble, Parse(raw))
			}
		})
	})
}
