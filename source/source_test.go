package source

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseMediaType(t *testing.T) {
	Convey("ParseMediaType", t, func() {
		Convey("Should default to tv", func() {
			m, ok := ParseMediaType("")
			So(ok, ShouldBeTrue)
			So(m, ShouldEqual, TV)
		})

		Convey("Should accept movie in any case", func() {
			m, ok := ParseMediaType(" Movie ")
			So(ok, ShouldBeTrue)
			So(m, ShouldEqual, Movie)
		})

		Convey("Should reject unknown types", func() {
			_, ok := ParseMediaType("anime")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestStream(t *testing.T) {
	Convey("Given a stream without an episode number", t, func() {
		s := &Stream{Provider: "量子资源", Description: "怪奇物语 - 正片 - [lzm3u8]", URL: "https://a/index.m3u8"}

		Convey("EpisodeNumber is absent", func() {
			So(s.EpisodeNumber().IsPresent(), ShouldBeFalse)
		})

		Convey("The episode field is omitted from JSON", func() {
			b, err := json.Marshal(s)
			So(err, ShouldBeNil)
			So(string(b), ShouldNotContainSubstring, "episode")
			So(string(b), ShouldContainSubstring, `"name":"量子资源"`)
		})
	})

	Convey("Given a stream with an episode number", t, func() {
		s := &Stream{URL: "https://a/2.m3u8", Episode: lo.ToPtr(2)}

		Convey("It survives a JSON round trip", func() {
			b, err := json.Marshal(s)
			So(err, ShouldBeNil)

			var decoded Stream
			So(json.Unmarshal(b, &decoded), ShouldBeNil)
			So(decoded.EpisodeNumber().MustGet(), ShouldEqual, 2)
		})
	})
}
