package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/homestream-cli/homestream/filesystem"
	"github.com/homestream-cli/homestream/internal/cache"
	"github.com/homestream-cli/homestream/provider"
	"github.com/homestream-cli/homestream/resolve"
	"github.com/homestream-cli/homestream/search"
	"github.com/homestream-cli/homestream/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type staticGetter string

func (s staticGetter) Get(context.Context, string, url.Values) ([]byte, error) {
	return []byte(s), nil
}

func newResolver(body string) *resolve.Resolver {
	r := resolve.New(
		&search.Searcher{Client: staticGetter(body), Timeout: time.Second},
		cache.NewResults(cache.NewMemoryStore[[]*source.Stream](), time.Hour),
	)
	r.Providers = func() []*provider.Provider {
		return []*provider.Provider{{Label: "One", Endpoint: "https://one.example/"}}
	}
	return r
}

const body = `{"list":[{"vod_name":"怪奇物语4","vod_play_url":"第1集$https://a/1.m3u8#第2集$https://a/2.m3u8","vod_play_from":"lz"}]}`

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty stream list", func() {
			var buf bytes.Buffer
			opts := &Options{Params: resolve.Params{SeriesName: "怪奇物语4"}, Json: true}
			So(writeJson(&buf, nil, opts), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "怪奇物语4")
			So(output.BaseName, ShouldEqual, "怪奇物语")
			So(output.Season, ShouldEqual, 4)
			So(output.Type, ShouldEqual, source.TV)
			So(output.Result, ShouldNotBeNil)
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a resolver with one provider", t, func() {
		var buf bytes.Buffer
		options := &Options{
			Out:    &buf,
			Params: resolve.Params{SeriesName: "怪奇物语4", MultiSource: resolve.MultiSourceEnabled},
		}

		Convey("Plain output should list one URL per line", func() {
			So(Run(context.Background(), newResolver(body), options), ShouldBeNil)
			So(strings.Split(strings.TrimSpace(buf.String()), "\n"), ShouldResemble, []string{"https://a/1.m3u8", "https://a/2.m3u8"})
		})

		Convey("Described output should prefix the description", func() {
			options.Describe = true
			So(Run(context.Background(), newResolver(body), options), ShouldBeNil)
			So(buf.String(), ShouldStartWith, "怪奇物语4 - 第1集 - [lz]\thttps://a/1.m3u8\n")
		})

		Convey("A picker should narrow the output", func() {
			options.Picker = mo.Some(mustPicker(ParsePicker("last")))
			options.Json = true
			So(Run(context.Background(), newResolver(body), options), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 1)
			So(output.Result[0].URL, ShouldEqual, "https://a/2.m3u8")
			So(*output.Result[0].Episode, ShouldEqual, 2)
		})

		Convey("A disabled request should write nothing", func() {
			options.Params.MultiSource = "disabled"
			So(Run(context.Background(), newResolver(body), options), ShouldBeNil)
			So(buf.Len(), ShouldEqual, 0)
		})
	})
}

func TestParsePicker(t *testing.T) {
	streams := []*source.Stream{
		{Provider: "A", URL: "1"},
		{Provider: "B", URL: "2"},
		{Provider: "C", URL: "3"},
	}

	Convey("ParsePicker", t, func() {
		Convey("Should pick by position", func() {
			So(pick("first", streams).URL, ShouldEqual, "1")
			So(pick("last", streams).URL, ShouldEqual, "3")
			So(pick("index:1", streams).URL, ShouldEqual, "2")
			So(pick("index:99", streams).URL, ShouldEqual, "3")
		})

		Convey("Should pick by provider", func() {
			So(pick("provider:B", streams).URL, ShouldEqual, "2")
			So(pick("provider:Z", streams), ShouldBeNil)
		})

		Convey("Should reject unknown descriptions", func() {
			for _, d := range []string{"random", "index:x", "provider:"} {
				_, err := ParsePicker(d)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func mustPicker(p Picker, err error) Picker {
	if err != nil {
		panic(err)
	}
	return p
}

func pick(description string, streams []*source.Stream) *source.Stream {
	stream, err := mustPicker(ParsePicker(description))(streams)
	if err != nil {
		panic(err)
	}
	return stream
}
