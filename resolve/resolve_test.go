package resolve

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/homestream-cli/homestream/internal/cache"
	"github.com/homestream-cli/homestream/provider"
	"github.com/homestream-cli/homestream/search"
	"github.com/homestream-cli/homestream/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type countingGetter struct {
	mu    sync.Mutex
	calls int
	body  string
	err   error
}

func (c *countingGetter) Get(_ context.Context, _ string, _ url.Values) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []byte(c.body), nil
}

func (c *countingGetter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

const seasonTwo = `{"list":[{"vod_name":"庆余年第二季","vod_play_url":"第1集$https://a/1.m3u8#第2集$https://a/2.m3u8#第3集$https://a/3.m3u8#","vod_play_from":"lz","vod_remarks":"完结"}]}`

func newResolver(getter *countingGetter) *Resolver {
	r := New(
		&search.Searcher{Client: getter, Timeout: time.Second},
		cache.NewResults(cache.NewMemoryStore[[]*source.Stream](), time.Hour),
	)
	r.Providers = func() []*provider.Provider {
		return []*provider.Provider{
			{Label: "One", Endpoint: "https://one.example/"},
			{Label: "Two", Endpoint: "https://two.example/"},
		}
	}
	return r
}

func TestResolveGate(t *testing.T) {
	Convey("Given a resolver", t, func() {
		getter := &countingGetter{body: seasonTwo}
		r := newResolver(getter)

		Convey("A request without multi-source enabled should make no calls", func() {
			for _, flag := range []string{"", "disabled", "Enabled"} {
				streams := r.Resolve(context.Background(), Params{SeriesName: "庆余年第二季", MultiSource: flag})
				So(streams, ShouldBeEmpty)
			}
			So(getter.count(), ShouldEqual, 0)
		})

		Convey("A request without a series name should make no calls", func() {
			streams := r.Resolve(context.Background(), Params{MultiSource: MultiSourceEnabled})
			So(streams, ShouldNotBeNil)
			So(streams, ShouldBeEmpty)
			So(getter.count(), ShouldEqual, 0)
		})
	})
}

func TestResolveCache(t *testing.T) {
	Convey("Given providers that answer", t, func() {
		getter := &countingGetter{body: seasonTwo}
		r := newResolver(getter)
		params := Params{SeriesName: "庆余年第二季", MultiSource: MultiSourceEnabled}

		first := r.Resolve(context.Background(), params)

		Convey("Both providers should be queried and duplicates merged", func() {
			So(getter.count(), ShouldEqual, 2)
			So(first, ShouldHaveLength, 3)
			So(first[0].Provider, ShouldEqual, "One")
		})

		Convey("A repeated request should be served from the cache", func() {
			second := r.Resolve(context.Background(), params)
			So(getter.count(), ShouldEqual, 2)
			So(second, ShouldResemble, first)
		})

		Convey("An episode request should reuse the same entry", func() {
			streams := r.Resolve(context.Background(), Params{SeriesName: "庆余年 第二季", Episode: mo.Some(2), MultiSource: MultiSourceEnabled})
			So(getter.count(), ShouldEqual, 2)
			So(streams, ShouldHaveLength, 1)
			So(streams[0].URL, ShouldEqual, "https://a/2.m3u8")
		})
	})

	Convey("Given providers that all fail", t, func() {
		getter := &countingGetter{err: errors.New("unreachable")}
		r := newResolver(getter)
		params := Params{SeriesName: "庆余年第二季", MultiSource: MultiSourceEnabled}

		Convey("Empty results should not be cached", func() {
			So(r.Resolve(context.Background(), params), ShouldBeEmpty)
			So(r.Resolve(context.Background(), params), ShouldBeEmpty)
			So(getter.count(), ShouldEqual, 4)
		})
	})
}

func TestResolveSeasonOverride(t *testing.T) {
	Convey("Given a title without a season marker and a season override", t, func() {
		getter := &countingGetter{body: seasonTwo}
		r := newResolver(getter)
		params := Params{SeriesName: "庆余年", Season: mo.Some(2), MultiSource: MultiSourceEnabled}

		Convey("The target should use the override", func() {
			So(params.Target().BaseName, ShouldEqual, "庆余年")
			So(params.Target().Season, ShouldEqual, 2)
		})

		Convey("Season two items should match", func() {
			So(r.Resolve(context.Background(), params), ShouldHaveLength, 3)
		})

		Convey("Without the override nothing should match", func() {
			So(r.Resolve(context.Background(), Params{SeriesName: "庆余年", MultiSource: MultiSourceEnabled}), ShouldBeEmpty)
		})
	})
}

func TestResolveMovie(t *testing.T) {
	Convey("Given a movie request with an episode", t, func() {
		getter := &countingGetter{body: `{"list":[{"vod_name":"流浪地球2","vod_play_url":"HD$https://m/2.m3u8","vod_play_from":"hn"}]}`}
		r := newResolver(getter)

		streams := r.Resolve(context.Background(), Params{
			SeriesName:  "流浪地球2",
			Type:        source.Movie,
			Episode:     mo.Some(5),
			MultiSource: MultiSourceEnabled,
		})

		Convey("The episode should be ignored", func() {
			So(streams, ShouldHaveLength, 1)
			So(streams[0].Description, ShouldEqual, "流浪地球2 - 正片 - [hn]")
		})
	})
}

func TestFilterEpisode(t *testing.T) {
	Convey("Given streams with and without episode numbers", t, func() {
		streams := []*source.Stream{
			{URL: "1", Description: "x - 第1集 - [a]", Episode: lo.ToPtr(1)},
			{URL: "2", Description: "x - 第2集 - [a]", Episode: lo.ToPtr(2)},
			{URL: "3", Description: "x - 第3集 - [a]", Episode: lo.ToPtr(3)},
			{URL: "4", Description: "x - 更新至第2集 - [b]"},
			{URL: "5", Description: "x - 第20集 - [a]", Episode: lo.ToPtr(20)},
			{URL: "6", Description: "x - EP2 - [c]"},
		}

		Convey("Only episode 2 should be kept", func() {
			filtered := FilterEpisode(streams, 2)
			urls := lo.Map(filtered, func(s *source.Stream, _ int) string { return s.URL })
			So(urls, ShouldResemble, []string{"2", "4"})
		})

		Convey("A missing episode should yield nothing", func() {
			So(FilterEpisode(streams, 9), ShouldBeEmpty)
		})
	})
}

func TestDescribe(t *testing.T) {
	Convey("Describe", t, func() {
		d := Describe()
		So(d.Modules, ShouldHaveLength, 1)
		So(d.Modules[0].FunctionName, ShouldEqual, "loadResource")
		So(d.GlobalParams[0].Options[0].Value, ShouldEqual, MultiSourceEnabled)
	})
}
