package cache

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/homestream-cli/homestream/filesystem"
	"github.com/homestream-cli/homestream/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func TestFileStore(t *testing.T) {
	Convey("Given a file store", t, func() {
		c := &clock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
		store := NewFileStore[[]string](filepath.Join(t.TempDir(), "store.json"))
		store.now = c.now

		Convey("A missing key should be a miss", func() {
			_, ok, err := store.Get("missing")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When a value is set", func() {
			So(store.Set("a", []string{"x", "y"}, time.Hour), ShouldBeNil)

			Convey("It should be readable before it expires", func() {
				c.t = c.t.Add(59 * time.Minute)
				value, ok, err := store.Get("a")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(value, ShouldResemble, []string{"x", "y"})
			})

			Convey("It should be a miss once expired", func() {
				c.t = c.t.Add(time.Hour)
				_, ok, err := store.Get("a")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})

			Convey("Other keys should keep their own expiry", func() {
				So(store.Set("b", []string{"z"}, 3*time.Hour), ShouldBeNil)
				c.t = c.t.Add(2 * time.Hour)

				_, ok, _ := store.Get("a")
				So(ok, ShouldBeFalse)
				_, ok, _ = store.Get("b")
				So(ok, ShouldBeTrue)

				Convey("Prune should drop only the expired entry", func() {
					removed, err := store.Prune()
					So(err, ShouldBeNil)
					So(removed, ShouldEqual, 1)

					removed, err = store.Prune()
					So(err, ShouldBeNil)
					So(removed, ShouldEqual, 0)
				})
			})

			Convey("Delete should remove it", func() {
				So(store.Delete("a"), ShouldBeNil)
				_, ok, _ := store.Get("a")
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store", t, func() {
		c := &clock{t: time.Now()}
		store := NewMemoryStore[int]()
		store.now = c.now

		So(store.Set("k", 7, time.Minute), ShouldBeNil)

		Convey("The value should be returned until it expires", func() {
			value, ok, _ := store.Get("k")
			So(ok, ShouldBeTrue)
			So(value, ShouldEqual, 7)

			c.t = c.t.Add(time.Minute)
			_, ok, _ = store.Get("k")
			So(ok, ShouldBeFalse)
		})
	})
}

type brokenStore struct {
	sets int
}

func (b *brokenStore) Get(string) ([]*source.Stream, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func (b *brokenStore) Set(string, []*source.Stream, time.Duration) error {
	b.sets++
	return errors.New("disk on fire")
}

func TestResults(t *testing.T) {
	key := Key{BaseName: "庆余年", Season: 2, Type: source.TV}
	streams := []*source.Stream{{Provider: "P", Description: "庆余年 - 第1集 - [x]", URL: "https://a/1.m3u8", Episode: lo.ToPtr(1)}}

	Convey("Key should render the composite identity", t, func() {
		So(key.String(), ShouldEqual, "vod_exact_cache_庆余年_s2_tv")
		So(Key{BaseName: "流浪地球", Season: 1, Type: source.Movie}.String(), ShouldEqual, "vod_exact_cache_流浪地球_s1_movie")
	})

	Convey("Given results over a memory store", t, func() {
		results := NewResults(NewMemoryStore[[]*source.Stream](), 0)

		Convey("The default ttl should apply", func() {
			So(results.ttl, ShouldEqual, DefaultTTL)
		})

		Convey("An empty list should not be stored", func() {
			results.Set(key, nil)
			So(results.Get(key).IsPresent(), ShouldBeFalse)
		})

		Convey("A stored list should be returned", func() {
			results.Set(key, streams)
			cached, ok := results.Get(key).Get()
			So(ok, ShouldBeTrue)
			So(cached, ShouldResemble, streams)
		})
	})

	Convey("Given results over a file store", t, func() {
		results := NewResults(NewFileStore[[]*source.Stream](filepath.Join(t.TempDir(), "streams.json")), time.Hour)
		results.Set(key, streams)

		Convey("Episode numbers should survive persistence", func() {
			cached := results.Get(key).MustGet()
			So(cached, ShouldHaveLength, 1)
			So(*cached[0].Episode, ShouldEqual, 1)
			So(cached[0].URL, ShouldEqual, "https://a/1.m3u8")
		})
	})

	Convey("Given results over a failing store", t, func() {
		store := &brokenStore{}
		results := NewResults(store, time.Hour)

		Convey("Reads should be misses and writes should not panic", func() {
			So(results.Get(key).IsPresent(), ShouldBeFalse)
			results.Set(key, streams)
			So(store.sets, ShouldEqual, 1)
		})
	})
}

func TestSharedStreamStore(t *testing.T) {
	Convey("Streams should always hand out the same store", t, func() {
		So(Streams(), ShouldPointTo, Streams())
	})

	Convey("Given writers racing a prune on one store", t, func() {
		store := NewFileStore[[]string](filepath.Join(t.TempDir(), "streams.json"))
		So(store.Set("stale", []string{"x"}, -time.Minute), ShouldBeNil)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				_ = store.Set(fmt.Sprintf("key-%d", i), []string{"v"}, time.Hour)
			}(i)
			go func() {
				defer wg.Done()
				_, _ = store.Prune()
			}()
		}
		wg.Wait()

		Convey("No fresh entry should be lost", func() {
			for i := 0; i < 8; i++ {
				_, ok, err := store.Get(fmt.Sprintf("key-%d", i))
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			}
			_, ok, _ := store.Get("stale")
			So(ok, ShouldBeFalse)
		})
	})
}
