package cache

import (
	"fmt"
	"time"

	"github.com/homestream-cli/homestream/log"
	"github.com/homestream-cli/homestream/source"
	"github.com/homestream-cli/homestream/where"
	"github.com/samber/mo"
)

// DefaultTTL is how long a merged stream list stays valid.
const DefaultTTL = 3 * time.Hour

// Key identifies a merged stream list by canonical title and media type.
type Key struct {
	BaseName string
	Season   int
	Type     source.MediaType
}

func (k Key) String() string {
	return fmt.Sprintf("vod_exact_cache_%s_s%d_%s", k.BaseName, k.Season, k.Type)
}

// Results caches merged stream lists. Store failures are logged and otherwise ignored.
type Results struct {
	store Store[[]*source.Stream]
	ttl   time.Duration
}

// NewResults wraps store. A non-positive ttl means DefaultTTL.
func NewResults(store Store[[]*source.Stream], ttl time.Duration) *Results {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Results{store: store, ttl: ttl}
}

var streams = NewFileStore[[]*source.Stream](where.Streams())

// Streams returns the file store backing the stream cache.
// Every caller shares it, so pruning and resolving are serialized by the same lock.
func Streams() *FileStore[[]*source.Stream] {
	return streams
}

// Get returns the cached streams for k. Errors and empty entries count as a miss.
func (r *Results) Get(k Key) mo.Option[[]*source.Stream] {
	streams, ok, err := r.store.Get(k.String())
	if err != nil {
		log.With(log.Fields{"key": k.String()}).Warnf("cache read failed: %v", err)
		return mo.None[[]*source.Stream]()
	}

	if !ok || len(streams) == 0 {
		return mo.None[[]*source.Stream]()
	}

	log.With(log.Fields{"key": k.String(), "streams": len(streams)}).Debugf("cache hit")
	return mo.Some(streams)
}

// Set stores a non-empty stream list under k. Empty lists are never stored.
func (r *Results) Set(k Key, streams []*source.Stream) {
	if len(streams) == 0 {
		return
	}

	if err := r.store.Set(k.String(), streams, r.ttl); err != nil {
		log.With(log.Fields{"key": k.String()}).Warnf("cache write failed: %v", err)
	}
}
