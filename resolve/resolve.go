// Package resolve is the entry point of the stream resolution pipeline.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/homestream-cli/homestream/internal/cache"
	"github.com/homestream-cli/homestream/log"
	"github.com/homestream-cli/homestream/provider"
	"github.com/homestream-cli/homestream/search"
	"github.com/homestream-cli/homestream/source"
	"github.com/homestream-cli/homestream/title"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// MultiSourceEnabled is the only value of Params.MultiSource that lets a request through.
const MultiSourceEnabled = "enabled"

// Params describe a single resolution request.
type Params struct {
	SeriesName string
	// Type defaults to tv.
	Type source.MediaType
	// Season overrides the season parsed from SeriesName.
	Season mo.Option[int]
	// Episode narrows tv results to one episode.
	Episode     mo.Option[int]
	MultiSource string
}

// Resolver wires the directory, the fan-out and the cache together.
type Resolver struct {
	// Providers is consulted on every cache miss.
	Providers func() []*provider.Provider
	Searcher  *search.Searcher
	Cache     *cache.Results
}

// New creates a resolver over the directory in effect.
func New(searcher *search.Searcher, results *cache.Results) *Resolver {
	return &Resolver{
		Providers: provider.Load,
		Searcher:  searcher,
		Cache:     results,
	}
}

// Target returns the canonical title a request resolves to.
func (p Params) Target() title.Canonical {
	target := title.Parse(p.SeriesName)
	if season, ok := p.Season.Get(); ok && season > 0 {
		target.Season = season
	}
	return target
}

// MediaType returns the requested media type, tv when unset.
func (p Params) MediaType() source.MediaType {
	if p.Type == "" {
		return source.TV
	}
	return p.Type
}

// Resolve returns the streams for params. It never fails: every problem degrades to fewer streams.
// A request is ignored unless MultiSource is enabled and SeriesName is set.
func (r *Resolver) Resolve(ctx context.Context, params Params) []*source.Stream {
	if params.MultiSource != MultiSourceEnabled || params.SeriesName == "" {
		return []*source.Stream{}
	}

	target := params.Target()
	mediaType := params.MediaType()
	key := cache.Key{BaseName: target.BaseName, Season: target.Season, Type: mediaType}

	streams, ok := r.Cache.Get(key).Get()
	if !ok {
		providers := r.Providers()
		log.With(log.Fields{
			"key":       key.String(),
			"providers": len(providers),
		}).Infof("resolving %s", target)

		streams = r.Searcher.Run(ctx, providers, target, mediaType)
		r.Cache.Set(key, streams)
	}

	if episode, ok := params.Episode.Get(); ok && episode > 0 && mediaType == source.TV {
		return FilterEpisode(streams, episode)
	}

	return streams
}

// FilterEpisode keeps the streams of one episode.
// Streams without a parsed episode number match when their description mentions "第N集".
func FilterEpisode(streams []*source.Stream, episode int) []*source.Stream {
	marker := fmt.Sprintf("第%d集", episode)

	return lo.Filter(streams, func(stream *source.Stream, _ int) bool {
		if n, ok := stream.EpisodeNumber().Get(); ok {
			return n == episode
		}
		return strings.Contains(stream.Description, marker)
	})
}
