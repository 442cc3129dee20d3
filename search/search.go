// Package search queries every provider for a canonical title and merges what they return.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/homestream-cli/homestream/extract"
	"github.com/homestream-cli/homestream/log"
	"github.com/homestream-cli/homestream/network"
	"github.com/homestream-cli/homestream/provider"
	"github.com/homestream-cli/homestream/source"
	"github.com/homestream-cli/homestream/title"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// DefaultTimeout bounds a single provider query.
const DefaultTimeout = 10 * time.Second

// ErrNoList is returned when a provider response carries no item list.
var ErrNoList = errors.New("response has no item list")

// Searcher fans a query out to providers.
type Searcher struct {
	Client network.Getter
	// Timeout bounds each provider query independently. Zero means DefaultTimeout.
	Timeout time.Duration
}

func (s *Searcher) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

// Run queries all providers concurrently and waits for every one of them.
// Failed providers contribute nothing. The result keeps provider order
// and holds the first stream seen for each URL.
func (s *Searcher) Run(ctx context.Context, providers []*provider.Provider, target title.Canonical, mediaType source.MediaType) []*source.Stream {
	results := make([]mo.Result[[]*source.Stream], len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p *provider.Provider) {
			defer wg.Done()
			results[i] = s.Query(ctx, p, target, mediaType)
		}(i, p)
	}
	wg.Wait()

	merged := lo.FlatMap(results, func(result mo.Result[[]*source.Stream], i int) []*source.Stream {
		if result.IsError() {
			log.With(log.Fields{
				"provider": providers[i].Label,
				"endpoint": providers[i].Endpoint,
			}).Warnf("provider query failed: %v", result.Error())
			return nil
		}
		return result.OrEmpty()
	})

	return lo.UniqBy(merged, func(stream *source.Stream) string {
		return stream.URL
	})
}

// Query asks a single provider for target and extracts the streams of every matching item.
func (s *Searcher) Query(ctx context.Context, p *provider.Provider, target title.Canonical, mediaType source.MediaType) mo.Result[[]*source.Stream] {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	body, err := s.Client.Get(ctx, p.Endpoint, url.Values{
		"ac": {"detail"},
		"wd": {strings.TrimSpace(target.BaseName)},
	})
	if err != nil {
		return mo.Err[[]*source.Stream](err)
	}

	items, err := decode(body)
	if err != nil {
		return mo.Err[[]*source.Stream](err)
	}

	streams := lo.FlatMap(items, func(item *source.Item, _ int) []*source.Stream {
		if !Matches(item.Name, target) {
			return nil
		}
		return extract.Streams(item, p.Label, mediaType)
	})

	log.With(log.Fields{
		"provider": p.Label,
		"items":    len(items),
		"streams":  len(streams),
	}).Debugf("provider answered")

	return mo.Ok(streams)
}

// Matches reports whether a provider item name denotes target.
// The item's own season is compared against target's season, which may be a caller override.
func Matches(name string, target title.Canonical) bool {
	candidate := title.Parse(name)
	return candidate.BaseName == target.BaseName && candidate.Season == target.Season
}

func decode(body []byte) ([]*source.Item, error) {
	var envelope struct {
		List json.RawMessage `json:"list"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(envelope.List, &raw); err != nil || raw == nil {
		return nil, ErrNoList
	}

	return lo.FilterMap(raw, func(r json.RawMessage, _ int) (*source.Item, bool) {
		var item source.Item
		if err := json.Unmarshal(r, &item); err != nil {
			log.Debugf("skipping malformed item: %v", err)
			return nil, false
		}
		return &item, true
	}), nil
}
