// Package query keeps a ranked history of resolved titles for shell completion.
package query

import (
	"strings"

	"github.com/homestream-cli/homestream/filesystem"
	"github.com/homestream-cli/homestream/key"
	"github.com/homestream-cli/homestream/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank  int    `json:"rank"`
	Title string `json:"title"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var suggestionCache = make(map[string][]*record)

// Remember records a resolved title or bumps its rank by weight.
func Remember(title string, weight int) error {
	title = sanitize(title)
	if title == "" {
		return nil
	}

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*record)
	}

	if r, ok := cached[title]; ok {
		r.Rank += weight
	} else {
		cached[title] = &record{Rank: weight, Title: title}
	}

	clear(suggestionCache)
	return cacher.Set(cached)
}

// SuggestMany returns the remembered titles fuzzily matching the partial input, highest rank first.
func SuggestMany(partial string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	partial = sanitize(partial)
	records, ok := suggestionCache[partial]
	if !ok {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, r := range cached {
			if fuzzy.Match(partial, r.Title) {
				records = append(records, r)
			}
		}

		slices.SortFunc(records, func(a, b *record) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Title, b.Title)
		})

		suggestionCache[partial] = records
	}

	return lo.Map(records, func(r *record, _ int) string {
		return r.Title
	})
}

func sanitize(title string) string {
	return strings.TrimSpace(strings.ToLower(title))
}
