// Package extract turns a provider item's packed play-URL blob into stream records.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/homestream-cli/homestream/source"
	"github.com/samber/lo"
)

const (
	groupSeparator   = "$$$"
	entrySeparator   = "#"
	fieldSeparator   = "$"
	defaultGroupName = "默认源"

	qualityPreview = "抢先版"
	qualityFull    = "正片"
)

var episodeRegex = regexp.MustCompile(`第(\d+)集`)

// IsM3U8 reports whether url looks like an HLS playlist.
func IsM3U8(url string) bool {
	return strings.Contains(strings.ToLower(url), "m3u8")
}

// group is one play source of an item.
type group struct {
	name    string
	entries string
}

// episodic groups list their entries separated by "#".
func (g group) episodic() bool {
	return strings.Contains(g.entries, entrySeparator)
}

// Streams extracts the streams of item for the given media type.
// TV reads every m3u8 episode of episodic groups; movie reads the first m3u8 entry of every other group.
func Streams(item *source.Item, provider string, mediaType source.MediaType) []*source.Stream {
	if item == nil || item.Name == "" || item.PlayURL == "" {
		return nil
	}

	var streams []*source.Stream
	for _, g := range groups(item) {
		switch {
		case mediaType == source.TV && g.episodic():
			streams = append(streams, episodes(item, provider, g)...)
		case mediaType == source.Movie && !g.episodic():
			if stream, ok := feature(item, provider, g); ok {
				streams = append(streams, stream)
			}
		}
	}

	return streams
}

func groups(item *source.Item) []group {
	blob := strings.TrimRight(item.PlayURL, entrySeparator)
	names := strings.Split(item.PlayFrom, groupSeparator)

	return lo.Map(strings.Split(blob, groupSeparator), func(entries string, i int) group {
		name := defaultGroupName
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		return group{name: name, entries: entries}
	})
}

func episodes(item *source.Item, provider string, g group) []*source.Stream {
	entries := lo.Compact(strings.Split(g.entries, entrySeparator))

	return lo.FilterMap(entries, func(entry string, _ int) (*source.Stream, bool) {
		label, url, ok := fields(entry)
		if !ok || !IsM3U8(url) {
			return nil, false
		}

		description := item.Name + " - " + label
		if item.Remarks != "" {
			description += " - " + item.Remarks
		}

		return &source.Stream{
			Provider:    provider,
			Description: fmt.Sprintf("%s - [%s]", description, g.name),
			URL:         strings.TrimSpace(url),
			Episode:     episodeNumber(label),
		}, true
	})
}

func feature(item *source.Item, provider string, g group) (*source.Stream, bool) {
	entry, ok := lo.Find(strings.Split(g.entries, entrySeparator), func(entry string) bool {
		_, url, ok := fields(entry)
		return ok && IsM3U8(url)
	})
	if !ok {
		return nil, false
	}

	quality, url, _ := fields(entry)
	label := qualityFull
	if strings.Contains(strings.ToLower(quality), "tc") {
		label = qualityPreview
	}

	return &source.Stream{
		Provider:    provider,
		Description: fmt.Sprintf("%s - %s - [%s]", item.Name, label, g.name),
		URL:         strings.TrimSpace(url),
	}, true
}

// fields splits an entry into its label and URL, the first two "$" fields.
// Anything after the second field is a player hint and is dropped.
func fields(entry string) (label, url string, ok bool) {
	parts := strings.Split(entry, fieldSeparator)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func episodeNumber(label string) *int {
	match := episodeRegex.FindStringSubmatch(label)
	if match == nil {
		return nil
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &n
}
