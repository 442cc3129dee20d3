// Package source defines the domain models shared by the resolution pipeline.
package source

import "strings"

// MediaType selects how a provider item is interpreted.
type MediaType string

const (
	TV    MediaType = "tv"
	Movie MediaType = "movie"
)

// ParseMediaType maps a user-supplied type to a MediaType. Empty input means TV.
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case "", TV:
		return TV, true
	case Movie:
		return Movie, true
	default:
		return "", false
	}
}

func (m MediaType) String() string {
	return string(m)
}
