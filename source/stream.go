package source

import "github.com/samber/mo"

// Stream is a playable URL produced by the pipeline.
type Stream struct {
	// Label of the provider that returned the stream.
	Provider string `json:"name"`
	// Human-readable title, episode or quality label, remarks and source group.
	Description string `json:"description"`
	// Trimmed stream URL. Two streams are the same stream iff their URLs are equal.
	URL string `json:"url"`
	// Episode number parsed from a "第N集" label, if any.
	Episode *int `json:"episode,omitempty"`
}

// EpisodeNumber returns the parsed episode number.
func (s *Stream) EpisodeNumber() mo.Option[int] {
	if s.Episode == nil {
		return mo.None[int]()
	}
	return mo.Some(*s.Episode)
}

func (s *Stream) String() string {
	return s.Description
}
