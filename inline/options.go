package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/homestream-cli/homestream/resolve"
	"github.com/homestream-cli/homestream/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Picker chooses one stream. A nil stream means nothing was chosen.
type Picker func([]*source.Stream) (*source.Stream, error)

type Options struct {
	Out    io.Writer
	Params resolve.Params
	Json   bool
	Picker mo.Option[Picker]
	// Describe prefixes plain output with the stream description.
	Describe bool
	// Width truncates descriptions. Zero disables truncation.
	Width int
}

// ParsePicker parses a picker description.
// Format: "first", "last", "index:N" (zero based) or "provider:LABEL".
func ParsePicker(description string) (Picker, error) {
	kind, value, _ := strings.Cut(description, ":")

	switch kind {
	case "first":
		return func(streams []*source.Stream) (*source.Stream, error) {
			if len(streams) == 0 {
				return nil, nil
			}
			return streams[0], nil
		}, nil
	case "last":
		return func(streams []*source.Stream) (*source.Stream, error) {
			if len(streams) == 0 {
				return nil, nil
			}
			return streams[len(streams)-1], nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(streams []*source.Stream) (*source.Stream, error) {
			if len(streams) == 0 {
				return nil, nil
			}
			return streams[min(int(idx), len(streams)-1)], nil
		}, nil
	case "provider":
		if value == "" {
			return nil, fmt.Errorf("provider picker needs a label")
		}
		return func(streams []*source.Stream) (*source.Stream, error) {
			stream, _ := lo.Find(streams, func(s *source.Stream) bool {
				return s.Provider == value
			})
			return stream, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}
