package inline

import (
	"encoding/json"

	"github.com/homestream-cli/homestream/source"
)

// Output is the JSON document written by resolve --json.
type Output struct {
	Query    string           `json:"query" jsonschema:"description=Series name as given"`
	BaseName string           `json:"base_name" jsonschema:"description=Title with season markers removed"`
	Season   int              `json:"season" jsonschema:"minimum=1"`
	Type     source.MediaType `json:"type" jsonschema:"enum=tv,enum=movie"`
	Result   []*source.Stream `json:"result"`
}

func asJson(streams []*source.Stream, options *Options) ([]byte, error) {
	if streams == nil {
		streams = []*source.Stream{}
	}

	target := options.Params.Target()
	return json.Marshal(&Output{
		Query:    options.Params.SeriesName,
		BaseName: target.BaseName,
		Season:   target.Season,
		Type:     options.Params.MediaType(),
		Result:   streams,
	})
}
