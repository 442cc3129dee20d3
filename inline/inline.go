// Package inline implements the non-interactive resolve mode whose output is meant for scripts.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/homestream-cli/homestream/log"
	"github.com/homestream-cli/homestream/query"
	"github.com/homestream-cli/homestream/resolve"
	"github.com/homestream-cli/homestream/source"
	"github.com/homestream-cli/homestream/util"
)

// Run resolves options.Params and writes the streams to options.Out.
func Run(ctx context.Context, resolver *resolve.Resolver, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	streams := resolver.Resolve(ctx, options.Params)
	if len(streams) > 0 {
		util.Ignore(func() error {
			return query.Remember(options.Params.Target().BaseName, 1)
		})
	}

	if picker, ok := options.Picker.Get(); ok && len(streams) > 0 {
		choice, err := picker(streams)
		if err != nil {
			return err
		}

		if choice == nil {
			streams = []*source.Stream{}
		} else {
			streams = []*source.Stream{choice}
		}
	}

	log.Infof("resolved %s for %q", util.Quantify(len(streams), "stream", "streams"), options.Params.SeriesName)

	if options.Json {
		return writeJson(options.Out, streams, options)
	}

	for _, stream := range streams {
		if options.Describe {
			fmt.Fprintf(options.Out, "%s\t%s\n", util.Truncate(stream.Description, options.Width), stream.URL)
		} else {
			fmt.Fprintln(options.Out, stream.URL)
		}
	}

	return nil
}

func writeJson(out io.Writer, streams []*source.Stream, options *Options) error {
	data, err := asJson(streams, options)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
