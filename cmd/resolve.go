package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/homestream-cli/homestream/filesystem"
	"github.com/homestream-cli/homestream/inline"
	"github.com/homestream-cli/homestream/internal/cache"
	"github.com/homestream-cli/homestream/key"
	"github.com/homestream-cli/homestream/network"
	"github.com/homestream-cli/homestream/query"
	"github.com/homestream-cli/homestream/resolve"
	"github.com/homestream-cli/homestream/search"
	"github.com/homestream-cli/homestream/source"
	"github.com/homestream-cli/homestream/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("series", "s", "", "Series or movie title, season markers such as 第二季 are understood")
	resolveCmd.Flags().StringP("type", "t", "", "Media type: tv or movie (default from search.default_type)")
	resolveCmd.Flags().Int("season", 0, "Season override")
	resolveCmd.Flags().IntP("episode", "e", 0, "Only return streams of this episode (tv only)")
	resolveCmd.Flags().String("multi-source", "", "Aggregation switch: enabled or disabled (default from search.multi_source)")
	resolveCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	resolveCmd.Flags().BoolP("describe", "d", false, "Prefix every URL with its description")
	resolveCmd.Flags().StringP("pick", "p", "", "Keep a single stream: first, last, index:N, provider:LABEL or ask")
	resolveCmd.Flags().StringP("output", "o", "", "Write the output to a file")

	lo.Must0(resolveCmd.MarkFlagRequired("series"))

	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("series", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{source.TV.String(), source.Movie.String()}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("multi-source", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{resolve.MultiSourceEnabled, "disabled"}, cobra.ShellCompDirectiveNoFileComp
	}))
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve playable streams for a series or movie",
	Long: `Query every provider of the directory for a title and print the merged m3u8 streams.

Pickers:
  first - first stream
  last - last stream
  index:N - stream at index N (starting from 0)
  provider:LABEL - first stream of the given provider
  ask - choose interactively`,
	Example: `  homestream resolve -s 庆余年第二季 -e 3
  homestream resolve -s 怪奇物语4 --json
  homestream resolve -s 流浪地球2 -t movie -p first`,
	Run: func(cmd *cobra.Command, args []string) {
		params, err := paramsFromFlags(cmd)
		handleErr(err)

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(f.Close)
			writer = f
		}

		picker := mo.None[inline.Picker]()
		switch pick := lo.Must(cmd.Flags().GetString("pick")); pick {
		case "":
		case "ask":
			picker = mo.Some[inline.Picker](askStream)
		default:
			fn, err := inline.ParsePicker(pick)
			handleErr(err)
			picker = mo.Some(fn)
		}

		var width int
		if viper.GetBool(key.OutputTruncate) {
			width = util.TerminalWidth() / 2
		}

		options := &inline.Options{
			Out:      writer,
			Params:   params,
			Json:     lo.Must(cmd.Flags().GetBool("json")),
			Picker:   picker,
			Describe: lo.Must(cmd.Flags().GetBool("describe")),
			Width:    width,
		}

		handleErr(inline.Run(cmd.Context(), newResolver(), options))
	},
}

func paramsFromFlags(cmd *cobra.Command) (resolve.Params, error) {
	typeFlag := lo.Must(cmd.Flags().GetString("type"))
	if typeFlag == "" {
		typeFlag = viper.GetString(key.SearchDefaultType)
	}

	mediaType, ok := source.ParseMediaType(typeFlag)
	if !ok {
		return resolve.Params{}, fmt.Errorf("unknown media type: %s", typeFlag)
	}

	multiSource := lo.Must(cmd.Flags().GetString("multi-source"))
	if !cmd.Flags().Changed("multi-source") {
		multiSource = viper.GetString(key.SearchMultiSource)
	}

	params := resolve.Params{
		SeriesName:  lo.Must(cmd.Flags().GetString("series")),
		Type:        mediaType,
		Season:      mo.None[int](),
		Episode:     mo.None[int](),
		MultiSource: multiSource,
	}

	if cmd.Flags().Changed("season") {
		params.Season = mo.Some(lo.Must(cmd.Flags().GetInt("season")))
	}
	if cmd.Flags().Changed("episode") {
		params.Episode = mo.Some(lo.Must(cmd.Flags().GetInt("episode")))
	}

	return params, nil
}

func newResolver() *resolve.Resolver {
	return resolve.New(
		&search.Searcher{
			Client:  network.FromConfig(),
			Timeout: time.Duration(viper.GetInt(key.SearchTimeout)) * time.Second,
		},
		cache.NewResults(cache.Streams(), time.Duration(viper.GetInt(key.CacheTTL))*time.Second),
	)
}

func askStream(streams []*source.Stream) (*source.Stream, error) {
	width := util.TerminalWidth() - 4
	options := lo.Map(streams, func(s *source.Stream, i int) string {
		return util.Truncate(fmt.Sprintf("%d. %s (%s)", i+1, s.Description, s.Provider), width)
	})

	var index int
	err := survey.AskOne(&survey.Select{
		Message:  "Pick a stream",
		Options:  options,
		PageSize: 15,
	}, &index, survey.WithStdio(os.Stdin, os.Stderr, os.Stderr))
	if err != nil {
		return nil, err
	}

	return streams[index], nil
}

func init() {
	resolveCmd.AddCommand(resolveSchemaCmd)
}

var resolveSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of resolve --json output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return t.Name()
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
