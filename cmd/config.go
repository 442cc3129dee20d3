package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/homestream-cli/homestream/color"
	"github.com/homestream-cli/homestream/config"
	"github.com/homestream-cli/homestream/constant"
	"github.com/homestream-cli/homestream/filesystem"
	"github.com/homestream-cli/homestream/icon"
	"github.com/homestream-cli/homestream/style"
	"github.com/homestream-cli/homestream/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func configFile() string {
	return filepath.Join(where.Config(), constant.Homestream+".toml")
}

// lookupField colors the suggestion of an unknown key.
func lookupField(k string) (config.Field, error) {
	field, err := config.Lookup(k)

	var unknown *config.UnknownKeyError
	if errors.As(err, &unknown) {
		return field, fmt.Errorf(
			"unknown key %s, did you mean %s?",
			style.Fg(color.Red)(unknown.Key),
			style.Fg(color.Yellow)(unknown.Closest),
		)
	}

	return field, err
}

// persist writes viper's state, creating the file on first use.
func persist() error {
	err := viper.WriteConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return viper.SafeWriteConfigAs(configFile())
	}
	return err
}

func sectionNames() []string {
	names := lo.Keys(config.Sections())
	slices.Sort(names)
	return names
}

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	keys := lo.Keys(config.Default)
	slices.Sort(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change homestream settings",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringP("section", "s", "", "Only show one section, e.g. search or network")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	_ = configInfoCmd.RegisterFlagCompletionFunc("section", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return sectionNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings grouped by section",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			only     = lo.Must(cmd.Flags().GetString("section"))
			asJson   = lo.Must(cmd.Flags().GetBool("json"))
			sections = config.Sections()
			names    = sectionNames()
		)

		if only != "" {
			if _, ok := sections[only]; !ok {
				handleErr(fmt.Errorf("unknown section %s, available: %v", only, names))
			}
			names = []string{only}
		}

		if asJson {
			grouped := lo.PickByKeys(sections, names)
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(lo.MapValues(grouped, func(fields []config.Field, _ string) []*config.Field {
				return lo.ToSlicePtr(fields)
			})))
			return
		}

		out := cmd.OutOrStdout()
		for i, name := range names {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, style.Tag(name))
			for _, field := range sections[name] {
				fmt.Fprintln(out)
				fmt.Fprintln(out, field.Pretty())
			}
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get KEY",
	Short:             "Print the value of a setting in effect",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := lookupField(args[0])
		handleErr(err)

		fmt.Fprintln(cmd.OutOrStdout(), viper.Get(field.Key))
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set KEY VALUE...",
	Short:             "Set a setting and persist it to the config file",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := lookupField(args[0])
		handleErr(err)

		value, err := field.Parse(args[1:])
		handleErr(err)

		viper.Set(field.Key, value)
		handleErr(persist())

		fmt.Fprintf(
			cmd.OutOrStdout(),
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(field.Key),
			style.Fg(color.Yellow)(fmt.Sprint(value)),
		)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd)
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every setting to its default")
}

var configResetCmd = &cobra.Command{
	Use:               "reset [KEY]",
	Short:             "Restore a setting, or all of them, to the default",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) == 1) {
			handleErr(errors.New("give either a key or --all"))
		}

		fields := lo.Values(config.Default)
		if !all {
			field, err := lookupField(args[0])
			handleErr(err)
			fields = []config.Field{field}
		}

		for _, field := range fields {
			viper.Set(field.Key, field.Value)
		}
		handleErr(persist())

		if all {
			fmt.Fprintf(cmd.OutOrStdout(), "%s reset every setting\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		fmt.Fprintf(
			cmd.OutOrStdout(),
			"%s reset %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(fields[0].Key),
			style.Fg(color.Yellow)(fmt.Sprint(fields[0].Value)),
		)
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the settings in effect to the config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfigAs(path))
		fmt.Fprintf(cmd.OutOrStdout(), "%s wrote config to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
	},
}
