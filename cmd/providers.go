package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/homestream-cli/homestream/color"
	"github.com/homestream-cli/homestream/icon"
	"github.com/homestream-cli/homestream/key"
	"github.com/homestream-cli/homestream/network"
	"github.com/homestream-cli/homestream/provider"
	"github.com/homestream-cli/homestream/style"
	"github.com/homestream-cli/homestream/util"
	"github.com/homestream-cli/homestream/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(providersCmd)
}

var providersCmd = &cobra.Command{
	Use:     "providers",
	Aliases: []string{"sources"},
	Short:   "Inspect and probe the provider directory",
}

func init() {
	providersCmd.AddCommand(providersListCmd)

	providersListCmd.Flags().BoolP("raw", "r", false, "Print the directory as label,url lines without styling")
	providersListCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	providersListCmd.Flags().BoolP("builtin", "b", false, "List the built-in directory instead of the one in effect")
	providersListCmd.MarkFlagsMutuallyExclusive("raw", "json")
	providersListCmd.SetOut(os.Stdout)
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the providers that resolve queries",
	Run: func(cmd *cobra.Command, args []string) {
		providers := provider.Load()
		if lo.Must(cmd.Flags().GetBool("builtin")) {
			providers = provider.Builtins()
		}

		switch {
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(providers))
		case lo.Must(cmd.Flags().GetBool("raw")):
			cmd.Print(provider.Format(providers))
		default:
			cmd.Println(style.New().Foreground(color.HiBlue).Bold(true).Render(
				fmt.Sprintf("%s:", util.Quantify(len(providers), "provider", "providers")),
			))
			for _, p := range providers {
				cmd.Printf("%s %s\n", style.Tag(p.Label), style.Faint(p.Endpoint))
			}
		}
	},
}

func init() {
	providersCmd.AddCommand(providersCheckCmd)

	providersCheckCmd.Flags().IntP("timeout", "t", 0, "Latency limit in milliseconds (default from providers.check_timeout)")
	providersCheckCmd.Flags().BoolP("write", "w", false, "Save the reachable providers, fastest first, as the directory override")
	providersCheckCmd.SetOut(os.Stdout)
}

var providersCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Measure the latency of every provider",
	Run: func(cmd *cobra.Command, args []string) {
		limit := lo.Must(cmd.Flags().GetInt("timeout"))
		if !cmd.Flags().Changed("timeout") {
			limit = viper.GetInt(key.ProvidersCheckTimeout)
		}

		providers := provider.Load()
		erase := util.PrintErasable(fmt.Sprintf("%s Probing %s...", icon.Get(icon.Progress), util.Quantify(len(providers), "provider", "providers")))
		latencies := provider.Check(cmd.Context(), network.FromConfig(), providers, time.Duration(limit)*time.Millisecond)
		erase()

		width := util.TerminalWidth()
		for _, l := range latencies {
			if l.Reachable() {
				cmd.Printf("%s %s %s\n", icon.Get(icon.Fast), style.Fg(color.Green)(l.Elapsed.Round(time.Millisecond).String()), util.Truncate(l.Provider.Label, width))
			} else {
				cmd.Printf("%s %s %s\n", icon.Get(icon.Slow), style.Fg(color.HiRed)("unreachable"), util.Truncate(l.Provider.Label, width))
			}
		}

		fastest := provider.Fastest(latencies)
		cmd.Printf("\n%s reachable\n", util.Quantify(len(fastest), "endpoint", "endpoints"))

		if !lo.Must(cmd.Flags().GetBool("write")) {
			return
		}

		if len(fastest) == 0 {
			handleErr(fmt.Errorf("no provider answered within %dms, directory left unchanged", limit))
		}

		handleErr(provider.Save(fastest))
		cmd.Printf("%s wrote %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), where.Providers())
	},
}

func init() {
	providersCmd.AddCommand(providersGetCmd)
	providersGetCmd.SetOut(os.Stdout)
}

var providersGetCmd = &cobra.Command{
	Use:   "get [label]",
	Short: "Print the endpoint of a provider",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(provider.Load(), func(p *provider.Provider, _ int) string {
			return p.Label
		}), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		p, ok := provider.Get(args[0])
		if !ok {
			handleErr(fmt.Errorf("provider not found: %s", args[0]))
		}
		cmd.Println(p.Endpoint)
	},
}
