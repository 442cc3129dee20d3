// Package cmd implements the homestream command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/homestream-cli/homestream/color"
	"github.com/homestream-cli/homestream/constant"
	"github.com/homestream-cli/homestream/icon"
	"github.com/homestream-cli/homestream/key"
	"github.com/homestream-cli/homestream/log"
	"github.com/homestream-cli/homestream/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (emoji, nerd, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))
}

const logo = `█ █ █▀█ █▀▄▀█ █▀▀ █▀ ▀█▀ █▀█ █▀▀ ▄▀█ █▀▄▀█
█▀█ █▄█ █ ▀ █ ██▄ ▄█  █  █▀▄ ██▄ █▀█ █ ▀ █`

var rootCmd = &cobra.Command{
	Use:   constant.Homestream,
	Short: "Resolve playable VOD streams across many providers",
	Long: logo + "\n\n" +
		style.Fg(color.HiCyan)(style.Italic("    - Resolve playable VOD streams across many providers")),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
