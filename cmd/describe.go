package cmd

import (
	"encoding/json"
	"os"

	"github.com/homestream-cli/homestream/resolve"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(describeCmd)
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the registration metadata of the resolve entry point",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		handleErr(encoder.Encode(resolve.Describe()))
	},
}
