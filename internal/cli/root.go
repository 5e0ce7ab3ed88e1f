package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "eventnite",
	Short: "Discord scheduled-event manager",
	Long:  "eventnite keeps a local record of guild events in sync with Discord's scheduled events, driven by slash commands.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "eventnite.yaml", "path to configuration file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
