package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intentd",
	Short: "Intent-signal scoring engine",
	Long:  "intentd ingests behavioral signals about prospects, scores their buying intent with time-decayed aggregation, and fires downstream workflows when thresholds are crossed. Single Go binary.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(cleanupCmd)
}
