package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"HealthPortal/pkg/logger"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "healthportal",
	Short: "HealthPortal - personal health assistant backend",
	Long: `HealthPortal serves the health portal API: alerts, reminders,
vaccinations, symptom assessment, the community forum, report uploads,
guided exercises, rewards and the chat assistant.

Run "healthportal serve" to start the HTTP server.`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(assessCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
