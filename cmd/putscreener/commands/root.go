package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile string
	verbose bool
)

// rootCmd runs a screen when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "putscreener",
	Short: "US equity short put screener",
	Long: `US equity short put screener

Screens month-end puts on a watchlist of US tickers, keeps strikes between
85% and 105% of spot with a monthly yield at or above the threshold, writes
an Excel report and pushes a summary plus the file to a WeCom group robot.

Usage:
  go run ./cmd/putscreener [command]

Examples:
  go run ./cmd/putscreener
  go run ./cmd/putscreener run --dry-run --csv
  go run ./cmd/putscreener schedule
  go run ./cmd/putscreener watchlist`,
	SilenceUsage: true,
	RunE:         runScreen,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
