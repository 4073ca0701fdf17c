package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/putscreener/pkg/config"
)

// watchlistCmd prints the tickers a run would screen
var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Show the tickers being screened",
	Long: `Print the watchlist: the built-in 15 tickers, or the YAML file named by
WATCHLIST_PATH. Does not require WECHAT_WEBHOOK.`,
	RunE: showWatchlist,
}

func init() {
	rootCmd.AddCommand(watchlistCmd)
}

func showWatchlist(cmd *cobra.Command, args []string) error {
	cfg, err := config.ReadFrom(envFile)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	wl, err := loadWatchlist(cfg)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	source := "built-in"
	if cfg.Screening.WatchlistPath != "" {
		source = cfg.Screening.WatchlistPath
	}

	fmt.Printf("Watchlist (%s): %d tickers\n", source, len(wl.Tickers))
	PrintWatchlist(wl)
	return nil
}
