package commands

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/putscreener/internal/pipeline"
)

var (
	dryRun    bool
	csvExport bool
	outputDir string
	minYield  float64
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one screen and deliver the report",
	Long: `Screen the watchlist once, write put_options_<YYYYMMDD>.xlsx and push
the summary and file to the configured WeCom webhook.

Delivery is best effort: a failed message or upload is reported but does
not fail the command. An empty result produces no report.

Example:
  go run ./cmd/putscreener run
  go run ./cmd/putscreener run --dry-run --min-yield 5
  go run ./cmd/putscreener run --csv --output-dir ./reports`,
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "screen and render only, skip notification")
	runCmd.Flags().BoolVar(&csvExport, "csv", false, "also write a CSV export")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "report directory (overrides OUTPUT_DIR)")
	runCmd.Flags().Float64Var(&minYield, "min-yield", 0, "minimum monthly yield in percent (overrides MIN_MONTHLY_YIELD)")
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		PrintError(err.Error())
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("min-yield") {
		cfg.Screening.MinMonthlyYield = minYield
	}
	if flags.Changed("csv") {
		cfg.CSVExport = csvExport
	}
	if err := cfg.Validate(); err != nil {
		PrintError(err.Error())
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	PrintRunHeader(RunMetadata{
		Title:     "US Equity Short Put Screener",
		Tickers:   strings.Join(a.watchlist.Symbols(), ", "),
		MinYield:  cfg.Screening.MinMonthlyYield,
		OutputDir: cfg.OutputDir,
		DryRun:    dryRun,
	})

	result, err := a.orchestrator.Run(ctx, pipeline.RunConfig{
		DryRun:    dryRun,
		CSVExport: cfg.CSVExport,
	})
	if err != nil {
		PrintError(err.Error())
		return err
	}

	PrintResults(result)
	return nil
}
