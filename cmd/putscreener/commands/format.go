package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wonny/putscreener/internal/contracts"
	"github.com/wonny/putscreener/internal/pipeline"
	"github.com/wonny/putscreener/internal/watchlist"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// RunMetadata holds what the run banner shows
type RunMetadata struct {
	Title     string
	Tickers   string
	MinYield  float64
	OutputDir string
	DryRun    bool
}

// PrintRunHeader prints a formatted run header
func PrintRunHeader(meta RunMetadata) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", meta.Title)
	PrintSeparator()
	fmt.Printf("  Tickers   : %s\n", meta.Tickers)
	fmt.Printf("  Min yield : %.2f%% / month\n", meta.MinYield)
	fmt.Printf("  Output    : %s\n", meta.OutputDir)
	if meta.DryRun {
		fmt.Println("  Mode      : dry run (no notification)")
	}
	PrintSeparator()
}

// PrintResults prints the qualifying contracts and the stage outcomes of a run
func PrintResults(result *pipeline.RunResult) {
	fmt.Println()
	fmt.Printf("Run %s | expiration %s\n", result.RunID, result.Expiration)

	if len(result.SkippedSymbols) > 0 {
		PrintWarning(fmt.Sprintf("No data for: %v", result.SkippedSymbols))
	}

	if len(result.Results) == 0 {
		PrintInfo("No qualifying options found, no report generated")
	} else {
		PrintResultsTable(result.Results)
	}

	fmt.Println()
	for _, s := range result.Stages {
		switch s.Status {
		case pipeline.StageDone:
			PrintSuccess(fmt.Sprintf("%-13s done", s.Stage))
		case pipeline.StageSkipped:
			PrintInfo(fmt.Sprintf("%-13s skipped (%s)", s.Stage, s.Reason))
		default:
			PrintError(fmt.Sprintf("%-13s failed: %s", s.Stage, s.Reason))
		}
	}

	if result.Delivery != nil && result.Delivery.Degraded() {
		PrintWarning("Delivery incomplete, see failed or skipped steps above")
	}

	if result.ReportPath != "" {
		fmt.Printf("\n📄 Report: %s\n", result.ReportPath)
	}
	if result.CSVPath != "" {
		fmt.Printf("📄 CSV   : %s\n", result.CSVPath)
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("Completed in %.2fs", result.Duration.Seconds()))
}

// PrintResultsTable prints screening results as a console table
func PrintResultsTable(results []contracts.ScreeningResult) {
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Symbol", "Expiration", "Spot", "Strike", "Moneyness", "Option", "Yield/mo", "DTE", "Capital"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, r := range results {
		table.Append([]string{
			r.Symbol,
			r.Expiration,
			p.Sprintf("$%.2f", r.SpotPrice),
			p.Sprintf("$%.2f", r.Strike),
			fmt.Sprintf("%.1f%%", r.Moneyness()*100),
			p.Sprintf("$%.2f", r.OptionPrice),
			fmt.Sprintf("%.2f%%", r.MonthlyYield),
			fmt.Sprintf("%d", r.DaysToExpiration),
			p.Sprintf("$%.0f", r.CapitalRequired()),
		})
	}

	table.Render()
}

// PrintWatchlist prints the tickers being screened
func PrintWatchlist(wl *watchlist.Watchlist) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Symbol", "Name"})
	table.SetAutoFormatHeaders(false)

	for i, t := range wl.Tickers {
		table.Append([]string{fmt.Sprintf("%d", i+1), t.Symbol, wl.DisplayName(t.Symbol)})
	}

	table.Render()
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println()
	fmt.Printf("⚠️  %s\n", message)
	fmt.Println()
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("ℹ️  %s\n", message)
}
