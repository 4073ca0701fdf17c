package notify

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wonny/putscreener/internal/contracts"
	"github.com/wonny/putscreener/internal/report"
	"github.com/wonny/putscreener/internal/selection"
)

// SummaryTopN is the number of rows in the chat summary table
const SummaryTopN = 10

const riskFooter = `> ⚠️ **Risk notice**: selling puts can lose principal. Trade with care.
>
> 📎 **Full results are in the attached Excel file**`

// FormatSummary renders the markdown chat summary for a run
func FormatSummary(results []contracts.ScreeningResult, meta contracts.ReportMeta) string {
	p := message.NewPrinter(language.English)
	b := &strings.Builder{}

	b.WriteString("## 📊 US Equity Short Put Screener\n\n")
	fmt.Fprintf(b, "**Updated**: %s  \n", meta.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(b, "**Filter**: monthly yield ≥ %s%% | month-end expiry  \n", report.FormatThreshold(meta.MinMonthlyYield))
	fmt.Fprintf(b, "**Found**: %d qualifying options\n\n", len(results))

	top := selection.Top(results, SummaryTopN)
	if len(top) > 0 {
		fmt.Fprintf(b, "### 📋 Top %d by yield\n\n", len(top))

		table := tablewriter.NewWriter(b)
		table.SetHeader([]string{"Symbol", "Expiration", "Strike", "Option", "Yield"})
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		table.SetCenterSeparator("|")

		for _, r := range top {
			table.Append([]string{
				"**" + r.Symbol + "**",
				r.Expiration,
				p.Sprintf("$%.0f", r.Strike),
				p.Sprintf("$%.2f", r.OptionPrice),
				fmt.Sprintf("**%.2f%%**", r.MonthlyYield),
			})
		}
		table.Render()
		b.WriteString("\n")
	}

	b.WriteString(riskFooter)
	b.WriteString("\n")

	return b.String()
}
