package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/wonny/putscreener/internal/contracts"
	"github.com/wonny/putscreener/internal/selection"
	"github.com/wonny/putscreener/pkg/logger"
)

const (
	// SheetName is the worksheet holding the report
	SheetName = "Short Puts"

	headerRow = 4
	firstCol  = 2 // column B
	lastCol   = "I"
)

// Columns lists the report header in display order
var Columns = []string{
	"Symbol",
	"Name",
	"Expiration",
	"Spot ($)",
	"Strike ($)",
	"Option Price ($)",
	"Monthly Yield (%)",
	"DTE (days)",
}

var columnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 3},
	{"B", "B", 10},
	{"C", "C", 26},
	{"D", "D", 12},
	{"E", "G", 12},
	{"H", "H", 14},
	{"I", "I", 12},
}

// ExcelRenderer lays screening results out as a styled xlsx workbook
// ⭐ SSOT: 엑셀 리포트 레이아웃은 여기서만
type ExcelRenderer struct {
	outputDir string
	logger    *logger.Logger
}

// NewExcelRenderer creates a renderer writing into outputDir
func NewExcelRenderer(outputDir string, log *logger.Logger) *ExcelRenderer {
	return &ExcelRenderer{outputDir: outputDir, logger: log}
}

type styles struct {
	title, subtitle, header, data, currency, yield int
}

// Render writes the report and returns its path.
// Empty results write nothing and return an empty path with a nil error.
func (r *ExcelRenderer) Render(results []contracts.ScreeningResult, meta contracts.ReportMeta) (string, error) {
	if len(results) == 0 {
		r.logger.Warn("No qualifying options, report not generated")
		return "", nil
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := r.build(f, selection.SortByYield(results), meta); err != nil {
		return "", err
	}

	path := FilePath(r.outputDir, meta.GeneratedAt, "xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(results),
	}).Info("Excel report generated")

	return path, nil
}

func (r *ExcelRenderer) build(f *excelize.File, results []contracts.ScreeningResult, meta contracts.ReportMeta) error {
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	showGrid := false
	if err := f.SetSheetView(SheetName, 0, &excelize.ViewOptions{ShowGridLines: &showGrid}); err != nil {
		return fmt.Errorf("hide gridlines: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	// 제목 / 부제목
	title := "US Equity Short Put Screener"
	subtitle := fmt.Sprintf("Filter: monthly yield ≥ %s%% | Updated: %s",
		FormatThreshold(meta.MinMonthlyYield), meta.GeneratedAt.Format("2006-01-02 15:04"))

	if err := mergedBand(f, 2, title, st.title); err != nil {
		return err
	}
	if err := f.SetRowHeight(SheetName, 2, 30); err != nil {
		return fmt.Errorf("set title height: %w", err)
	}
	if err := mergedBand(f, 3, subtitle, st.subtitle); err != nil {
		return err
	}

	for i, name := range Columns {
		if err := setCell(f, firstCol+i, headerRow, name, st.header); err != nil {
			return err
		}
	}

	for i, res := range results {
		row := headerRow + 1 + i
		values := []interface{}{
			res.Symbol,
			res.Name,
			res.Expiration,
			res.SpotPrice,
			res.Strike,
			res.OptionPrice,
			res.MonthlyYield,
			res.DaysToExpiration,
		}

		for j, v := range values {
			style := st.data
			switch j {
			case 3, 4, 5:
				style = st.currency
			case 6:
				style = st.yield
			}
			if err := setCell(f, firstCol+j, row, v, style); err != nil {
				return err
			}
		}
	}

	for _, cw := range columnWidths {
		if err := f.SetColWidth(SheetName, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("set width %s:%s: %w", cw.from, cw.to, err)
		}
	}

	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	currencyFmt := "$#,##0.00"
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	defs := []*excelize.Style{
		{Font: &excelize.Font{Bold: true, Size: 16, Color: "1F4E79"}, Alignment: center},
		{Font: &excelize.Font{Size: 10, Color: "666666"}, Alignment: center},
		{
			Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
			Alignment: center,
			Border:    border,
		},
		{Font: &excelize.Font{Size: 10}, Alignment: center},
		{Font: &excelize.Font{Size: 10}, Alignment: center, CustomNumFmt: &currencyFmt},
		{Font: &excelize.Font{Bold: true, Color: "008000"}, Alignment: center},
	}

	var st styles
	targets := []*int{&st.title, &st.subtitle, &st.header, &st.data, &st.currency, &st.yield}
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return styles{}, fmt.Errorf("create style %d: %w", i, err)
		}
		*targets[i] = id
	}

	return st, nil
}

func mergedBand(f *excelize.File, row int, text string, style int) error {
	from := "B" + strconv.Itoa(row)
	to := lastCol + strconv.Itoa(row)

	if err := f.MergeCell(SheetName, from, to); err != nil {
		return fmt.Errorf("merge %s:%s: %w", from, to, err)
	}
	if err := f.SetCellValue(SheetName, from, text); err != nil {
		return fmt.Errorf("write %s: %w", from, err)
	}
	if err := f.SetCellStyle(SheetName, from, to, style); err != nil {
		return fmt.Errorf("style %s:%s: %w", from, to, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("write %s: %w", cell, err)
	}
	if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
		return fmt.Errorf("style %s: %w", cell, err)
	}
	return nil
}

// FormatThreshold renders a yield threshold without trailing zeros (6 → "6", 6.5 → "6.5")
func FormatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
