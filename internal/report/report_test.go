package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wonny/putscreener/internal/contracts"
	"github.com/wonny/putscreener/pkg/logger"
)

var genTime = time.Date(2026, 10, 15, 21, 5, 0, 0, time.UTC)

func sampleResults() []contracts.ScreeningResult {
	return []contracts.ScreeningResult{
		{Symbol: "PLTR", Name: "Palantir", Expiration: "2026-11-27", Strike: 125, OptionPrice: 9.8, SpotPrice: 128.84, DaysToExpiration: 43, MonthlyYield: 5.47},
		{Symbol: "COIN", Name: "Coinbase", Expiration: "2026-11-27", Strike: 170, OptionPrice: 16.9, SpotPrice: 162.03, DaysToExpiration: 43, MonthlyYield: 6.94},
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "put_options_20261015.xlsx", FileName(genTime, "xlsx"))
	assert.Equal(t, "put_options_20261015.csv", FileName(genTime, "csv"))
	assert.Equal(t, filepath.Join(".", "put_options_20261015.xlsx"), FilePath("", genTime, "xlsx"))
}

func TestFormatThreshold(t *testing.T) {
	assert.Equal(t, "6", FormatThreshold(6.0))
	assert.Equal(t, "6.5", FormatThreshold(6.5))
}

func TestExcelRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	r := NewExcelRenderer(dir, logger.Nop())

	path, err := r.Render(sampleResults(), contracts.ReportMeta{GeneratedAt: genTime, MinMonthlyYield: 6})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "put_options_20261015.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	title, err := f.GetCellValue(SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "US Equity Short Put Screener", title)

	subtitle, err := f.GetCellValue(SheetName, "B3")
	require.NoError(t, err)
	assert.Contains(t, subtitle, "6%")
	assert.Contains(t, subtitle, "2026-10-15 21:05")

	merged, err := f.GetMergeCells(SheetName)
	require.NoError(t, err)
	var ranges []string
	for _, m := range merged {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.ElementsMatch(t, []string{"B2:I2", "B3:I3"}, ranges)

	for i, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(firstCol+i, headerRow)
		require.NoError(t, err)
		got, err := f.GetCellValue(SheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}

	// 수익률 내림차순
	first, err := f.GetCellValue(SheetName, "B5")
	require.NoError(t, err)
	second, err := f.GetCellValue(SheetName, "B6")
	require.NoError(t, err)
	assert.Equal(t, "COIN", first)
	assert.Equal(t, "PLTR", second)

	yield, err := f.GetCellValue(SheetName, "H5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "6.94", yield)

	strike, err := f.GetCellValue(SheetName, "F5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "170", strike)

	dte, err := f.GetCellValue(SheetName, "I6")
	require.NoError(t, err)
	assert.Equal(t, "43", dte)

	width, err := f.GetColWidth(SheetName, "C")
	require.NoError(t, err)
	assert.Equal(t, 26.0, width)
}

func TestExcelRenderer_EmptyResults(t *testing.T) {
	dir := t.TempDir()
	r := NewExcelRenderer(dir, logger.Nop())

	path, err := r.Render(nil, contracts.ReportMeta{GeneratedAt: genTime, MinMonthlyYield: 6})
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExcelRenderer_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	r := NewExcelRenderer(file, logger.Nop())
	_, err := r.Render(sampleResults(), contracts.ReportMeta{GeneratedAt: genTime})
	assert.Error(t, err)
}

func TestCSVExporter_Export(t *testing.T) {
	dir := t.TempDir()
	e := NewCSVExporter(dir, logger.Nop())

	path, err := e.Export(sampleResults(), contracts.ReportMeta{GeneratedAt: genTime})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "put_options_20261015.csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []contracts.ScreeningResult
	require.NoError(t, gocsv.UnmarshalBytes(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "COIN", rows[0].Symbol)
	assert.Equal(t, 6.94, rows[0].MonthlyYield)
	assert.True(t, strings.HasPrefix(string(data), "symbol,name,expiration"))
}

func TestCSVExporter_EmptyResults(t *testing.T) {
	e := NewCSVExporter(t.TempDir(), logger.Nop())

	path, err := e.Export(nil, contracts.ReportMeta{GeneratedAt: genTime})
	require.NoError(t, err)
	assert.Empty(t, path)
}
