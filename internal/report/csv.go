package report

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/wonny/putscreener/internal/contracts"
	"github.com/wonny/putscreener/internal/selection"
	"github.com/wonny/putscreener/pkg/logger"
)

// CSVExporter writes the same rows as the workbook as plain CSV
type CSVExporter struct {
	outputDir string
	logger    *logger.Logger
}

// NewCSVExporter creates an exporter writing into outputDir
func NewCSVExporter(outputDir string, log *logger.Logger) *CSVExporter {
	return &CSVExporter{outputDir: outputDir, logger: log}
}

// Export writes put_options_<YYYYMMDD>.csv and returns its path.
// Empty results write nothing.
func (e *CSVExporter) Export(results []contracts.ScreeningResult, meta contracts.ReportMeta) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := FilePath(e.outputDir, meta.GeneratedAt, "csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	rows := selection.SortByYield(results)
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", fmt.Errorf("marshal csv: %w", err)
	}

	e.logger.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(rows),
	}).Info("CSV export written")

	return path, nil
}
