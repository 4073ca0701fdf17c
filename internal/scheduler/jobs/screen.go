package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/putscreener/internal/pipeline"
	"github.com/wonny/putscreener/pkg/logger"
)

// Runner executes one screening run
type Runner interface {
	Run(ctx context.Context, rc pipeline.RunConfig) (*pipeline.RunResult, error)
}

// ScreenJob runs the screening pipeline on a cron schedule
type ScreenJob struct {
	runner    Runner
	schedule  string
	csvExport bool
	logger    *logger.Logger
}

// NewScreenJob creates a new screening job
func NewScreenJob(runner Runner, schedule string, csvExport bool, log *logger.Logger) *ScreenJob {
	return &ScreenJob{
		runner:    runner,
		schedule:  schedule,
		csvExport: csvExport,
		logger:    log,
	}
}

// Name returns the job name
func (j *ScreenJob) Name() string {
	return "put_screen"
}

// Schedule returns the cron schedule
func (j *ScreenJob) Schedule() string {
	return j.schedule
}

// Run executes one screening run. Each trigger gets a fresh run id.
func (j *ScreenJob) Run(ctx context.Context) error {
	result, err := j.runner.Run(ctx, pipeline.RunConfig{CSVExport: j.csvExport})
	if err != nil {
		return fmt.Errorf("screening run failed: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":     result.RunID,
		"qualifying": len(result.Results),
		"report":     result.ReportPath,
	}).Info("Scheduled screening finished")

	if result.Delivery != nil && result.Delivery.Degraded() {
		j.logger.Warnf("Run %s delivered with failures, check the chat group", result.RunID)
	}

	return nil
}
