package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/putscreener/internal/scheduler"
	"github.com/wonny/putscreener/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run screens on a cron schedule",
	Long: `Start a daemon that runs the screen on SCREEN_SCHEDULE
(6-field cron with seconds, default "0 0 21 * * 1-5": weekdays at 21:00).

A trigger that fires while the previous run is still going is skipped.
Failed runs are logged and not retried. Stop with Ctrl+C.

Example:
  go run ./cmd/putscreener schedule
  go run ./cmd/putscreener schedule --run-now`,
	RunE: runSchedule,
}

var runNow bool

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().BoolVar(&runNow, "run-now", false, "run one screen immediately before waiting for the schedule")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		PrintError(err.Error())
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	sched := scheduler.New(a.logger)
	job := jobs.NewScreenJob(a.orchestrator, cfg.Schedule, cfg.CSVExport, a.logger)
	if err := sched.AddJob(job); err != nil {
		PrintError(err.Error())
		return fmt.Errorf("add job: %w", err)
	}

	if runNow {
		// 즉시 실행 실패는 데몬을 멈추지 않음
		if err := sched.RunJob(job.Name()); err != nil {
			PrintError(fmt.Sprintf("Immediate run failed: %v", err))
		} else {
			PrintSuccess("Immediate run completed")
		}
	}

	sched.Start()

	PrintSuccess("Scheduler started")
	fmt.Printf("   jobs     : %s\n", strings.Join(sched.GetAllJobs(), ", "))
	fmt.Printf("   schedule : %s\n", cfg.Schedule)
	if next, err := sched.NextRun(job.Name()); err != nil {
		PrintError(fmt.Sprintf("Next run unknown: %v", err))
	} else {
		fmt.Printf("   next run : %s\n", next.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()

	history, err := sched.GetJobHistory(job.Name())
	if err != nil || len(history.Results) == 0 {
		return nil
	}

	fmt.Printf("Runs: %d, failed: %d, success rate %.0f%%\n",
		len(history.Results), len(history.GetFailedResults()), history.GetSuccessRate()*100)

	last := history.GetLatestResults(1)[0]
	if last.Success {
		PrintSuccess(fmt.Sprintf("Last run %s (%s)", last.StartTime.Format("2006-01-02 15:04:05"), last.Duration))
	} else {
		PrintError(fmt.Sprintf("Last run %s failed: %s", last.StartTime.Format("2006-01-02 15:04:05"), last.Error))
	}

	return nil
}
