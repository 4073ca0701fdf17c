package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/putscreener/internal/contracts"
	"github.com/wonny/putscreener/internal/marketdata"
	"github.com/wonny/putscreener/internal/notify"
	"github.com/wonny/putscreener/internal/selection"
	"github.com/wonny/putscreener/internal/watchlist"
	"github.com/wonny/putscreener/pkg/config"
	"github.com/wonny/putscreener/pkg/logger"
)

// State is the position of a run in its lifecycle
type State string

const (
	StateInit        State = "INIT"
	StateFiltered    State = "FILTERED"
	StateRendered    State = "RENDERED"
	StateSummarySent State = "SUMMARY_SENT"
	StateUploaded    State = "UPLOADED"
	StateFileSent    State = "FILE_SENT"
	StateDone        State = "DONE"
)

// StageStatus is the outcome of one stage
type StageStatus string

const (
	StageDone    StageStatus = "done"
	StageSkipped StageStatus = "skipped"
	StageFailed  StageStatus = "failed"
)

// StageOutcome records what happened at one state transition
type StageOutcome struct {
	Stage  State
	Status StageStatus
	Reason string
}

// Renderer writes the report document
type Renderer interface {
	Render(results []contracts.ScreeningResult, meta contracts.ReportMeta) (string, error)
}

// Exporter writes an optional secondary export
type Exporter interface {
	Export(results []contracts.ScreeningResult, meta contracts.ReportMeta) (string, error)
}

// Deliverer sends a run's results to the chat channel
type Deliverer interface {
	Deliver(ctx context.Context, reportPath string, results []contracts.ScreeningResult, meta contracts.ReportMeta) notify.DeliveryReport
}

// RunConfig holds configuration for a single run
type RunConfig struct {
	RunID     string    // generated when empty
	Now       time.Time // evaluation time, time.Now() when zero
	DryRun    bool      // skip notification stages
	CSVExport bool
}

// RunResult holds the results of a run
type RunResult struct {
	RunID          string
	Date           time.Time
	State          State
	Expiration     string
	Results        []contracts.ScreeningResult // highest yield first
	ReportPath     string
	CSVPath        string
	Stages         []StageOutcome
	Delivery       *notify.DeliveryReport
	SkippedSymbols []string
	Duration       time.Duration
}

// Stage returns the outcome recorded for stage
func (r *RunResult) Stage(stage State) (StageOutcome, bool) {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s, true
		}
	}
	return StageOutcome{}, false
}

// Orchestrator runs one screening pass end to end
// ⭐ SSOT: 실행 순서 조율은 여기서만
type Orchestrator struct {
	config    *config.Config
	source    contracts.MarketDataSource
	watchlist *watchlist.Watchlist
	screener  *selection.Screener
	renderer  Renderer
	exporter  Exporter
	notifier  Deliverer
	logger    *logger.Logger
}

// NewOrchestrator creates a new orchestrator. exporter may be nil.
func NewOrchestrator(
	cfg *config.Config,
	source contracts.MarketDataSource,
	wl *watchlist.Watchlist,
	screener *selection.Screener,
	renderer Renderer,
	exporter Exporter,
	notifier Deliverer,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		config:    cfg,
		source:    source,
		watchlist: wl,
		screener:  screener,
		renderer:  renderer,
		exporter:  exporter,
		notifier:  notifier,
		logger:    log,
	}
}

// Run executes INIT → FILTERED → RENDERED → SUMMARY_SENT → UPLOADED → FILE_SENT → DONE.
// Only configuration and render failures are returned as errors. Delivery
// problems are recorded in RunResult.Stages.
func (o *Orchestrator) Run(ctx context.Context, rc RunConfig) (*RunResult, error) {
	startTime := time.Now()

	if rc.RunID == "" {
		rc.RunID = uuid.NewString()
	}
	if rc.Now.IsZero() {
		rc.Now = time.Now()
	}

	result := &RunResult{
		RunID:  rc.RunID,
		Date:   rc.Now,
		State:  StateInit,
		Stages: make([]StageOutcome, 0, 5),
	}
	log := o.logger.WithField("run_id", rc.RunID)

	if o.config == nil || o.config.WeCom.WebhookURL == "" {
		return result, config.ErrMissingWebhook
	}

	log.WithFields(map[string]interface{}{
		"date":      rc.Now.Format("2006-01-02"),
		"tickers":   len(o.watchlist.Tickers),
		"min_yield": o.screener.Config().MinMonthlyYield,
		"dry_run":   rc.DryRun,
	}).Info("Starting screening run")

	// FILTERED
	result.Expiration = marketdata.MonthEndExpiration(rc.Now, o.config.Screening.ExpiryMinDays)
	results, skippedSymbols := o.screenAll(ctx, log, result.Expiration, rc.Now)
	result.Results = selection.SortByYield(results)
	result.SkippedSymbols = skippedSymbols
	result.State = StateFiltered

	log.WithFields(map[string]interface{}{
		"expiration": result.Expiration,
		"qualifying": len(result.Results),
		"skipped":    len(skippedSymbols),
	}).Info("Screening completed")

	if len(result.Results) == 0 {
		log.Info("No qualifying options, nothing to report")
		for _, stage := range []State{StateRendered, StateSummarySent, StateUploaded, StateFileSent} {
			result.skip(stage, "no qualifying options")
		}
		return o.finish(log, result, startTime), nil
	}

	meta := contracts.ReportMeta{
		GeneratedAt:     rc.Now,
		MinMonthlyYield: o.screener.Config().MinMonthlyYield,
	}

	// RENDERED
	path, err := o.renderer.Render(result.Results, meta)
	if err != nil {
		result.Stages = append(result.Stages, StageOutcome{Stage: StateRendered, Status: StageFailed, Reason: err.Error()})
		result.Duration = time.Since(startTime)
		return result, fmt.Errorf("render report: %w", err)
	}
	result.ReportPath = path
	result.State = StateRendered
	result.Stages = append(result.Stages, StageOutcome{Stage: StateRendered, Status: StageDone})

	if rc.CSVExport && o.exporter != nil {
		csvPath, err := o.exporter.Export(result.Results, meta)
		if err != nil {
			log.WithError(err).Warn("CSV export failed")
		} else {
			result.CSVPath = csvPath
		}
	}

	if rc.DryRun {
		for _, stage := range []State{StateSummarySent, StateUploaded, StateFileSent} {
			result.skip(stage, "dry run")
		}
		return o.finish(log, result, startTime), nil
	}

	// SUMMARY_SENT → UPLOADED → FILE_SENT
	delivery := o.notifier.Deliver(ctx, path, result.Results, meta)
	result.Delivery = &delivery
	for _, pair := range []struct {
		step  notify.Step
		stage State
	}{
		{notify.StepSummary, StateSummarySent},
		{notify.StepUpload, StateUploaded},
		{notify.StepFile, StateFileSent},
	} {
		outcome, ok := delivery.Outcome(pair.step)
		if !ok {
			result.skip(pair.stage, "not attempted")
			continue
		}
		result.Stages = append(result.Stages, toStage(pair.stage, outcome))
		result.State = pair.stage
	}

	return o.finish(log, result, startTime), nil
}

func (o *Orchestrator) screenAll(
	ctx context.Context,
	log *logger.Logger,
	expiration string,
	now time.Time,
) ([]contracts.ScreeningResult, []string) {
	all := make([]contracts.ScreeningResult, 0)
	skipped := make([]string, 0)

	for _, symbol := range o.watchlist.Symbols() {
		chain, err := o.source.OptionChain(ctx, symbol, expiration)
		if err != nil {
			log.WithError(err).WithField("symbol", symbol).Warn("Option chain unavailable, skipping ticker")
			skipped = append(skipped, symbol)
			continue
		}

		results, err := o.screener.Screen(chain.Quote, chain.Puts, chain.Expiration, now)
		if err != nil {
			log.WithError(err).WithField("symbol", symbol).Warn("Screening failed, skipping ticker")
			skipped = append(skipped, symbol)
			continue
		}

		all = append(all, results...)
	}

	return all, skipped
}

func (o *Orchestrator) finish(log *logger.Logger, result *RunResult, startTime time.Time) *RunResult {
	result.State = StateDone
	result.Duration = time.Since(startTime)

	fields := map[string]interface{}{
		"qualifying": len(result.Results),
		"duration":   result.Duration.String(),
	}
	for _, s := range result.Stages {
		fields[string(s.Stage)] = string(s.Status)
	}
	log.WithFields(fields).Info("Screening run finished")

	return result
}

func (r *RunResult) skip(stage State, reason string) {
	r.Stages = append(r.Stages, StageOutcome{Stage: stage, Status: StageSkipped, Reason: reason})
}

func toStage(stage State, o notify.StepOutcome) StageOutcome {
	status := StageDone
	switch o.Status {
	case notify.StatusFailed:
		status = StageFailed
	case notify.StatusSkipped:
		status = StageSkipped
	}
	return StageOutcome{Stage: stage, Status: status, Reason: o.Reason}
}
