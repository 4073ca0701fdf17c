package notify

import (
	"context"

	"github.com/wonny/putscreener/internal/contracts"
	"github.com/wonny/putscreener/pkg/logger"
)

// Step identifies one delivery step
type Step string

const (
	StepSummary Step = "summary"
	StepUpload  Step = "upload"
	StepFile    Step = "file"
)

// Status is the outcome of a delivery step
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepOutcome records what happened to one step
type StepOutcome struct {
	Step   Step
	Status Status
	Reason string // empty on success
}

// DeliveryReport lists step outcomes in execution order
type DeliveryReport struct {
	Outcomes []StepOutcome
	MediaID  string
}

// Outcome returns the outcome recorded for step
func (r DeliveryReport) Outcome(step Step) (StepOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Step == step {
			return o, true
		}
	}
	return StepOutcome{}, false
}

// Degraded reports whether any step did not succeed
func (r DeliveryReport) Degraded() bool {
	for _, o := range r.Outcomes {
		if o.Status != StatusOK {
			return true
		}
	}
	return false
}

// Robot is the chat endpoint the notifier delivers to
type Robot interface {
	SendMarkdown(ctx context.Context, content string) error
	UploadMedia(ctx context.Context, path string) (string, error)
	SendFile(ctx context.Context, mediaID string) error
}

// Notifier delivers a run's summary and report file. Delivery is best effort:
// failures are recorded per step and never returned as errors.
type Notifier struct {
	robot  Robot
	logger *logger.Logger
}

// NewNotifier creates a notifier over robot
func NewNotifier(robot Robot, log *logger.Logger) *Notifier {
	return &Notifier{robot: robot, logger: log}
}

// Deliver sends the summary, then uploads reportPath and posts it as a file.
// A failed summary does not stop the upload. A failed upload skips the file message.
func (n *Notifier) Deliver(
	ctx context.Context,
	reportPath string,
	results []contracts.ScreeningResult,
	meta contracts.ReportMeta,
) DeliveryReport {
	var rep DeliveryReport

	// 1. 요약 메시지
	if err := n.robot.SendMarkdown(ctx, FormatSummary(results, meta)); err != nil {
		n.logger.WithError(err).Warn("Summary message failed")
		rep.Outcomes = append(rep.Outcomes, failed(StepSummary, err))
	} else {
		n.logger.Info("Summary message sent")
		rep.Outcomes = append(rep.Outcomes, StepOutcome{Step: StepSummary, Status: StatusOK})
	}

	if reportPath == "" {
		rep.Outcomes = append(rep.Outcomes,
			skipped(StepUpload, "no report file"),
			skipped(StepFile, "no report file"))
		return rep
	}

	// 2. 파일 업로드
	mediaID, err := n.robot.UploadMedia(ctx, reportPath)
	if err != nil {
		n.logger.WithError(err).Warn("Report upload failed, file message skipped")
		rep.Outcomes = append(rep.Outcomes,
			failed(StepUpload, err),
			skipped(StepFile, "upload failed"))
		return rep
	}
	rep.MediaID = mediaID
	rep.Outcomes = append(rep.Outcomes, StepOutcome{Step: StepUpload, Status: StatusOK})

	// 3. 파일 메시지
	if err := n.robot.SendFile(ctx, mediaID); err != nil {
		n.logger.WithError(err).Warn("File message failed")
		rep.Outcomes = append(rep.Outcomes, failed(StepFile, err))
		return rep
	}
	n.logger.Info("Report file sent")
	rep.Outcomes = append(rep.Outcomes, StepOutcome{Step: StepFile, Status: StatusOK})

	return rep
}

func failed(step Step, err error) StepOutcome {
	return StepOutcome{Step: step, Status: StatusFailed, Reason: err.Error()}
}

func skipped(step Step, reason string) StepOutcome {
	return StepOutcome{Step: step, Status: StatusSkipped, Reason: reason}
}
