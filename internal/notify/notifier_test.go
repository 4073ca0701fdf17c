package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/putscreener/internal/contracts"
	"github.com/wonny/putscreener/pkg/logger"
)

type fakeRobot struct {
	markdownErr error
	uploadErr   error
	fileErr     error

	calls    []string
	markdown string
	uploaded string
	mediaID  string
}

func (f *fakeRobot) SendMarkdown(ctx context.Context, content string) error {
	f.calls = append(f.calls, "markdown")
	f.markdown = content
	return f.markdownErr
}

func (f *fakeRobot) UploadMedia(ctx context.Context, path string) (string, error) {
	f.calls = append(f.calls, "upload")
	f.uploaded = path
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "m-1", nil
}

func (f *fakeRobot) SendFile(ctx context.Context, mediaID string) error {
	f.calls = append(f.calls, "file")
	f.mediaID = mediaID
	return f.fileErr
}

var meta = contracts.ReportMeta{
	GeneratedAt:     time.Date(2026, 10, 15, 21, 5, 0, 0, time.UTC),
	MinMonthlyYield: 6,
}

func makeResults(n int) []contracts.ScreeningResult {
	out := make([]contracts.ScreeningResult, n)
	for i := range out {
		out[i] = contracts.ScreeningResult{
			Symbol:       fmt.Sprintf("S%02d", i),
			Expiration:   "2026-11-27",
			Strike:       1200,
			OptionPrice:  80.5,
			MonthlyYield: float64(6 + i),
		}
	}
	return out
}

func statuses(rep DeliveryReport) []Status {
	var out []Status
	for _, o := range rep.Outcomes {
		out = append(out, o.Status)
	}
	return out
}

func TestFormatSummary(t *testing.T) {
	summary := FormatSummary(makeResults(12), meta)

	assert.Contains(t, summary, "2026-10-15 21:05")
	assert.Contains(t, summary, "monthly yield ≥ 6% | month-end expiry")
	assert.Contains(t, summary, "**Found**: 12 qualifying options")
	assert.Contains(t, summary, "Top 10")
	assert.Contains(t, summary, "$1,200")
	assert.Contains(t, summary, "$80.50")
	assert.Contains(t, summary, "**17.00%**")
	assert.Contains(t, summary, "Risk notice")

	// 상위 10개만, 수익률 내림차순
	assert.Contains(t, summary, "**S11**")
	assert.Contains(t, summary, "**S02**")
	assert.NotContains(t, summary, "**S01**")
	assert.NotContains(t, summary, "**S00**")
	assert.Less(t, strings.Index(summary, "**S11**"), strings.Index(summary, "**S02**"))
}

func TestFormatSummary_TableIsMarkdown(t *testing.T) {
	summary := FormatSummary(makeResults(1), meta)

	var tableLines []string
	for _, line := range strings.Split(summary, "\n") {
		if strings.HasPrefix(line, "|") {
			tableLines = append(tableLines, line)
		}
	}
	require.Len(t, tableLines, 3)
	assert.Contains(t, tableLines[0], "Symbol")
	assert.Contains(t, tableLines[1], "---")
	assert.True(t, strings.HasSuffix(tableLines[2], "|"))
}

func TestDeliver_AllSucceed(t *testing.T) {
	robot := &fakeRobot{}
	n := NewNotifier(robot, logger.Nop())

	rep := n.Deliver(context.Background(), "/tmp/put_options_20261015.xlsx", makeResults(2), meta)

	assert.Equal(t, []string{"markdown", "upload", "file"}, robot.calls)
	assert.Equal(t, []Status{StatusOK, StatusOK, StatusOK}, statuses(rep))
	assert.Equal(t, "m-1", rep.MediaID)
	assert.Equal(t, "m-1", robot.mediaID)
	assert.False(t, rep.Degraded())
}

func TestDeliver_SummaryFailureStillUploads(t *testing.T) {
	robot := &fakeRobot{markdownErr: errors.New("timeout")}
	n := NewNotifier(robot, logger.Nop())

	rep := n.Deliver(context.Background(), "/tmp/r.xlsx", makeResults(1), meta)

	assert.Equal(t, []string{"markdown", "upload", "file"}, robot.calls)
	assert.Equal(t, []Status{StatusFailed, StatusOK, StatusOK}, statuses(rep))
	assert.True(t, rep.Degraded())

	o, ok := rep.Outcome(StepSummary)
	require.True(t, ok)
	assert.Equal(t, "timeout", o.Reason)
}

func TestDeliver_UploadFailureSkipsFile(t *testing.T) {
	robot := &fakeRobot{uploadErr: errors.New("errcode 93000")}
	n := NewNotifier(robot, logger.Nop())

	rep := n.Deliver(context.Background(), "/tmp/r.xlsx", makeResults(1), meta)

	assert.Equal(t, []string{"markdown", "upload"}, robot.calls)
	assert.Equal(t, []Status{StatusOK, StatusFailed, StatusSkipped}, statuses(rep))
	assert.Empty(t, rep.MediaID)
}

func TestDeliver_FileFailure(t *testing.T) {
	robot := &fakeRobot{fileErr: errors.New("boom")}
	n := NewNotifier(robot, logger.Nop())

	rep := n.Deliver(context.Background(), "/tmp/r.xlsx", makeResults(1), meta)

	assert.Equal(t, []Status{StatusOK, StatusOK, StatusFailed}, statuses(rep))
}

func TestDeliver_NoReportPath(t *testing.T) {
	robot := &fakeRobot{}
	n := NewNotifier(robot, logger.Nop())

	rep := n.Deliver(context.Background(), "", makeResults(1), meta)

	assert.Equal(t, []string{"markdown"}, robot.calls)
	assert.Equal(t, []Status{StatusOK, StatusSkipped, StatusSkipped}, statuses(rep))
}
