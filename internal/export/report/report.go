// Package report assembles the human and machine readable summaries of an
// export run: the final summary text, the replayable structured log stream,
// and troubleshooting hints derived from the failure.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robbyt/go-loglater"
)

// Totals counts the reconciliation outcome per category.
type Totals struct {
	New              int `json:"new"`
	Updated          int `json:"updated"`
	Unchanged        int `json:"unchanged"`
	Deleted          int `json:"deleted"`
	SkippedProtected int `json:"skipped_protected"`
}

// Report is the final record of one export run.
type Report struct {
	RunID     string        `json:"run_id"`
	VaultPath string        `json:"vault_path"`
	DestPath  string        `json:"dest_path"`
	State     string        `json:"state"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"-"`
	Totals    Totals        `json:"totals"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// Succeeded reports whether the run finished without errors.
func (r *Report) Succeeded() bool {
	return len(r.Errors) == 0 && r.State == "Done"
}

// Summary renders the deterministic plain-text summary of the run. The same
// report always produces the same text, so it is safe to assert on in tests
// and to diff between CI runs.
func (r *Report) Summary() string {
	var b strings.Builder

	status := "FAILED"
	if r.Succeeded() {
		status = "OK"
	} else if r.State == "Cancelled" {
		status = "CANCELLED"
	}

	fmt.Fprintf(&b, "export %s: %s\n", r.RunID, status)
	fmt.Fprintf(&b, "  vault:    %s\n", r.VaultPath)
	fmt.Fprintf(&b, "  dest:     %s\n", r.DestPath)
	fmt.Fprintf(&b, "  duration: %s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "  files:    %d new, %d updated, %d unchanged, %d deleted",
		r.Totals.New, r.Totals.Updated, r.Totals.Unchanged, r.Totals.Deleted)
	if r.Totals.SkippedProtected > 0 {
		fmt.Fprintf(&b, ", %d protected", r.Totals.SkippedProtected)
	}
	b.WriteByte('\n')

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  warning:  %s\n", w)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  error:    %s\n", e)
	}
	return b.String()
}

// MarshalJSON emits the report with the duration in milliseconds, which is
// friendlier for downstream tooling than Go's nanosecond default. The
// Duration field is excluded from the embedded marshal so duration_ms is
// the only duration key in the output.
func (r *Report) MarshalJSON() ([]byte, error) {
	type alias Report
	return json.Marshal(struct {
		*alias
		DurationMS int64 `json:"duration_ms"`
	}{
		alias:      (*alias)(r),
		DurationMS: r.Duration.Milliseconds(),
	})
}

// DumpLogs replays the collected run logs as newline-delimited JSON. The
// collector records every log emitted during the run, so the dump is a
// complete trace regardless of the live handler's level.
func DumpLogs(collector *loglater.LogCollector) ([]byte, error) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	if err := collector.PlayLogs(handler); err != nil {
		return nil, fmt.Errorf("failed to replay run logs: %w", err)
	}
	return buf.Bytes(), nil
}
