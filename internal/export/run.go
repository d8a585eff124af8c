// Package export orchestrates a full export run: destination and vault
// validation, rendering, reconciliation against the previous manifest, and
// writing the output. Each run is a one-shot saga tracked by a finite state
// machine, with its logs collected for later playback.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-loglater"

	"github.com/atlanticdynamic/vaultlight/internal/config"
	"github.com/atlanticdynamic/vaultlight/internal/export/finitestate"
	"github.com/atlanticdynamic/vaultlight/internal/export/index"
	"github.com/atlanticdynamic/vaultlight/internal/export/render"
	"github.com/atlanticdynamic/vaultlight/internal/export/report"
	"github.com/atlanticdynamic/vaultlight/internal/vault"
)

// Run represents the complete lifecycle of one export.
type Run struct {
	// ID is the unique identifier for this run
	ID uuid.UUID

	VaultPath string
	DestPath  string
	Config    config.Config
	CreatedAt time.Time

	// State management
	fsm finitestate.Machine

	// Logging with history tracking
	logger       *slog.Logger
	logCollector *loglater.LogCollector

	// Collaborators
	renderer  render.Renderer
	validator *vault.Validator

	cleanOrphans bool
	executed     atomic.Bool
}

// Option configures a Run.
type Option func(*Run)

// WithRenderer replaces the default markdown renderer.
func WithRenderer(r render.Renderer) Option {
	return func(run *Run) {
		run.renderer = r
	}
}

// WithVaultValidator replaces the default vault validator.
func WithVaultValidator(v *vault.Validator) Option {
	return func(run *Run) {
		run.validator = v
	}
}

// WithCleanOrphans controls whether files deleted from the vault are also
// removed from the destination. Enabled by default.
func WithCleanOrphans(enabled bool) Option {
	return func(run *Run) {
		run.cleanOrphans = enabled
	}
}

// NewRun creates a new export run for the given vault and destination.
func NewRun(
	vaultPath, destPath string,
	cfg config.Config,
	handler slog.Handler,
	opts ...Option,
) (*Run, error) {
	runID := uuid.Must(uuid.NewV6())

	sm, err := finitestate.New(handler)
	if err != nil {
		return nil, fmt.Errorf("%s failed to create state machine: %w", runID, err)
	}

	// Set up logger with the loglater history collector and run metadata
	logCollector := loglater.NewLogCollector(handler)
	logger := slog.New(logCollector).With(
		"id", runID,
		"vault", vaultPath,
		"dest", destPath)

	run := &Run{
		ID:           runID,
		VaultPath:    vaultPath,
		DestPath:     destPath,
		Config:       cfg,
		CreatedAt:    time.Now(),
		fsm:          sm,
		logger:       logger,
		logCollector: logCollector,
		cleanOrphans: true,
	}
	for _, opt := range opts {
		opt(run)
	}
	if run.renderer == nil {
		run.renderer = render.NewMarkdownRenderer(render.WithLogger(logger))
	}
	if run.validator == nil {
		run.validator = vault.NewValidator(vault.WithLogger(logger))
	}

	run.logger.Info("Export run created")
	return run, nil
}

// GetState returns the current lifecycle state of the run.
func (r *Run) GetState() string {
	return r.fsm.GetState()
}

// PlaybackLogs plays back the run logs to the given handler.
func (r *Run) PlaybackLogs(handler slog.Handler) error {
	return r.logCollector.PlayLogs(handler)
}

// LogCollector exposes the run's log history for reporting.
func (r *Run) LogCollector() *loglater.LogCollector {
	return r.logCollector
}

// GetTotalDuration returns the total duration of the run so far.
func (r *Run) GetTotalDuration() time.Duration {
	return time.Since(r.CreatedAt)
}

// Execute drives the run through its lifecycle. The returned report is
// always non-nil once execution starts; on failure it carries the error
// alongside the error return. A Run can only execute once.
func (r *Run) Execute(ctx context.Context) (*report.Report, error) {
	if !r.executed.CompareAndSwap(false, true) {
		return nil, ErrRunConsumed
	}

	rep := &report.Report{
		RunID:     r.ID.String(),
		VaultPath: r.VaultPath,
		DestPath:  r.DestPath,
		StartedAt: time.Now(),
	}
	defer func() {
		rep.State = r.fsm.GetState()
		rep.Duration = time.Since(rep.StartedAt)
	}()

	if err := r.transition(finitestate.StateValidating); err != nil {
		return r.fail(rep, err)
	}
	files, err := r.validate(rep)
	if err != nil {
		return r.fail(rep, err)
	}
	if err := ctx.Err(); err != nil {
		return r.cancel(rep, err)
	}

	if err := r.transition(finitestate.StateBuilding); err != nil {
		return r.fail(rep, err)
	}
	out, err := r.build(ctx, files)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return r.cancel(rep, err)
		}
		return r.fail(rep, err)
	}
	if err := ctx.Err(); err != nil {
		return r.cancel(rep, err)
	}

	if err := r.transition(finitestate.StateReconciling); err != nil {
		return r.fail(rep, err)
	}
	previous := index.Load(r.DestPath, r.logger)
	current := manifestFor(out, r.ID.String())
	changes := index.Diff(previous, current)
	rep.Totals = report.Totals{
		New:              len(changes.New),
		Updated:          len(changes.Updated),
		Unchanged:        len(changes.Unchanged),
		Deleted:          len(changes.Deleted),
		SkippedProtected: len(changes.SkippedProtected),
	}
	r.logger.Info("Reconciled against previous run",
		"new", len(changes.New),
		"updated", len(changes.Updated),
		"unchanged", len(changes.Unchanged),
		"deleted", len(changes.Deleted))
	if err := ctx.Err(); err != nil {
		return r.cancel(rep, err)
	}

	if err := r.transition(finitestate.StateWriting); err != nil {
		return r.fail(rep, err)
	}
	if err := r.write(out, current, changes); err != nil {
		return r.fail(rep, err)
	}

	if err := r.transition(finitestate.StateDone); err != nil {
		return r.fail(rep, err)
	}
	r.logger.Info("Export complete",
		"files", changes.Total(),
		"duration", time.Since(rep.StartedAt))
	return rep, nil
}

func (r *Run) transition(state string) error {
	if err := r.fsm.Transition(state); err != nil {
		return fmt.Errorf("failed to enter %s: %w", state, err)
	}
	r.logger.Debug("Phase started", "state", state)
	return nil
}

// fail funnels every error path through a single place: the state machine
// moves to Failed and the report records the cause.
func (r *Run) fail(rep *report.Report, err error) (*report.Report, error) {
	r.fsm.TransitionBool(finitestate.StateFailed)
	rep.Errors = append(rep.Errors, err.Error())
	r.logger.Error("Export failed", "state", finitestate.StateFailed, "error", err)
	return rep, err
}

// cancel ends the run in the neutral Cancelled state. Interruption is not a
// failure: nothing is recorded as an error beyond the returned cause.
func (r *Run) cancel(rep *report.Report, err error) (*report.Report, error) {
	r.fsm.TransitionBool(finitestate.StateCancelled)
	r.logger.Info("Export cancelled", "cause", err)
	return rep, err
}
