// Package finitestate provides the finite state machine that tracks the
// lifecycle of an export run.
//
// Export Lifecycle:
//  1. Idle - Run created, nothing started yet
//  2. Validating - Destination and vault checks in progress
//  3. Building - Renderer producing the output set
//  4. Reconciling - Diffing against the previous manifest
//  5. Writing - Output files and manifests going to disk
//  6. Done - Export completed (terminal state)
//
// Terminal outcomes:
// - Failed - An unrecoverable error occurred in any phase
// - Cancelled - The run was interrupted; neither success nor failure
package finitestate

import (
	"context"
	"log/slog"

	"github.com/robbyt/go-fsm"
)

// State constants for the export lifecycle
const (
	StateIdle        = "Idle"
	StateValidating  = "Validating"
	StateBuilding    = "Building"
	StateReconciling = "Reconciling"
	StateWriting     = "Writing"
	StateDone        = "Done"
	StateFailed      = "Failed"
	StateCancelled   = "Cancelled"
)

// ExportTransitions defines the valid state transitions for an export run.
var ExportTransitions = map[string][]string{
	StateIdle:        {StateValidating, StateFailed, StateCancelled},
	StateValidating:  {StateBuilding, StateFailed, StateCancelled},
	StateBuilding:    {StateReconciling, StateFailed, StateCancelled},
	StateReconciling: {StateWriting, StateFailed, StateCancelled},
	StateWriting:     {StateDone, StateFailed, StateCancelled},

	// Terminal states
	StateDone:      {},
	StateFailed:    {},
	StateCancelled: {},
}

// Machine defines the interface for the finite state machine that tracks
// the export run lifecycle.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// TransitionIfCurrentState attempts to transition the state machine to the specified state
	TransitionIfCurrentState(currentState, newState string) error

	// SetState sets the state of the state machine to the specified state.
	SetState(state string) error

	// GetState returns the current state of the state machine.
	GetState() string

	// GetStateChan returns a channel that emits the state machine's state whenever it changes.
	// The channel is closed when the provided context is canceled.
	GetStateChan(ctx context.Context) <-chan string
}

// New creates a new export lifecycle state machine with the specified logger.
func New(handler slog.Handler) (Machine, error) {
	return fsm.New(handler, StateIdle, ExportTransitions)
}

// IsTerminal reports whether the given state has no outgoing transitions.
func IsTerminal(state string) bool {
	return len(ExportTransitions[state]) == 0
}
