package finitestate

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) Machine {
	t.Helper()
	handler := slog.NewTextHandler(os.Stdout, nil)
	machine, err := New(handler)
	require.NoError(t, err)
	return machine
}

func TestNew(t *testing.T) {
	t.Parallel()

	machine := setup(t)
	assert.Equal(t, StateIdle, machine.GetState())
}

func TestExportMachine(t *testing.T) {
	t.Parallel()

	t.Run("happy path flow", func(t *testing.T) {
		machine := setup(t)

		transitions := []string{
			StateValidating,
			StateBuilding,
			StateReconciling,
			StateWriting,
			StateDone,
		}
		for _, state := range transitions {
			err := machine.Transition(state)
			require.NoError(t, err, "Failed to transition to %s", state)
			assert.Equal(t, state, machine.GetState())
		}
	})

	t.Run("failure allowed from every intermediate state", func(t *testing.T) {
		intermediates := []string{
			StateIdle,
			StateValidating,
			StateBuilding,
			StateReconciling,
			StateWriting,
		}
		for _, from := range intermediates {
			machine := setup(t)
			require.NoError(t, machine.SetState(from))
			assert.True(t, machine.TransitionBool(StateFailed),
				"expected %s -> %s to be allowed", from, StateFailed)
		}
	})

	t.Run("cancellation allowed from every intermediate state", func(t *testing.T) {
		intermediates := []string{
			StateIdle,
			StateValidating,
			StateBuilding,
			StateReconciling,
			StateWriting,
		}
		for _, from := range intermediates {
			machine := setup(t)
			require.NoError(t, machine.SetState(from))
			assert.True(t, machine.TransitionBool(StateCancelled),
				"expected %s -> %s to be allowed", from, StateCancelled)
		}
	})

	t.Run("no skipping phases", func(t *testing.T) {
		machine := setup(t)
		assert.False(t, machine.TransitionBool(StateWriting))
		assert.False(t, machine.TransitionBool(StateDone))
		assert.Equal(t, StateIdle, machine.GetState())
	})

	t.Run("terminal states have no exits", func(t *testing.T) {
		for _, terminal := range []string{StateDone, StateFailed, StateCancelled} {
			machine := setup(t)
			require.NoError(t, machine.SetState(terminal))
			assert.True(t, IsTerminal(terminal))
			assert.False(t, machine.TransitionBool(StateValidating))
		}
	})

	t.Run("intermediate states are not terminal", func(t *testing.T) {
		for _, state := range []string{StateIdle, StateValidating, StateBuilding, StateReconciling, StateWriting} {
			assert.False(t, IsTerminal(state), "%s should not be terminal", state)
		}
	})
}
