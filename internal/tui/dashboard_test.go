package tui

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests

	newModel := func(t *testing.T, cancel context.CancelFunc) *Model {
		t.Helper()
		return New(100, [2]string{"Alice", "Bob"},
			WithLogger(logger),
			WithClock(quartz.NewMock(t)),
			WithCancel(cancel))
	}

	t.Run("progress and tally render", func(t *testing.T) {
		m := newModel(t, nil)

		updated, _ := m.Update(ProgressMsg{Done: 42, Total: 100})
		m = updated.(*Model)
		for _, winner := range []string{"Alice", "Alice", "Bob"} {
			updated, _ = m.Update(OutcomeMsg{Winner: winner})
			m = updated.(*Model)
		}

		view := m.View()
		assert.Contains(t, view, "Simulating 100 cribbage games")
		assert.Contains(t, view, "42/100")
		assert.Contains(t, view, "Alice 2 • Bob 1")
	})

	t.Run("done quits with a final frame", func(t *testing.T) {
		m := newModel(t, nil)

		updated, cmd := m.Update(DoneMsg{})
		m = updated.(*Model)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)

		view := m.View()
		assert.Contains(t, view, "Simulated 100 cribbage games")
		assert.NotContains(t, view, "abort")
	})

	t.Run("failure shows on the final frame", func(t *testing.T) {
		m := newModel(t, nil)

		updated, _ := m.Update(DoneMsg{Err: errors.New("boom")})
		m = updated.(*Model)
		assert.Contains(t, m.View(), "Simulation failed: boom")
	})

	t.Run("abort cancels the run", func(t *testing.T) {
		cancelled := false
		m := newModel(t, func() { cancelled = true })

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m = updated.(*Model)
		assert.True(t, cancelled)
		assert.Nil(t, cmd)
		assert.Contains(t, m.View(), "Aborting")

		// A second press forces the quit.
		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
	})

	t.Run("aborted run is not reported as a failure", func(t *testing.T) {
		m := newModel(t, func() {})

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m = updated.(*Model)
		updated, _ = m.Update(DoneMsg{Err: context.Canceled})
		m = updated.(*Model)

		view := m.View()
		assert.Contains(t, view, "Simulation aborted")
		assert.NotContains(t, view, "failed")
	})

	t.Run("unknown winners are ignored", func(t *testing.T) {
		m := newModel(t, nil)

		updated, _ := m.Update(OutcomeMsg{Winner: "Mallory"})
		m = updated.(*Model)
		assert.Contains(t, m.View(), "Alice 0 • Bob 0")
	})
}
