package tui

import (
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rytm/api"
	"go-rytm/host"
)

func newModel(history int) Model {
	quiet := slog.New(slog.DiscardHandler)
	h := host.New(api.New(nil, api.Config{Logger: quiet}), nil, quiet)
	return NewModel(h, nil, Options{History: history})
}

// submit types line, presses enter and feeds the command result back
func submit(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = next.(Model)
	assert.True(t, m.running)

	next, _ = m.Update(cmd())
	return next.(Model)
}

func TestRunLine(t *testing.T) {
	m := newModel(10)
	m = submit(t, m, "set kit 2 name SNARES")
	m = submit(t, m, "get kit 2 name")

	require.Len(t, m.entries, 2)
	assert.False(t, m.running)
	assert.Equal(t, host.StatusOk, m.entries[1].result.Status)
	assert.Equal(t, "2 name SNARES", m.entries[1].result.Text())
	assert.Contains(t, m.View(), "2 name SNARES")
	assert.Empty(t, m.input.Value())
}

func TestErrorsAreShown(t *testing.T) {
	m := submit(t, newModel(10), "get kit 99 name")

	require.Len(t, m.entries, 1)
	assert.Equal(t, host.StatusError, m.entries[0].result.Status)
	assert.Contains(t, m.View(), m.entries[0].result.Err.Error())
}

func TestHistoryLimit(t *testing.T) {
	m := newModel(2)
	for _, line := range []string{"get kit 0 name", "get kit 1 name", "get kit 2 name"} {
		m = submit(t, m, line)
	}

	require.Len(t, m.entries, 2)
	assert.Equal(t, "get kit 1 name", m.entries[0].line)
	assert.Equal(t, "get kit 2 name", m.entries[1].line)
}

func TestRecall(t *testing.T) {
	m := newModel(10)
	m = submit(t, m, "get kit 0 name")
	m = submit(t, m, "get kit 1 name")

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	next, _ := m.Update(up)
	m = next.(Model)
	assert.Equal(t, "get kit 1 name", m.input.Value())

	next, _ = m.Update(up)
	m = next.(Model)
	assert.Equal(t, "get kit 0 name", m.input.Value())

	next, _ = m.Update(up)
	m = next.(Model)
	assert.Equal(t, "get kit 0 name", m.input.Value())

	next, _ = m.Update(down)
	next, _ = next.(Model).Update(down)
	m = next.(Model)
	assert.Empty(t, m.input.Value())
}

func TestEmptyLineIsIgnored(t *testing.T) {
	m := newModel(10)
	m.input.SetValue("   ")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, next.(Model).entries)
}

func TestStatus(t *testing.T) {
	m := newModel(10)
	assert.Contains(t, m.statusLine(), "offline")

	m.status = func() (string, bool) { return "Elektron Analog Rytm", true }
	next, cmd := m.Update(statusMsg{device: "Elektron Analog Rytm", connected: true})
	assert.NotNil(t, cmd)
	assert.Contains(t, next.(Model).statusLine(), "Elektron Analog Rytm")
}

func TestQuit(t *testing.T) {
	m := newModel(10)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.(Model).View())
}
