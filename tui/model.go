package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-rytm/host"
	"go-rytm/theme"
)

const statusRate = time.Second

// Options tune the console. Status reports the connected device, nil means
// the console runs offline.
type Options struct {
	History int
	Status  func() (string, bool)
}

type keyMap struct {
	Run   key.Binding
	Prev  key.Binding
	Next  key.Binding
	Clear key.Binding
	Quit  key.Binding
}

func bind(help string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
}

func defaultKeys() keyMap {
	return keyMap{
		Run:   bind("run", "enter"),
		Prev:  bind("previous", "up"),
		Next:  bind("next", "down"),
		Clear: bind("clear", "ctrl+l"),
		Quit:  bind("quit", "esc", "ctrl+c"),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Prev, k.Next, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// entry is one command and what it printed
type entry struct {
	line   string
	result host.Result
}

type Model struct {
	Host  *host.Host
	Theme *theme.Theme

	status func() (string, bool)
	input  textinput.Model
	help   help.Model
	keys   keyMap

	entries []entry
	limit   int

	// recall walks previously run lines, len(recall) is the empty prompt
	recall    []string
	recallPos int

	device    string
	connected bool
	running   bool
	height    int
	quitting  bool
}

type resultMsg entry

type statusMsg struct {
	device    string
	connected bool
}

func NewModel(h *host.Host, th *theme.Theme, opts Options) Model {
	if th == nil {
		th = theme.New(nil)
	}
	ti := textinput.New()
	ti.Prompt = "rytm> "
	ti.PromptStyle = th.Prompt
	ti.TextStyle = th.Input
	ti.Placeholder = "get kit_wb name"
	ti.Focus()

	return Model{
		Host:   h,
		Theme:  th,
		status: opts.Status,
		input:  ti,
		help:   help.New(),
		keys:   defaultKeys(),
		limit:  opts.History,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.pollStatus())
}

func (m Model) pollStatus() tea.Cmd {
	if m.status == nil {
		return nil
	}
	status := m.status
	return tea.Tick(statusRate, func(time.Time) tea.Msg {
		device, ok := status()
		return statusMsg{device: device, connected: ok}
	})
}

func (m Model) run(line string) tea.Cmd {
	h := m.Host
	return func() tea.Msg {
		return resultMsg{line: line, result: h.ExecLine(context.Background(), line)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Run):
			line := strings.TrimSpace(m.input.Value())
			if line == "" || m.running {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.recall = append(m.recall, line)
			m.recallPos = len(m.recall)
			m.input.SetValue("")
			m.running = true
			return m, m.run(line)

		case key.Matches(msg, m.keys.Prev):
			if m.recallPos > 0 {
				m.recallPos--
				m.input.SetValue(m.recall[m.recallPos])
				m.input.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if m.recallPos < len(m.recall) {
				m.recallPos++
			}
			if m.recallPos == len(m.recall) {
				m.input.SetValue("")
			} else {
				m.input.SetValue(m.recall[m.recallPos])
				m.input.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.entries = nil
			return m, nil
		}

	case resultMsg:
		m.running = false
		m.entries = append(m.entries, entry(msg))
		if m.limit > 0 && len(m.entries) > m.limit {
			m.entries = m.entries[len(m.entries)-m.limit:]
		}
		return m, nil

	case statusMsg:
		m.device, m.connected = msg.device, msg.connected
		return m, m.pollStatus()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) renderEntry(e entry) string {
	t := m.Theme
	line := t.Muted.Render("> ") + t.Input.Render(e.line)

	var out string
	switch e.result.Status {
	case host.StatusError:
		out = t.Error.Render(e.result.Text())
	case host.StatusWarning:
		out = t.Warning.Render(e.result.Text())
	default:
		if text := e.result.Text(); text == "ok" {
			out = t.Ok.Render(text)
		} else {
			out = t.Reply.Render(text)
		}
	}
	return line + "\n" + out
}

func (m Model) statusLine() string {
	device := "offline"
	if m.status != nil {
		device = "no device"
	}
	if m.connected {
		device = m.device
	}
	busy := ""
	if m.running {
		busy = "  running"
	}
	return m.Theme.Status.Render(fmt.Sprintf("go-rytm  %s%s", device, busy))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.Theme.Title.Render("go-rytm") + "  " + m.Theme.Muted.Render("Analog Rytm console")
	footer := lipgloss.JoinVertical(lipgloss.Left,
		m.input.View(),
		m.statusLine(),
		m.help.View(m.keys),
	)

	rendered := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		rendered = append(rendered, m.renderEntry(e))
	}

	// Keep the newest entries that fit between header and footer
	if m.height > 0 {
		room := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
		used := 0
		start := len(rendered)
		for start > 0 {
			h := lipgloss.Height(rendered[start-1])
			if used+h > room {
				break
			}
			used += h
			start--
		}
		rendered = rendered[start:]
	}

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n\n")
	for _, r := range rendered {
		out.WriteString(r)
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(footer)
	return out.String()
}
