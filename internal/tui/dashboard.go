package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// ProgressMsg reports how many games have completed.
type ProgressMsg struct {
	Done  int
	Total int
}

// OutcomeMsg carries one game's winner for the running tally.
type OutcomeMsg struct {
	Winner string
}

// DoneMsg ends the dashboard when the run finishes. A non-nil Err is
// shown on the final frame; the caller still owns handling it.
type DoneMsg struct {
	Err error
}

type tickMsg time.Time

// Model is the Bubble Tea model for the simulation dashboard. The
// simulation runs elsewhere and feeds the model Progress, Outcome and
// Done messages through Program.Send.
type Model struct {
	logger *log.Logger
	clock  quartz.Clock
	cancel context.CancelFunc

	names [2]string
	wins  [2]int
	done  int
	total int
	start time.Time
	err   error

	prog     progress.Model
	spin     spinner.Model
	width    int
	aborting bool
	finished bool
}

// Option configures the dashboard model.
type Option func(*Model)

// WithLogger sets the logger used for dashboard diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		m.logger = logger.WithPrefix("tui")
	}
}

// WithClock injects the clock behind the games/sec readout.
func WithClock(clock quartz.Clock) Option {
	return func(m *Model) {
		m.clock = clock
	}
}

// WithCancel wires the abort keys to the given cancel function.
func WithCancel(cancel context.CancelFunc) Option {
	return func(m *Model) {
		m.cancel = cancel
	}
}

// New creates a dashboard model for a run of total games.
func New(total int, names [2]string, opts ...Option) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = HeaderStyle

	m := &Model{
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
		names:  names,
		total:  total,
		prog:   progress.New(progress.WithDefaultGradient()),
		spin:   sp,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.start = m.clock.Now()
	return m
}

// Init starts the spinner and the refresh tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages in the dashboard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 30
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		m.prog.Width = w

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if m.aborting {
				// Second press quits without waiting for workers.
				return m, tea.Quit
			}
			m.aborting = true
			m.logger.Debug("abort requested")
			if m.cancel != nil {
				m.cancel()
			}
		}

	case ProgressMsg:
		m.done = msg.Done
		m.total = msg.Total

	case OutcomeMsg:
		switch msg.Winner {
		case m.names[0]:
			m.wins[0]++
		case m.names[1]:
			m.wins[1]++
		}

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m *Model) View() string {
	var sb strings.Builder

	switch {
	case m.finished && m.err != nil:
		if m.aborting {
			sb.WriteString(ErrorStyle.Render("Simulation aborted"))
		} else {
			sb.WriteString(ErrorStyle.Render("Simulation failed: " + m.err.Error()))
		}
		sb.WriteString("\n")
		return sb.String()
	case m.finished:
		sb.WriteString(HeaderStyle.Render(fmt.Sprintf("Simulated %d cribbage games", m.total)))
	case m.aborting:
		sb.WriteString(ErrorStyle.Render("Aborting, waiting for workers to stop"))
	default:
		sb.WriteString(m.spin.View())
		sb.WriteString(" ")
		sb.WriteString(HeaderStyle.Render(fmt.Sprintf("Simulating %d cribbage games", m.total)))
	}
	sb.WriteString("\n\n")

	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	sb.WriteString(m.prog.ViewAs(pct))
	sb.WriteString(fmt.Sprintf(" %d/%d", m.done, m.total))
	if rate := m.rate(); rate > 0 {
		sb.WriteString(RateStyle.Render(fmt.Sprintf(" • %.0f games/sec", rate)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(TallyStyle.Render(fmt.Sprintf("%s %d • %s %d",
		m.names[0], m.wins[0], m.names[1], m.wins[1])))
	sb.WriteString("\n")

	if !m.finished {
		sb.WriteString(HelpStyle.Render("q or ctrl+c to abort"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model) rate() float64 {
	elapsed := m.clock.Now().Sub(m.start)
	if elapsed <= 0 || m.done == 0 {
		return 0
	}
	return float64(m.done) / elapsed.Seconds()
}
