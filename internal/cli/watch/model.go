// Package watch is the live proposal dashboard behind `devote watch`.
package watch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devote-org/devote-cli/internal/cli/render"
	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// DefaultInterval is used when Options.Interval is not positive
const DefaultInterval = 15 * time.Second

// FetchFunc aggregates one snapshot of the governor
type FetchFunc func(ctx context.Context) (*usecase.ProposalSnapshot, error)

// Options configures the dashboard
type Options struct {
	Fetch    FetchFunc
	Interval time.Duration
	// Timeout bounds a single fetch; zero means no bound
	Timeout time.Duration
	Network string
	Now     func() time.Time
}

type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Help    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Refresh, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit, k.Refresh, k.Help}}
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh now"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

type (
	tickMsg     time.Time
	snapshotMsg struct{ snapshot *usecase.ProposalSnapshot }
	fetchErrMsg struct{ err error }
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// Model is the bubbletea model for the dashboard. Only tick messages
// schedule the next tick, and at most one fetch runs at a time.
type Model struct {
	ctx  context.Context
	opts Options

	snapshot *usecase.ProposalSnapshot
	err      error
	fetching bool
	quitting bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model
}

// New creates a dashboard that fetches with ctx as parent
func New(ctx context.Context, opts Options) *Model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Model{
		ctx:     ctx,
		opts:    opts,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: s,
	}
}

// Init starts the first fetch and the refresh ticker
func (m *Model) Init() tea.Cmd {
	m.fetching = true
	return tea.Batch(m.spinner.Tick, m.fetchCmd(), tickCmd(m.opts.Interval))
}

// Update handles key presses, ticks and fetch results
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.startFetch()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(tickCmd(m.opts.Interval), m.startFetch())

	case snapshotMsg:
		m.fetching = false
		m.snapshot = msg.snapshot
		m.err = nil
		return m, nil

	case fetchErrMsg:
		m.fetching = false
		// a newer run replaced this one; its result is on the way
		if errors.Is(msg.err, domain.ErrSuperseded) {
			return m, nil
		}
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the header, the last good snapshot and any refresh error
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := titleStyle.Render("devote watch")
	if m.opts.Network != "" {
		header += mutedStyle.Render(" · " + m.opts.Network)
	}
	if m.fetching {
		header += " " + m.spinner.View() + mutedStyle.Render(" refreshing")
	}
	b.WriteString(header + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("⚠ refresh failed: %v", m.err)))
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" (retrying every %s)", m.opts.Interval)))
		b.WriteString("\n\n")
	}

	switch {
	case m.snapshot == nil:
		b.WriteString(mutedStyle.Render("Loading proposals…") + "\n")
	case len(m.snapshot.Proposals) == 0:
		b.WriteString("No proposals found\n")
	default:
		b.WriteString(render.ProposalTable(m.snapshot.Proposals, m.opts.Now(), m.snapshot.Account != nil))
		b.WriteString("\n")
		if stats := m.snapshot.Stats; stats != nil {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("%d proposals, %d active · updated %s",
				stats.TotalProposals, stats.ActiveProposals, m.snapshot.FetchedAt.Format("15:04:05"))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

// startFetch returns nil while a fetch is already running
func (m *Model) startFetch() tea.Cmd {
	if m.fetching {
		return nil
	}
	m.fetching = true
	return m.fetchCmd()
}

func (m *Model) fetchCmd() tea.Cmd {
	ctx, fetch, timeout := m.ctx, m.opts.Fetch, m.opts.Timeout
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		snapshot, err := fetch(ctx)
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return snapshotMsg{snapshot: snapshot}
	}
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
