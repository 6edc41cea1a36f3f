// Package tui shows live progress while the verification pipeline drives
// the solver through its ten runs.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wavecheck/internal/suite"
	"github.com/san-kum/wavecheck/internal/verify"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type eventMsg suite.Event

type doneMsg struct {
	verdict *verify.Verdict
	err     error
}

type model struct {
	totalRuns int
	runsSeen  int
	current   string
	analyzing bool
	done      bool
	err       error
	cancel    context.CancelFunc
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, nil
		}
	case eventMsg:
		switch msg.Phase {
		case suite.PhaseRun:
			m.runsSeen++
			m.current = fmt.Sprintf("wave %s at %d cells", msg.Wave, msg.Resolution)
		case suite.PhaseAnalyze:
			m.analyzing = true
			m.current = fmt.Sprintf("analyzing wave %s", msg.Wave)
		}
		return m, nil
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(cyan.Render("wavecheck") + " " + dim.Render("linear wave convergence") + "\n\n")

	phase := "running solver"
	if m.analyzing {
		phase = "analyzing output"
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", yellow.Render(phase), m.current))
	b.WriteString(fmt.Sprintf("  %s\n", progressBar(m.runsSeen, m.totalRuns)))
	b.WriteString(dim.Render("\n  q to abort\n"))
	return b.String()
}

func progressBar(done, total int) string {
	const width = 30
	if total <= 0 {
		total = 1
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return green.Render(bar) + fmt.Sprintf(" %d/%d runs", done, total)
}

// Run drives the suite under a live progress display and returns its
// verdict once the pipeline finishes or is aborted.
func Run(ctx context.Context, s *suite.Suite, totalRuns int) (*verify.Verdict, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model{totalRuns: totalRuns, cancel: cancel})

	s.OnProgress(func(e suite.Event) {
		p.Send(eventMsg(e))
	})

	var verdict *verify.Verdict
	var runErr error
	go func() {
		verdict, runErr = s.Run(ctx)
		p.Send(doneMsg{verdict: verdict, err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		return nil, err
	}
	return verdict, runErr
}
