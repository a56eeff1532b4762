package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
	"github.com/LCHCAPITALHUMAIN/ml-toast/pkgmeta"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// --- Messages ---
type summaryMsg struct {
	model.Summary
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

// ErrInterrupted is the result of quitting before collection finished.
var ErrInterrupted = errors.New("interrupted")

type progressMsg struct {
	step           string
	current, total int
}

// --- Model ---
type Model struct {
	app     *pkgmeta.App
	ctx     context.Context
	cancel  context.CancelFunc
	spinner spinner.Model
	state   state
	step    progressMsg
	summary summaryMsg
	err     error
}

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
)

// New returns a model that runs app in interactive mode.
func New(ctx context.Context, app *pkgmeta.App) Model {
	app.SetInteractive(true)
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		app:     app,
		ctx:     ctx,
		cancel:  cancel,
		spinner: s,
		state:   stateProcessing,
	}
}

// SetProgram forwards the app's progress updates to p.
func (m Model) SetProgram(p *tea.Program) {
	m.app.SetProgressCallback(func(step string, current, total int) {
		p.Send(progressMsg{step: step, current: current, total: total})
	})
}

// Err returns the error the run ended with, if any. A model that never
// received a result reports ErrInterrupted.
func (m Model) Err() error {
	if m.state == stateProcessing {
		return ErrInterrupted
	}
	return m.err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runApp)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.state == stateProcessing {
				if m.cancel != nil {
					m.cancel()
				}
				m.state = stateError
				m.err = ErrInterrupted
			}
			return m, tea.Quit
		}

	case progressMsg:
		m.step = msg

	case summaryMsg:
		if m.state != stateProcessing {
			return m, nil
		}
		m.state = stateSummary
		m.summary = msg
		return m, tea.Quit

	case errorMsg:
		if m.state != stateProcessing {
			return m, nil
		}
		m.state = stateError
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		if m.step.step == "" {
			return fmt.Sprintf("%s Collecting metadata...", m.spinner.View())
		}
		return fmt.Sprintf("%s Collecting metadata... %s (%d/%d)",
			m.spinner.View(), m.step.step, m.step.current, m.step.total)
	case stateError:
		return m.renderError()
	case stateSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

func (m *Model) renderError() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	b.WriteString("\n")

	if pkgmeta.IsConfigError(m.err) {
		b.WriteString(faintStyle.Render("Declare it in the version file or point --version-file at the right one."))
		b.WriteString("\n")
	}

	var detailed *pkgmeta.DetailedError
	if errors.As(m.err, &detailed) {
		b.WriteString(faintStyle.Render("\n--- Stack Trace ---\n" + string(detailed.Stack)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderSummary() string {
	var b strings.Builder

	if m.summary.Output != "" {
		b.WriteString(strings.TrimRight(m.summary.Output, "\n"))
		b.WriteString("\n")
	}

	if m.summary.Message != "" {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(m.summary.Message))
		b.WriteString("\n")
	} else if md := m.summary.Metadata; md != nil {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(fmt.Sprintf("Collected %s %s.", md.Name, md.Version)))
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		b.WriteString(faintStyle.Render("Nothing to do."))
	}

	return b.String()
}

func (m *Model) runApp() tea.Msg {
	summary, err := m.app.Execute(m.ctx)
	if err != nil {
		return errorMsg{err}
	}
	return summaryMsg{
		Summary: summary,
	}
}
