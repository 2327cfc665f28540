// Package ui renders live grading progress as a Bubble Tea program.
// The orchestrator's progress events are forwarded into the program
// with Send; the display is a per-question state list over a quiz-wide
// progress bar.
package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/keiko-edu/llm-quiz/internal/pipeline"
)

// EventMsg wraps a pipeline progress event for the UI.
type EventMsg pipeline.Event

// DoneMsg tells the UI the run has finished and it should exit.
type DoneMsg struct{}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// Model is the Bubble Tea model for the live progress view.
type Model struct {
	title     string
	states    []pipeline.State
	completed int
	total     int
	width     int
	quitting  bool
}

// New creates a progress model for a quiz with the given question count.
func New(title string, questions int) Model {
	states := make([]pipeline.State, questions)
	for i := range states {
		states[i] = pipeline.StatePending
	}
	return Model{
		title:  title,
		states: states,
		total:  questions * 4,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case EventMsg:
		if msg.QuestionIndex >= 0 && msg.QuestionIndex < len(m.states) {
			m.states[msg.QuestionIndex] = mergeState(m.states[msg.QuestionIndex], msg.State)
		}
		m.completed = msg.Completed
		m.total = msg.Total
		return m, nil

	case DoneMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	if m.quitting {
		return v
	}
	v.SetContent(m.content())
	return v
}

// content renders the full frame: title, per-question states, bar.
func (m Model) content() string {
	width := m.width
	if width == 0 {
		width = 72
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Grading: "+m.title) + "\n\n")

	for i, st := range m.states {
		fmt.Fprintf(&b, "  Q%-3d %s\n", i+1, renderState(st))
	}

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.completed) / float64(m.total)
	}
	b.WriteString("\n" + renderBar(percent, width-4) + "\n")
	b.WriteString(dimStyle.Render("Ctrl+C to cancel") + "\n")

	return b.String()
}

// mergeState keeps terminal states sticky: late SKIPPED events for the
// Answer/Evaluate stages must not override DONE.
func mergeState(current, next pipeline.State) pipeline.State {
	if current == pipeline.StateDone || current == pipeline.StateErrored {
		return current
	}
	if next == pipeline.StateSkipped {
		return current
	}
	return next
}

func renderState(st pipeline.State) string {
	switch st {
	case pipeline.StatePending:
		return dimStyle.Render("pending")
	case pipeline.StateDone:
		return doneStyle.Render("done")
	case pipeline.StateErrored:
		return errStyle.Render("errored")
	default:
		return activeStyle.Render(strings.ToLower(string(st)))
	}
}
