package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hmtran/voicescan/internal/analysis"
	"github.com/hmtran/voicescan/internal/emoji"
	"github.com/hmtran/voicescan/internal/workflow"
)

// Model represents the interactive analysis TUI
type Model struct {
	controller *workflow.Controller
	states     <-chan workflow.State
	state      workflow.State
	color      bool
	width      int
	height     int
	ready      bool
	quitting   bool
	notice     string
}

// NewModel creates a new TUI model bound to a workflow controller. The file
// must already be selected on the controller.
func NewModel(controller *workflow.Controller, color bool) *Model {
	return &Model{
		controller: controller,
		states:     controller.Subscribe(),
		state:      controller.Snapshot(),
		color:      color,
	}
}

// Init initializes the model and starts the first analysis
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		waitForState(m.states),
		createAnalyzeCommand(m.controller),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		m.state = msg.state
		m.notice = ""
		return m, waitForState(m.states)

	case analyzeRejectedMsg:
		m.notice = msg.err.Error()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "a":
		return m, createAnalyzeCommand(m.controller)

	case "r":
		m.controller.ResetResults()
		m.state = m.controller.Snapshot()
		m.notice = ""

	case "c":
		m.controller.ClearAll()
		m.state = m.controller.Snapshot()
		m.notice = ""
	}

	return m, nil
}

// View renders the model
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.quitting {
		return "Thanks for using voicescan! 👋\n"
	}

	border := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)
	if m.color {
		border = border.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6"))
	} else {
		border = border.Border(lipgloss.NormalBorder())
	}

	var content string
	switch m.state.Phase {
	case workflow.PhaseLoading:
		content = fmt.Sprintf("%s Analyzing %s...\n\nPress 'q' to quit",
			emoji.GetEmoji("loading"), m.fileLabel())
	case workflow.PhaseSuccess:
		content = m.renderResults(m.state.Response)
	case workflow.PhaseError:
		content = fmt.Sprintf("%s Analysis failed\n\n%s\n\nPress 'a' to retry, 'q' to quit",
			emoji.GetEmoji("error"), m.state.Message)
	default:
		content = fmt.Sprintf("%s %s\n\nPress 'a' to analyze, 'q' to quit",
			emoji.GetEmoji("file"), m.fileLabel())
	}

	if m.notice != "" {
		content += fmt.Sprintf("\n\n%s %s", emoji.GetEmoji("warning"), m.notice)
	}

	return border.Render(content)
}

// renderResults renders the success view with summary statistics.
func (m *Model) renderResults(resp *analysis.AnalysisResponse) string {
	var b strings.Builder

	title := "Voice Analysis Results"
	if m.color {
		title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")).Render(title)
	}
	b.WriteString(title + "\n\n")

	fmt.Fprintf(&b, "%s File: %s\n", emoji.GetEmoji("file"), resp.Filename)
	fmt.Fprintf(&b, "%s Segments: %d received, %d reported\n\n",
		emoji.GetEmoji("statistics"), len(resp.Segments), resp.TotalSegments)

	stats := resp.GetStatistics()
	total := len(resp.Segments)
	for _, label := range statLabels(stats) {
		count := stats[label]
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		fmt.Fprintf(&b, "%s %-10s %6d frames (%.2f%%)\n",
			emoji.ForSegmentType(label), label, count, pct)
	}

	b.WriteString("\nPress 'a' to re-analyze, 'r' to reset, 'c' to clear, 'q' to quit")
	return b.String()
}

// statLabels orders the canonical types first, then any extras sorted.
func statLabels(stats map[string]int) []string {
	labels := make([]string, 0, len(stats))
	labels = append(labels, analysis.CanonicalTypes...)

	var extras []string
	canonical := make(map[string]bool, len(analysis.CanonicalTypes))
	for _, label := range analysis.CanonicalTypes {
		canonical[label] = true
	}
	for label := range stats {
		if !canonical[label] {
			extras = append(extras, label)
		}
	}
	sort.Strings(extras)

	return append(labels, extras...)
}

func (m *Model) fileLabel() string {
	if name := m.controller.SelectedFile(); name != "" {
		return name
	}
	return "no file selected"
}

// Run runs the interactive analysis UI for one selected file.
func Run(controller *workflow.Controller, path string, color bool) error {
	controller.SelectFile(path)
	model := NewModel(controller, color)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
