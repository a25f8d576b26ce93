package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hmtran/voicescan/internal/workflow"
)

// Common message types shared across UI models
type stateMsg struct {
	state workflow.State
}

type analyzeRejectedMsg struct {
	err error
}

// waitForState creates a tea command that delivers the next workflow state.
func waitForState(states <-chan workflow.State) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-states
		if !ok {
			return nil
		}
		return stateMsg{state: state}
	}
}

// createAnalyzeCommand creates a tea command that starts an analysis run.
// State transitions arrive separately through the subscription channel; only
// synchronous rejections surface here.
func createAnalyzeCommand(controller *workflow.Controller) tea.Cmd {
	return func() tea.Msg {
		if err := controller.Analyze(context.Background()); err != nil {
			return analyzeRejectedMsg{err: err}
		}
		return nil
	}
}
