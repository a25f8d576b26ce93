package workflow

import "github.com/hmtran/voicescan/internal/analysis"

// Phase identifies which workflow state is active.
type Phase int

const (
	// PhaseIdle means no attempt is in flight and no result is held.
	PhaseIdle Phase = iota

	// PhaseLoading means an analysis attempt is in flight.
	PhaseLoading

	// PhaseSuccess means the last attempt produced a response.
	PhaseSuccess

	// PhaseError means the last attempt failed with a classified message.
	PhaseError
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is one immutable workflow snapshot. Response is non-nil only in
// PhaseSuccess and Message is non-empty only in PhaseError; transitions
// replace the whole value so a stale payload can never leak into the next
// phase.
type State struct {
	Phase    Phase
	Response *analysis.AnalysisResponse
	Message  string
}

func idleState() State {
	return State{Phase: PhaseIdle}
}

func loadingState() State {
	return State{Phase: PhaseLoading}
}

func successState(resp *analysis.AnalysisResponse) State {
	return State{Phase: PhaseSuccess, Response: resp}
}

func errorState(message string) State {
	return State{Phase: PhaseError, Message: message}
}
