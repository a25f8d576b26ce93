package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hmtran/voicescan/internal/analysis"
	"github.com/hmtran/voicescan/internal/upload"
)

// fakeSubmitter lets tests control when an attempt completes and what it
// returns.
type fakeSubmitter struct {
	mu      sync.Mutex
	resp    *analysis.AnalysisResponse
	err     error
	release chan struct{}
	calls   int
}

func newFakeSubmitter() *fakeSubmitter {
	return &fakeSubmitter{
		resp: &analysis.AnalysisResponse{
			Filename:      "sample.wav",
			TotalSegments: 1,
			Segments:      []analysis.Segment{{Time: 0, Type: analysis.TypeVoiced, F0: 120, Energy: 0.05}},
		},
	}
}

func (f *fakeSubmitter) Submit(ctx context.Context, path string) (*analysis.AnalysisResponse, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	resp, err := f.resp, f.err
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	return resp, err
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitForPhase(t *testing.T, states <-chan State, phase Phase) State {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case state := <-states:
			if state.Phase == phase {
				return state
			}
		case <-deadline:
			t.Fatalf("timed out waiting for phase %s", phase)
		}
	}
}

func TestAnalyzeWithoutFileSelected(t *testing.T) {
	submitter := newFakeSubmitter()
	controller := NewController(submitter)

	err := controller.Analyze(context.Background())
	if !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("expected ErrNoFileSelected, got %v", err)
	}

	if got := controller.Snapshot().Phase; got != PhaseIdle {
		t.Errorf("expected state unchanged (Idle), got %s", got)
	}
	if submitter.callCount() != 0 {
		t.Error("expected no upload attempt")
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	submitter := newFakeSubmitter()
	controller := NewController(submitter)
	states := controller.Subscribe()

	controller.SelectFile("/tmp/sample.wav")
	if got := controller.SelectedFile(); got != "sample.wav" {
		t.Errorf("expected selected file sample.wav, got %q", got)
	}

	if err := controller.Analyze(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Loading is set synchronously, before the upload completes
	first := <-states
	if first.Phase != PhaseLoading {
		t.Fatalf("expected first transition Loading, got %s", first.Phase)
	}

	final := waitForPhase(t, states, PhaseSuccess)
	if final.Response == nil {
		t.Fatal("expected success state to carry the response")
	}
	if final.Response.Filename != "sample.wav" {
		t.Errorf("expected response filename sample.wav, got %s", final.Response.Filename)
	}
}

func TestAnalyzeError(t *testing.T) {
	submitter := newFakeSubmitter()
	submitter.resp = nil
	submitter.err = upload.NewUploadError(upload.ErrTypeConnection, "cannot connect to server")

	controller := NewController(submitter)
	states := controller.Subscribe()
	controller.SelectFile("/tmp/sample.wav")

	if err := controller.Analyze(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final := waitForPhase(t, states, PhaseError)
	if final.Message != "cannot connect to server" {
		t.Errorf("expected classified message, got %q", final.Message)
	}
	if final.Response != nil {
		t.Error("expected error state to carry no response")
	}
}

func TestAnalyzeWhileLoading(t *testing.T) {
	submitter := newFakeSubmitter()
	submitter.release = make(chan struct{})

	controller := NewController(submitter)
	states := controller.Subscribe()
	controller.SelectFile("/tmp/sample.wav")

	if err := controller.Analyze(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForPhase(t, states, PhaseLoading)

	err := controller.Analyze(context.Background())
	if !errors.Is(err, ErrAnalysisInFlight) {
		t.Fatalf("expected ErrAnalysisInFlight, got %v", err)
	}

	close(submitter.release)
	waitForPhase(t, states, PhaseSuccess)

	if submitter.callCount() != 1 {
		t.Errorf("expected a single upload attempt, got %d", submitter.callCount())
	}
}

func TestResetDropsStaleResult(t *testing.T) {
	submitter := newFakeSubmitter()
	submitter.release = make(chan struct{})

	controller := NewController(submitter)
	states := controller.Subscribe()
	controller.SelectFile("/tmp/sample.wav")

	if err := controller.Analyze(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForPhase(t, states, PhaseLoading)

	// Reset while the attempt is still in flight, then let it finish
	controller.ResetResults()
	waitForPhase(t, states, PhaseIdle)
	close(submitter.release)

	// The stale outcome must not surface
	select {
	case state := <-states:
		t.Fatalf("expected no further transitions, got %s", state.Phase)
	case <-time.After(100 * time.Millisecond):
	}

	if got := controller.Snapshot().Phase; got != PhaseIdle {
		t.Errorf("expected Idle after reset, got %s", got)
	}
	if controller.SelectedFile() != "sample.wav" {
		t.Error("expected reset to keep the selected file")
	}
}

func TestClearAll(t *testing.T) {
	submitter := newFakeSubmitter()
	controller := NewController(submitter)
	states := controller.Subscribe()
	controller.SelectFile("/tmp/sample.wav")

	if err := controller.Analyze(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForPhase(t, states, PhaseSuccess)

	controller.ClearAll()

	if controller.SelectedFile() != "" {
		t.Error("expected clear to drop the selected file")
	}
	if got := controller.Snapshot().Phase; got != PhaseIdle {
		t.Errorf("expected Idle after clear, got %s", got)
	}

	err := controller.Analyze(context.Background())
	if !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("expected ErrNoFileSelected after clear, got %v", err)
	}
}

func TestReanalyzeAfterError(t *testing.T) {
	submitter := newFakeSubmitter()
	submitter.resp = nil
	submitter.err = upload.NewUploadError(upload.ErrTypeTimeout, "request timed out, server did not respond")

	controller := NewController(submitter)
	states := controller.Subscribe()
	controller.SelectFile("/tmp/sample.wav")

	if err := controller.Analyze(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForPhase(t, states, PhaseError)

	// The server recovers; the same file can be analyzed again
	submitter.mu.Lock()
	submitter.err = nil
	submitter.resp = newFakeSubmitter().resp
	submitter.mu.Unlock()

	if err := controller.Analyze(context.Background()); err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	waitForPhase(t, states, PhaseSuccess)
}

func TestSubscribersSeeTransitionsInOrder(t *testing.T) {
	submitter := newFakeSubmitter()
	controller := NewController(submitter)
	states := controller.Subscribe()
	controller.SelectFile("/tmp/sample.wav")

	if err := controller.Analyze(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := <-states
	second := <-states
	if first.Phase != PhaseLoading || second.Phase != PhaseSuccess {
		t.Errorf("expected Loading then Success, got %s then %s", first.Phase, second.Phase)
	}
}
