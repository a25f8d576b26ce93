package workflow

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/hmtran/voicescan/internal/analysis"
	"github.com/hmtran/voicescan/internal/upload"
)

var (
	// ErrNoFileSelected is returned by Analyze when no file has been
	// selected. The workflow state is left unchanged and no request is made.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrAnalysisInFlight is returned by Analyze while an attempt is
	// already loading. At most one attempt runs per controller.
	ErrAnalysisInFlight = errors.New("analysis already in progress")
)

// Submitter is the upload contract the controller drives. *upload.Client
// satisfies it; tests substitute fakes.
type Submitter interface {
	Submit(ctx context.Context, path string) (*analysis.AnalysisResponse, error)
}

// subscriberBuffer sizes each subscriber channel. A single user action
// produces at most two transitions, so this never fills for a subscriber
// that drains at all.
const subscriberBuffer = 64

// Controller owns one analysis session: the selected file, the current
// workflow state, and the in-flight attempt. All transitions go through it
// and are emitted, in order, to every subscriber.
type Controller struct {
	submitter Submitter

	mu       sync.Mutex
	state    State
	filePath string
	fileName string
	attempt  uint64
	subs     []chan State
}

// NewController creates a controller in the Idle state with no file selected.
func NewController(submitter Submitter) *Controller {
	return &Controller{
		submitter: submitter,
		state:     idleState(),
	}
}

// SelectFile replaces the selected file. Allowed in any state; a previous
// success or error display persists until the user re-analyzes or clears.
func (c *Controller) SelectFile(path string) {
	name := filepath.Base(path)
	if path == "" || name == "." || name == string(filepath.Separator) {
		name = "unknown"
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
	c.fileName = name
}

// SelectedFile returns the display name of the selected file, or "" when
// none is selected.
func (c *Controller) SelectedFile() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filePath == "" {
		return ""
	}
	return c.fileName
}

// Snapshot returns the current workflow state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers a listener for state transitions. Transitions are
// delivered in the order they were issued. The channel is buffered; a
// subscriber that drains it will never miss a transition.
func (c *Controller) Subscribe() <-chan State {
	ch := make(chan State, subscriberBuffer)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, ch)
	return ch
}

// Analyze starts one analysis attempt for the selected file. The transition
// to Loading happens synchronously, before any I/O; the upload itself runs
// on a background goroutine and its single completion is folded back into
// Success or Error. Calls without a selected file or while already loading
// are rejected without side effects.
func (c *Controller) Analyze(ctx context.Context) error {
	c.mu.Lock()

	if c.filePath == "" {
		c.mu.Unlock()
		return ErrNoFileSelected
	}
	if c.state.Phase == PhaseLoading {
		c.mu.Unlock()
		return ErrAnalysisInFlight
	}

	c.attempt++
	token := c.attempt
	path := c.filePath
	c.setStateLocked(loadingState())
	c.mu.Unlock()

	go func() {
		resp, err := c.submitter.Submit(ctx, path)
		c.complete(token, resp, err)
	}()

	return nil
}

// complete applies the outcome of one attempt. Outcomes from attempts that
// are no longer current (a reset or a newer attempt happened meanwhile) are
// dropped.
func (c *Controller) complete(token uint64, resp *analysis.AnalysisResponse, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.attempt {
		return
	}

	if err != nil {
		c.setStateLocked(errorState(userMessage(err)))
		return
	}
	c.setStateLocked(successState(resp))
}

// ResetResults discards the held result and returns to Idle, keeping the
// selected file. An in-flight attempt keeps running but its late outcome is
// ignored.
func (c *Controller) ResetResults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempt++
	c.setStateLocked(idleState())
}

// ClearAll returns to Idle and clears the selected file as well.
func (c *Controller) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempt++
	c.filePath = ""
	c.fileName = ""
	c.setStateLocked(idleState())
}

// setStateLocked replaces the state and notifies subscribers. Callers must
// hold c.mu, which serializes emissions into transition order.
func (c *Controller) setStateLocked(s State) {
	c.state = s
	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
			// Subscriber stopped draining; dropping beats deadlocking.
		}
	}
}

// userMessage extracts the human-readable message from a classified upload
// error, falling back to the raw error text.
func userMessage(err error) string {
	var ue *upload.UploadError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}
