package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/schemaforge/pkg/observability"
)

// Spinner provides a simple progress indicator with context cancellation support.
// The message can change while it runs; the pipeline stage hooks use that to
// show which stage is active.
type Spinner struct {
	message string
	width   int // widest message shown, for clearing the line
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	frames  []string
	mu      sync.Mutex
}

// newSpinner creates a new spinner with the given message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that will stop when the context is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		width:   len(message),
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := s.frames[i%len(s.frames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// SetMessage replaces the text next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(message) < s.width {
		// pad so the tail of a longer message does not linger
		message += strings.Repeat(" ", s.width-len(message))
	}
	s.message = message
	s.width = max(s.width, len(message))
}

// Stop stops the spinner and clears the line. It is safe to call more than
// once, but only after Start.
func (s *Spinner) Stop() {
	s.cancel()
	s.once.Do(func() { close(s.done) })
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", s.width+4))
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled returns true if the spinner was stopped due to context cancellation.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// stageHooks reports pipeline stages on a spinner.
type stageHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
}

// OnStageStart implements observability.PipelineHooks.
func (h stageHooks) OnStageStart(_ context.Context, stage string) {
	h.spinner.SetMessage(fmt.Sprintf("Running %s...", stage))
}

// withStageSpinner runs fn with a spinner that follows the pipeline stages.
// The pipeline hooks are reset to no-ops afterwards.
func withStageSpinner(ctx context.Context, fn func() error) error {
	s := newSpinnerWithContext(ctx, "Loading project...")
	observability.SetPipelineHooks(stageHooks{spinner: s})
	defer observability.SetPipelineHooks(observability.NoopPipelineHooks{})

	s.Start()
	err := fn()
	s.Stop()
	return err
}
