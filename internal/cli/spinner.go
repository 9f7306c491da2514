package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner shows an activity indicator while a conversion runs. It only draws
// when its writer is a terminal, so piped output stays clean.
type Spinner struct {
	w     io.Writer
	tty   bool
	ctx   context.Context
	stopF context.CancelFunc

	mu      sync.Mutex
	message string
	width   int // widest line drawn, for clearing

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// newSpinner returns a spinner on stderr that also stops when ctx is done.
func newSpinner(ctx context.Context, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       os.Stderr,
		tty:     isatty.IsTerminal(os.Stderr.Fd()),
		ctx:     sctx,
		stopF:   cancel,
		message: message,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins drawing in the background.
func (s *Spinner) Start() {
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.stopped)
	if !s.tty {
		select {
		case <-s.stop:
		case <-s.ctx.Done():
		}
		return
	}

	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()
	for frame := 0; ; frame++ {
		select {
		case <-s.stop:
			return
		case <-s.ctx.Done():
			s.clear()
			return
		case <-tick.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(glyph string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleSpinner.Render(glyph) + " " + StyleDim.Render(s.message)
	s.width = max(s.width, len(s.message)+2)
	fmt.Fprint(s.w, "\r"+line)
}

func (s *Spinner) clear() {
	if !s.tty {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width+2)+"\r")
}

// Update replaces the message shown next to the spinner.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop stops drawing and clears the line. It must follow Start and may be
// called more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.stopped
	s.stopF()
	s.clear()
}

// StopWithError stops the spinner and prints message as an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended before Stop.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.stop:
		return false
	default:
		return s.ctx.Err() != nil
	}
}
