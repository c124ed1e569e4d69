package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// spinner writes an animated status line to stderr until halted.
// Centrality on large networks can take a while between stage logs;
// this keeps the terminal visibly alive in the meantime.
type spinner struct {
	msg  string
	halt context.CancelFunc
	done chan struct{}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// startSpinner begins animating msg. The animation ends when stop or
// fail is called, or when ctx is cancelled.
func startSpinner(ctx context.Context, msg string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{msg: msg, halt: cancel, done: make(chan struct{})}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-ctx.Done():
				fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
				return
			case <-ticker.C:
				glyph := spinnerFrames[frame%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleSpin.Render(glyph), styleMuted.Render(s.msg))
			}
		}
	}()
	return s
}

// stop halts the animation and clears the line.
func (s *spinner) stop() {
	s.halt()
	<-s.done
}

// fail halts the animation and prints an error line.
func (s *spinner) fail(format string, args ...any) {
	s.stop()
	printFail(format, args...)
}
