// Package ui holds terminal feedback for long-running CLI steps.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on one terminal line. On a non-terminal
// writer it prints the message once instead.
type Spinner struct {
	w        io.Writer
	animate  bool
	interval time.Duration

	mu      sync.Mutex
	message string
	active  bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:        w,
		animate:  isTerminal(w) && os.Getenv("NO_COLOR") == "",
		interval: 100 * time.Millisecond,
		message:  message,
	}
}

// Start begins spinning. Calling Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true

	if !s.animate {
		fmt.Fprintf(s.w, "%s...\n", s.message)
		return
	}

	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.spin(s.done)
}

func (s *Spinner) spin(done <-chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i = (i + 1) % len(frames) {
		select {
		case <-done:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s %s", frames[i], s.message)
			s.mu.Unlock()
		}
	}
}

// Stop stops the spinner and prints finalMessage when it is not empty.
func (s *Spinner) Stop(finalMessage string) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	done := s.done
	s.mu.Unlock()

	if done != nil {
		close(done)
		s.wg.Wait()
	}
	if finalMessage != "" {
		fmt.Fprintln(s.w, finalMessage)
	}
}

// Update changes the message while the spinner runs.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Run shows a spinner on w while fn runs and reports how it ended.
func Run(w io.Writer, message string, fn func() error) error {
	start := time.Now()
	spinner := NewSpinner(w, message)
	spinner.Start()
	err := fn()
	if err != nil {
		spinner.Stop(fmt.Sprintf("✗ %s", message))
	} else {
		spinner.Stop(fmt.Sprintf("✓ %s (%s)", message, time.Since(start).Round(time.Millisecond)))
	}
	return err
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
