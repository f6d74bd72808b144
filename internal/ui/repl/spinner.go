package repl

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// typingIndicator animates a spinner line while a reply is pending.
// Start and Stop are idempotent; Stop returns after the line has been cleared.
type typingIndicator struct {
	w        io.Writer
	render   func(string) string
	interval time.Duration

	mu   sync.Mutex
	done chan struct{}
	wg   sync.WaitGroup
}

func newTypingIndicator(w io.Writer, interval time.Duration, render func(string) string) *typingIndicator {
	return &typingIndicator{
		w:        w,
		render:   render,
		interval: interval,
	}
}

func (s *typingIndicator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.done)
}

func (s *typingIndicator) Stop() {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	close(done)
	s.wg.Wait()
}

func (s *typingIndicator) run(done chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	i := 0
	for {
		fmt.Fprintf(s.w, "\r%s", s.render(spinnerFrames[i]+" Assistant is typing..."))
		i = (i + 1) % len(spinnerFrames)

		select {
		case <-done:
			// Clear the spinner line
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}
