package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Progress tracks and displays scan progress on stderr.
type Progress struct {
	total     int
	completed atomic.Int64
	errors    atomic.Int64
	classes   atomic.Int64
	start     time.Time
	done      chan struct{}
	stopped   chan struct{}
	enabled   bool
	finished  atomic.Bool

	mu sync.Mutex
	w  io.Writer
}

// NewProgress creates a progress tracker. Display is only enabled when
// stderr is a terminal and quiet is unset. Call Start() to begin updates.
func NewProgress(total int, quiet bool) *Progress {
	return &Progress{
		total:   total,
		start:   time.Now(),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		enabled: !quiet && IsTerminal(os.Stderr),
		w:       os.Stderr,
	}
}

// Start begins periodically printing progress to stderr.
func (p *Progress) Start() {
	if !p.enabled {
		close(p.stopped)
		return
	}
	go func() {
		defer close(p.stopped)
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Redraw()
			case <-p.done:
				p.ClearLine()
				return
			}
		}
	}()
}

// Increment records a finished path and how many classes it decoded.
func (p *Progress) Increment(classes int) {
	p.completed.Add(1)
	p.classes.Add(int64(classes))
}

// IncrementErrors records a failed path.
func (p *Progress) IncrementErrors() {
	p.errors.Add(1)
}

// Stop ends the progress display and waits for the line to be cleared.
func (p *Progress) Stop() {
	p.finished.Store(true)
	close(p.done)
	<-p.stopped
}

// ClearLine erases the progress line so other output can be printed.
func (p *Progress) ClearLine() {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.w, "\r\033[K")
}

// Redraw prints the current progress line.
func (p *Progress) Redraw() {
	if !p.enabled || p.finished.Load() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	completed := p.completed.Load()
	pct := float64(0)
	if p.total > 0 {
		pct = float64(completed) / float64(p.total) * 100
	}
	elapsed := time.Since(p.start).Round(time.Second)

	fmt.Fprintf(p.w, "\r\033[K[%3.0f%%] %d/%d paths | %d classes | Errors: %d | %s",
		pct, completed, p.total, p.classes.Load(), p.errors.Load(), elapsed)
}
