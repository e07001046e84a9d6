// Package logx prints tagged diagnostic lines to stderr, gated by verbosity.
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Verbosity levels set by repeated -v.
const (
	LevelDefault = 0
	LevelDebug   = 1
	LevelTrace   = 2
)

// Logger writes "[*] message" style lines. Quiet suppresses everything but
// warnings. Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	w       io.Writer
	level   int
	quiet   bool
	hooks   []func()
	unhooks []func()
}

// New creates a logger writing to stderr.
func New(level int, quiet bool) *Logger {
	return &Logger{w: os.Stderr, level: level, quiet: quiet}
}

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer, level int, quiet bool) *Logger {
	return &Logger{w: w, level: level, quiet: quiet}
}

// Discard returns a logger that prints nothing.
func Discard() *Logger {
	return &Logger{w: io.Discard, quiet: true}
}

// Level returns the verbosity level.
func (l *Logger) Level() int { return l.level }

// Quiet reports whether informational output is suppressed.
func (l *Logger) Quiet() bool { return l.quiet }

// Around registers functions run before and after every line, e.g. to clear
// and redraw a progress line.
func (l *Logger) Around(before, after func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, before)
	l.unhooks = append(l.unhooks, after)
}

func (l *Logger) printf(tag, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, h := range l.hooks {
		h()
	}
	fmt.Fprintf(l.w, tag+" "+format+"\n", args...)
	for _, h := range l.unhooks {
		h()
	}
}

// Infof logs progress information.
func (l *Logger) Infof(format string, args ...any) {
	if !l.quiet {
		l.printf("[*]", format, args...)
	}
}

// Successf logs a positive result.
func (l *Logger) Successf(format string, args ...any) {
	if !l.quiet {
		l.printf("[+]", format, args...)
	}
}

// Warnf logs a problem. Shown even when quiet.
func (l *Logger) Warnf(format string, args ...any) {
	l.printf("[!]", format, args...)
}

// Debugf logs per-entry detail at -v.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.quiet && l.level >= LevelDebug {
		l.printf("[-]", format, args...)
	}
}

// Tracef logs internals at -vv.
func (l *Logger) Tracef(format string, args ...any) {
	if !l.quiet && l.level >= LevelTrace {
		l.printf("[.]", format, args...)
	}
}
