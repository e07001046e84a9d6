package output

import (
	"os"
	"time"

	"github.com/maxvaer/classver/internal/classfile"
	"github.com/maxvaer/classver/internal/scanner"
	"golang.org/x/term"
)

// Stats holds aggregate run statistics.
type Stats struct {
	TotalPaths  int
	ErrorCount  int
	IssueCount  int
	CachedCount int
	Max         *classfile.Version // highest version across all paths
	Ceiling     *classfile.Version // configured --max
	Disposition string
	ExitCode    int
	Duration    time.Duration
}

// Writer is implemented by each output format.
type Writer interface {
	WriteHeader() error
	WriteResult(result *scanner.Result) error
	WriteFooter(stats Stats) error
	Close() error
}

// Exceeds reports whether result resolved above ceiling.
func Exceeds(result *scanner.Result, ceiling *classfile.Version) bool {
	return ceiling != nil && result.OK() && ceiling.Less(*result.Version)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ColorEnabled decides whether text output gets ANSI colors: only when
// writing to a terminal stdout and not disabled.
func ColorEnabled(outputFile string, noColor bool) bool {
	return !noColor && outputFile == "" && IsTerminal(os.Stdout)
}

func openOutput(outputFile string) (*os.File, error) {
	if outputFile == "" {
		return os.Stdout, nil
	}
	return os.Create(outputFile)
}
