package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maxvaer/classver/internal/classfile"
	"github.com/maxvaer/classver/internal/scanner"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// TextWriter writes one "path: version (label)" line per input.
type TextWriter struct {
	w       io.Writer
	footer  io.Writer
	noColor bool
	quiet   bool
	ceiling *classfile.Version
}

// NewTextWriter creates a text output writer. If outputFile is empty, stdout
// is used. noColor disables ANSI escape codes. Lines for results above
// ceiling are marked.
func NewTextWriter(outputFile string, noColor, quiet bool, ceiling *classfile.Version) (*TextWriter, error) {
	f, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	return &TextWriter{w: f, footer: os.Stderr, noColor: noColor, quiet: quiet, ceiling: ceiling}, nil
}

func (t *TextWriter) WriteHeader() error { return nil }

func (t *TextWriter) WriteResult(result *scanner.Result) error {
	if result.Err != nil {
		_, err := fmt.Fprintf(t.w, "%s: %serror: %s%s\n",
			result.Path, t.color(colorYellow), classfile.Reason(result.Err), t.color(colorReset))
		return err
	}

	color, note := colorGreen, ""
	if Exceeds(result, t.ceiling) {
		color = colorRed
		note = fmt.Sprintf(" exceeds max %s", t.ceiling.Describe())
	}
	_, err := fmt.Fprintf(t.w, "%s: %s%s%s%s\n",
		result.Path, t.color(color), result.Version.Describe(), note, t.color(colorReset))
	return err
}

func (t *TextWriter) WriteFooter(stats Stats) error {
	if t.quiet {
		return nil
	}
	max := "none"
	if stats.Max != nil {
		max = stats.Max.Describe()
	}
	_, err := fmt.Fprintf(t.footer,
		"\nScanned: %d paths | Errors: %d | Entry issues: %d | Max: %s | Result: %s | Duration: %s\n",
		stats.TotalPaths,
		stats.ErrorCount,
		stats.IssueCount,
		max,
		stats.Disposition,
		stats.Duration.Round(time.Millisecond),
	)
	return err
}

func (t *TextWriter) Close() error {
	if closer, ok := t.w.(io.Closer); ok && t.w != os.Stdout {
		return closer.Close()
	}
	return nil
}

func (t *TextWriter) color(code string) string {
	if t.noColor {
		return ""
	}
	return code
}
