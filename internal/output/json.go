package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/maxvaer/classver/internal/classfile"
	"github.com/maxvaer/classver/internal/scanner"
)

type jsonIssue struct {
	Entry string `json:"entry"`
	Error string `json:"error"`
}

type jsonEntry struct {
	Path       string             `json:"path"`
	Version    *classfile.Version `json:"version,omitempty"`
	Label      string             `json:"label,omitempty"`
	Error      string             `json:"error,omitempty"`
	ExceedsMax bool               `json:"exceeds_max,omitempty"`
	Classes    int                `json:"classes"`
	Entries    int                `json:"entries,omitempty"`
	Skipped    int                `json:"skipped,omitempty"`
	Issues     []jsonIssue        `json:"issues,omitempty"`
}

type jsonReport struct {
	Results     []jsonEntry        `json:"results"`
	Max         *classfile.Version `json:"max,omitempty"`
	Ceiling     *classfile.Version `json:"ceiling,omitempty"`
	Disposition string             `json:"disposition"`
	ExitCode    int                `json:"exit_code"`
}

// JSONWriter writes the whole report as one JSON document.
type JSONWriter struct {
	w       io.Writer
	closer  io.Closer
	ceiling *classfile.Version
	entries []jsonEntry
}

// NewJSONWriter creates a JSON output writer.
func NewJSONWriter(outputFile string, ceiling *classfile.Version) (*JSONWriter, error) {
	f, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	j := &JSONWriter{w: f, ceiling: ceiling, entries: []jsonEntry{}}
	if f != os.Stdout {
		j.closer = f
	}
	return j, nil
}

func (j *JSONWriter) WriteHeader() error { return nil }

func (j *JSONWriter) WriteResult(result *scanner.Result) error {
	e := jsonEntry{
		Path:       result.Path,
		Version:    result.Version,
		ExceedsMax: Exceeds(result, j.ceiling),
		Classes:    result.Classes,
		Entries:    result.Entries,
		Skipped:    result.Skipped,
	}
	if result.Version != nil {
		e.Label = result.Version.Label()
	}
	if result.Err != nil {
		e.Error = classfile.Reason(result.Err)
	}
	for _, is := range result.Issues {
		e.Issues = append(e.Issues, jsonIssue{Entry: is.Entry, Error: classfile.Reason(is.Err)})
	}
	j.entries = append(j.entries, e)
	return nil
}

func (j *JSONWriter) WriteFooter(stats Stats) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Results:     j.entries,
		Max:         stats.Max,
		Ceiling:     stats.Ceiling,
		Disposition: stats.Disposition,
		ExitCode:    stats.ExitCode,
	})
}

func (j *JSONWriter) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
