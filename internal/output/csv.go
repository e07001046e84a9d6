package output

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/maxvaer/classver/internal/classfile"
	"github.com/maxvaer/classver/internal/scanner"
)

// CSVWriter writes results in CSV format.
type CSVWriter struct {
	w       *csv.Writer
	closer  io.Closer
	ceiling *classfile.Version
}

// NewCSVWriter creates a CSV output writer.
func NewCSVWriter(outputFile string, ceiling *classfile.Version) (*CSVWriter, error) {
	f, err := openOutput(outputFile)
	if err != nil {
		return nil, err
	}
	c := &CSVWriter{w: csv.NewWriter(f), ceiling: ceiling}
	if f != os.Stdout {
		c.closer = f
	}
	return c, nil
}

func (c *CSVWriter) WriteHeader() error {
	return c.w.Write([]string{"path", "major", "minor", "label", "exceeds_max", "classes", "issues", "error"})
}

func (c *CSVWriter) WriteResult(result *scanner.Result) error {
	var major, minor, label, errText string
	if result.Version != nil {
		major = strconv.Itoa(int(result.Version.Major))
		minor = strconv.Itoa(int(result.Version.Minor))
		label = result.Version.Label()
	}
	if result.Err != nil {
		errText = classfile.Reason(result.Err)
	}
	return c.w.Write([]string{
		result.Path,
		major,
		minor,
		label,
		strconv.FormatBool(Exceeds(result, c.ceiling)),
		strconv.Itoa(result.Classes),
		strconv.Itoa(len(result.Issues)),
		errText,
	})
}

func (c *CSVWriter) WriteFooter(_ Stats) error {
	c.w.Flush()
	return c.w.Error()
}

func (c *CSVWriter) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
