// Package disposition turns a scan outcome into the run's verdict and exit
// status.
package disposition

import (
	"github.com/maxvaer/classver/internal/classfile"
	"github.com/maxvaer/classver/internal/scanner"
)

// Exit codes. Stable; documented in the command help.
const (
	ExitOK              = 0
	ExitCeilingExceeded = 1
	ExitScanError       = 2
	ExitUsage           = 64
)

// Disposition is the verdict for one run.
type Disposition struct {
	Max             *classfile.Version // configured ceiling, if any
	CeilingExceeded bool
	PartialFailure  bool
	Offending       []scanner.Result // paths above the ceiling, input order
	Failed          []scanner.Result // paths that count as failed, input order
}

// Resolve compares outcome against an optional ceiling. With strict set,
// entry-level issues fail their path as well.
func Resolve(outcome *scanner.Outcome, max *classfile.Version, strict bool) Disposition {
	d := Disposition{Max: max}

	for _, r := range outcome.Results {
		if r.Err != nil || (strict && len(r.Issues) > 0) {
			d.Failed = append(d.Failed, r)
		}
		if max != nil && r.OK() && max.Less(*r.Version) {
			d.Offending = append(d.Offending, r)
		}
	}

	d.PartialFailure = len(d.Failed) > 0
	d.CeilingExceeded = max != nil && outcome.Max != nil && max.Less(*outcome.Max)
	return d
}

// Success reports whether the run passes.
func (d Disposition) Success() bool {
	return !d.CeilingExceeded && !d.PartialFailure
}

// ExitCode maps the disposition to a process status. A scan error wins over
// a ceiling violation: those inputs could not be verified at all.
func (d Disposition) ExitCode() int {
	switch {
	case d.PartialFailure:
		return ExitScanError
	case d.CeilingExceeded:
		return ExitCeilingExceeded
	default:
		return ExitOK
	}
}

func (d Disposition) String() string {
	switch {
	case d.PartialFailure && d.CeilingExceeded:
		return "partial failure, ceiling exceeded"
	case d.PartialFailure:
		return "partial failure"
	case d.CeilingExceeded:
		return "ceiling exceeded"
	default:
		return "success"
	}
}
