package scanner

import "github.com/maxvaer/classver/internal/classfile"

// Issue is a non-fatal failure on a single archive entry.
type Issue struct {
	Entry string
	Err   error
}

// Result holds the outcome of scanning one top-level path.
type Result struct {
	Index   int // position of Path in the input list
	Path    string
	Version *classfile.Version // max decoded version; nil when Err is set
	Err     error              // path-level failure
	Issues  []Issue
	Classes int // sources decoded successfully
	Entries int // archive members seen (0 for plain classfiles)
	Skipped int // class entries skipped by filters
	Cached  bool
}

// OK reports whether the path resolved to a version.
func (r *Result) OK() bool {
	return r.Err == nil && r.Version != nil
}

// Outcome is the aggregate of a run, with Results in input order.
type Outcome struct {
	Max     *classfile.Version // nil when every path failed
	Results []Result
}

// Failed returns the results that carry a path-level error.
func (o *Outcome) Failed() []Result {
	var out []Result
	for _, r := range o.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// IssueCount returns the number of entry-level issues across all paths.
func (o *Outcome) IssueCount() int {
	n := 0
	for _, r := range o.Results {
		n += len(r.Issues)
	}
	return n
}
