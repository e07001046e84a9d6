package filter

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobFilter skips entries matching any of a set of doublestar patterns,
// e.g. "com/example/internal/**" or "**/*Test.class".
type GlobFilter struct {
	patterns []string
}

// NewGlobFilter validates the patterns and returns a filter over them.
func NewGlobFilter(patterns []string) (*GlobFilter, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return &GlobFilter{patterns: patterns}, nil
}

func (f *GlobFilter) Name() string { return "exclude" }

func (f *GlobFilter) ShouldSkip(entry string) bool {
	for _, p := range f.patterns {
		if ok, _ := doublestar.Match(p, entry); ok {
			return true
		}
	}
	return false
}
