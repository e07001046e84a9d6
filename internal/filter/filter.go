// Package filter decides which archive entries are skipped before decoding.
package filter

// Filter decides whether an archive entry should be left out of a scan.
type Filter interface {
	Name() string
	ShouldSkip(entry string) bool
}

// Chain applies multiple filters in order, short-circuiting on the first match.
// A nil Chain skips nothing.
type Chain struct {
	filters []Filter
}

// NewChain returns an empty filter chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.filters)
}

// Apply runs every filter against the entry name. Returns true and the
// filter name if the entry should be skipped.
func (c *Chain) Apply(entry string) (bool, string) {
	if c == nil {
		return false, ""
	}
	for _, f := range c.filters {
		if f.ShouldSkip(entry) {
			return true, f.Name()
		}
	}
	return false, ""
}
