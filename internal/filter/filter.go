// Package filter selects which catalog entries a run invokes.
package filter

import "github.com/maxvaer/smokecheck/internal/catalog"

// Filter decides whether a catalog entry should be skipped.
type Filter interface {
	Name() string
	ShouldSkip(group *catalog.Group, entry *catalog.Entry) bool
}

// Chain applies multiple filters in order, short-circuiting on the first match.
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
	return len(c.filters)
}

// Check runs every filter against the entry. Returns true and the filter
// name if the entry should be skipped.
func (c *Chain) Check(group *catalog.Group, entry *catalog.Entry) (bool, string) {
	for _, f := range c.filters {
		if f.ShouldSkip(group, entry) {
			return true, f.Name()
		}
	}
	return false, ""
}

// Apply returns a copy of cat without skipped entries. Groups left empty
// are dropped; order is preserved.
func (c *Chain) Apply(cat catalog.Catalog) catalog.Catalog {
	var out catalog.Catalog
	for gi := range cat.Groups {
		g := &cat.Groups[gi]
		kept := catalog.Group{Key: g.Key, Name: g.Name}
		for ei := range g.Entries {
			if skip, _ := c.Check(g, &g.Entries[ei]); !skip {
				kept.Entries = append(kept.Entries, g.Entries[ei])
			}
		}
		if len(kept.Entries) > 0 {
			out.Groups = append(out.Groups, kept)
		}
	}
	return out
}
