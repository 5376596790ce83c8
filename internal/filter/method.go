package filter

import (
	"strings"

	"github.com/maxvaer/smokecheck/internal/catalog"
)

// MethodFilter keeps only entries using one of the given HTTP methods.
type MethodFilter struct {
	methods map[string]struct{}
}

// NewMethodFilter creates a method filter.
func NewMethodFilter(methods []string) *MethodFilter {
	f := &MethodFilter{methods: make(map[string]struct{}, len(methods))}
	for _, m := range methods {
		f.methods[strings.ToUpper(strings.TrimSpace(m))] = struct{}{}
	}
	return f
}

func (f *MethodFilter) Name() string { return "method" }

func (f *MethodFilter) ShouldSkip(_ *catalog.Group, entry *catalog.Entry) bool {
	_, ok := f.methods[strings.ToUpper(entry.Method)]
	return !ok
}

// PathFilter keeps only entries whose path contains a substring.
type PathFilter struct {
	substr string
}

// NewPathFilter creates a path substring filter.
func NewPathFilter(substr string) *PathFilter {
	return &PathFilter{substr: substr}
}

func (f *PathFilter) Name() string { return "path" }

func (f *PathFilter) ShouldSkip(_ *catalog.Group, entry *catalog.Entry) bool {
	return !strings.Contains(entry.Path, f.substr)
}
