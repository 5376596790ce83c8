package filter

import (
	"strings"

	"github.com/maxvaer/smokecheck/internal/catalog"
)

// GroupFilter keeps only entries of the named groups. Names match the
// group key or full name, case-insensitively.
type GroupFilter struct {
	names map[string]struct{}
}

// NewGroupFilter creates a group filter.
func NewGroupFilter(names []string) *GroupFilter {
	f := &GroupFilter{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		f.names[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return f
}

func (f *GroupFilter) Name() string { return "group" }

func (f *GroupFilter) ShouldSkip(group *catalog.Group, _ *catalog.Entry) bool {
	if _, ok := f.names[strings.ToLower(group.Key)]; ok {
		return false
	}
	_, ok := f.names[strings.ToLower(group.Name)]
	return !ok
}
