package scanner

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied to scan results.
type SortKey string

const (
	// SortNone keeps discovery order.
	SortNone SortKey = ""
	// SortSize orders by size, ascending unless Options.Reverse is set.
	SortSize SortKey = "size"
	// SortName orders by the case-insensitive path.
	SortName SortKey = "name"
)

// ParseSortKey converts a user supplied key. "" and "none" both map to SortNone.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case string(SortSize):
		return SortSize, nil
	case string(SortName):
		return SortName, nil
	default:
		return SortNone, fmt.Errorf("invalid sort key %q: must be one of [size name none]", s)
	}
}

// DefaultExcludes contains the path components excluded when Options.Excludes is nil.
//
//nolint:gochecknoglobals // Config constant
var DefaultExcludes = []string{".git", ".venv", "__pycache__", "node_modules", ".pytest_cache", ".mypy_cache"}

// Options configures a single scan.
type Options struct {
	// Excludes contains exact path components to skip. Nil selects
	// DefaultExcludes, an empty non-nil slice disables exclusion.
	Excludes []string
	// OnlyFiles omits directories from the result.
	OnlyFiles bool
	// Extensions restricts files to these case-insensitive suffixes (empty = all).
	Extensions []string
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// Gitignore skips nodes matched by the root's .gitignore.
	Gitignore bool
	// SortBy selects the result ordering.
	SortBy SortKey
	// Reverse inverts the ordering selected by SortBy.
	Reverse bool
	// OnSkip, if set, is called for every node dropped because of an error.
	OnSkip func(path string, err error)
	// OnProgress, if set, is called with the number of nodes visited so far.
	OnProgress func(visited int64)
}

// excludeSet resolves the active exclusion patterns.
func (o Options) excludeSet() map[string]struct{} {
	patterns := o.Excludes
	if patterns == nil {
		patterns = DefaultExcludes
	}

	set := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		set[p] = struct{}{}
	}

	return set
}

// extensionSet returns the lower-cased extension filter, or nil when unfiltered.
func (o Options) extensionSet() map[string]struct{} {
	if len(o.Extensions) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(o.Extensions))
	for _, e := range o.Extensions { //nolint:varnamelen // e is standard for element in range
		set[strings.ToLower(e)] = struct{}{}
	}

	return set
}
