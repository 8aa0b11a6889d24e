package scanner

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/charlievieth/fastwalk"
	"github.com/spf13/afero"
)

// collector accumulates entries from fastwalk callbacks. The walk runs with a
// single worker, so callbacks never overlap and no locking is required.
type collector struct {
	fsys       afero.Fs
	excludes   map[string]struct{}
	extensions map[string]struct{}
	ignore     *ignoreMatcher
	onlyFiles  bool
	minSize    int64
	onSkip     func(string, error)
	onProgress func(int64)
	visited    int64
	entries    []Entry
}

// newCollector creates a collector for the given options.
func newCollector(opt Options, matcher *ignoreMatcher) *collector {
	return &collector{
		fsys:       afero.NewOsFs(),
		excludes:   opt.excludeSet(),
		extensions: opt.extensionSet(),
		ignore:     matcher,
		onlyFiles:  opt.OnlyFiles,
		minSize:    opt.MinSize,
		onSkip:     opt.OnSkip,
		onProgress: opt.OnProgress,
		entries:    make([]Entry, 0),
	}
}

// skip reports a node dropped because of an error.
func (c *collector) skip(path string, err error) {
	if c.onSkip != nil {
		c.onSkip(path, err)
	}
}

// visit filters a single node and records it if it passes.
// Filtering is per node: an excluded directory's children are still visited
// and judged on their own paths.
func (c *collector) visit(path string, d fs.DirEntry) {
	c.visited++
	if c.onProgress != nil {
		defer c.onProgress(c.visited)
	}

	path = filepath.Clean(path)

	if excludedComponent(path, c.excludes) != "" {
		return
	}

	if c.ignore.ignored(path, d.IsDir()) {
		return
	}

	// Stat follows symlinks; a broken link fails here and is dropped.
	info, err := fastwalk.StatDirEntry(path, d)
	if err != nil {
		c.skip(path, err)

		return
	}

	switch {
	case info.IsDir():
		if c.onlyFiles {
			return
		}
	case info.Mode().IsRegular():
		if !matchesExtension(path, c.extensions) {
			return
		}

		if info.Size() < c.minSize {
			return
		}
	}

	c.entries = append(c.entries, NewEntry(c.fsys, path, info.Size()))
}

// validateRoot checks that root exists and is a directory.
func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return &PathError{Path: root, Err: ErrNotExist}
		}

		return &AccessError{Path: root, Err: err}
	}

	if !info.IsDir() {
		return &PathError{Path: root, Err: ErrNotDirectory}
	}

	return nil
}

// Sort orders entries in place by key. The sort is stable, so entries that
// compare equal keep their relative order in either direction.
func Sort(entries []Entry, key SortKey, reverse bool) {
	var compare func(a, b Entry) int

	switch key {
	case SortSize:
		compare = func(a, b Entry) int { return cmp.Compare(a.Size, b.Size) }
	case SortName:
		compare = func(a, b Entry) int {
			return strings.Compare(strings.ToLower(a.Path), strings.ToLower(b.Path))
		}
	default:
		return
	}

	if reverse {
		slices.SortStableFunc(entries, func(a, b Entry) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(entries, compare)
	}
}

// Scan walks the directory tree at root and returns every descendant that
// passes the filters in opt, ordered per opt.SortBy and opt.Reverse.
//
// It returns a *PathError if root does not exist or is not a directory, and an
// *AccessError if root cannot be inspected or listed. Errors on descendants are
// reported to opt.OnSkip and otherwise ignored.
//
// The walk can be cancelled via ctx.
func Scan(ctx context.Context, root string, opt Options) ([]Entry, error) {
	if root == "" {
		root = "."
	}

	root = filepath.Clean(root)

	if err := validateRoot(root); err != nil {
		return nil, err
	}

	var matcher *ignoreMatcher

	if opt.Gitignore {
		var err error

		matcher, err = loadIgnoreMatcher(root)
		if err != nil {
			return nil, fmt.Errorf("loading ignore file: %w", err)
		}
	}

	collector := newCollector(opt, matcher)

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		Sort:       fastwalk.SortLexical,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return &AccessError{Path: root, Err: err}
			}

			collector.skip(path, err)

			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if path == root {
			return nil
		}

		collector.visit(path, d)

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	entries := collector.entries

	// Directories are handed out by the walker in no fixed order; path order
	// makes discovery order reproducible.
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) })

	Sort(entries, opt.SortBy, opt.Reverse)

	return entries, nil
}
