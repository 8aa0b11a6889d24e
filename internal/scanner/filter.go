package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// gitignoreFile is the ignore file looked up in the scan root.
const gitignoreFile = ".gitignore"

// excludedComponent returns the first component of path found in patterns, or "".
// Matching is exact per component: "gitignore" does not match a pattern "git".
func excludedComponent(path string, patterns map[string]struct{}) string {
	if len(patterns) == 0 {
		return ""
	}

	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if _, ok := patterns[part]; ok {
			return part
		}
	}

	return ""
}

// matchesExtension checks the lower-cased suffix of path against the filter set.
// A nil set matches everything.
func matchesExtension(path string, extensions map[string]struct{}) bool {
	if extensions == nil {
		return true
	}

	_, ok := extensions[strings.ToLower(Suffix(path))]

	return ok
}

// ignoreMatcher matches root-relative paths against the root's .gitignore.
type ignoreMatcher struct {
	root string
	gi   *ignore.GitIgnore
}

// loadIgnoreMatcher compiles <root>/.gitignore. A missing file yields a nil matcher.
func loadIgnoreMatcher(root string) (*ignoreMatcher, error) {
	path := filepath.Join(root, gitignoreFile)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil //nolint:nilnil // No ignore file is not an error
		}

		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}

	return &ignoreMatcher{root: root, gi: gi}, nil
}

// ignored reports whether path is matched by the ignore file.
// Directories are also tried with a trailing slash so that "dir/" patterns match them.
func (m *ignoreMatcher) ignored(path string, isDir bool) bool {
	if m == nil {
		return false
	}

	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return false
	}

	rel = filepath.ToSlash(rel)

	if isDir && m.gi.MatchesPath(rel+"/") {
		return true
	}

	return m.gi.MatchesPath(rel)
}
