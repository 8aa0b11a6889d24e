package scanner

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// NoExtension is the histogram key for files without a suffix.
const NoExtension = "(no extension)"

// Entry represents a single file or directory found by a scan.
type Entry struct {
	// Path is the node path, rooted at the scanned directory.
	Path string `json:"path"`
	// Size is the size in bytes as reported by stat.
	Size int64 `json:"size"`

	fsys afero.Fs
}

// NewEntry creates an entry whose kind is resolved against fsys.
// A nil fsys resolves against the OS filesystem.
func NewEntry(fsys afero.Fs, path string, size int64) Entry {
	return Entry{Path: path, Size: size, fsys: fsys}
}

// stat queries the entry's filesystem, following symlinks.
func (e Entry) stat() (bool, bool) {
	fsys := e.fsys
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	info, err := fsys.Stat(e.Path)
	if err != nil {
		return false, false
	}

	return info.IsDir(), info.Mode().IsRegular()
}

// IsDir reports whether the entry currently is a directory.
// A node that no longer exists is neither a directory nor a file.
func (e Entry) IsDir() bool {
	isDir, _ := e.stat()

	return isDir
}

// IsFile reports whether the entry currently is a regular file.
func (e Entry) IsFile() bool {
	_, isFile := e.stat()

	return isFile
}

// Name returns the last element of the entry path.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// Suffix returns the lower-cased suffix of the entry's name, or "" when it has none.
func (e Entry) Suffix() string {
	return strings.ToLower(Suffix(e.Path))
}

// Suffix returns the final dot-suffix of the base name of path, dot included.
// Names whose only dot is the first or the last character (".bashrc", "file.")
// have no suffix.
func Suffix(path string) string {
	name := filepath.Base(path)

	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}

	return name[i:]
}
