package scanner

import (
	"errors"
	"fmt"
)

var (
	// ErrNotExist is wrapped by a PathError for a root that does not exist.
	ErrNotExist = errors.New("does not exist")
	// ErrNotDirectory is wrapped by a PathError for a root that is not a directory.
	ErrNotDirectory = errors.New("is not a directory")
)

// PathError reports an invalid scan root. It is returned before any traversal.
type PathError struct {
	// Path is the root as given by the caller.
	Path string
	// Err is ErrNotExist or ErrNotDirectory.
	Err error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %v: %s", e.Err, e.Path)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// AccessError reports a root that exists but cannot be inspected or listed,
// typically for lack of permission.
type AccessError struct {
	// Path is the root as given by the caller.
	Path string
	// Err is the underlying OS error.
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("accessing path %q: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}
