package checksum

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// FailureKind classifies why a file could not be fully read.
type FailureKind int

const (
	IOError FailureKind = iota
	NotFound
	IsDirectory
	AccessDenied
	PermissionDenied
)

func (k FailureKind) String() string {
	switch k {
	case NotFound:
		return "file not found"
	case IsDirectory:
		return "path is a directory, not a file"
	case AccessDenied:
		return "cannot access path"
	case PermissionDenied:
		return "permission denied reading file"
	default:
		return "I/O error reading file"
	}
}

// ReadFailure reports that the target of a record could not be fully read.
// Err keeps the platform error for diagnostics.
type ReadFailure struct {
	Kind FailureKind
	Path string
	Err  error
}

func (e *ReadFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *ReadFailure) Unwrap() error { return e.Err }

func newReadFailure(kind FailureKind, path string, err error) *ReadFailure {
	return &ReadFailure{Kind: kind, Path: path, Err: err}
}

// missing reports whether a stat error means the path does not exist, which
// includes a parent component that is a regular file or a symlink loop.
func missing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP)
}

// classify maps an open or read error to a failure kind.
func classify(err error) FailureKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	case errors.Is(err, syscall.EISDIR):
		return IsDirectory
	default:
		return IOError
	}
}
