package filesystem

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath indicates a required parent segment does not resolve
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidName indicates a leaf name breaking the naming rule
	ErrInvalidName = errors.New("invalid name")

	// ErrNameCollision indicates the name is already used in the directory.
	// Recoverable: creation commands treat it as create-if-absent.
	ErrNameCollision = errors.New("name already exists")

	// ErrNotEmpty indicates remove-dir on a directory with entries.
	// Recoverable: the directory is left alone.
	ErrNotEmpty = errors.New("directory not empty")

	// ErrHardLinkBlocked indicates a delete of a node with live hard links
	ErrHardLinkBlocked = errors.New("has hard link(s)")

	// ErrCurrentDirProtected indicates an attempt to remove the current
	// directory or one of its ancestors
	ErrCurrentDirProtected = errors.New("contains the current directory")

	// ErrNotFound indicates a missing source or target entry
	ErrNotFound = errors.New("no such file or directory")
)

// Command names for consistent logging and error reporting
const (
	OpMakeDir         = "MD"
	OpChangeDir       = "CD"
	OpRemoveDir       = "RD"
	OpDeleteTree      = "DELTREE"
	OpMakeFile        = "MF"
	OpMakeHardLink    = "MHL"
	OpMakeDynamicLink = "MDL"
	OpDeleteFile      = "DEL"
	OpCopy            = "COPY"
	OpMove            = "MOVE"
)

// Error wraps a fatal command failure with the command and the offending
// argument.
type Error struct {
	Op   string // Command that failed (e.g., "MD", "DEL")
	Path string // Offending argument as given in the script
	Err  error  // Underlying error
}

// Error renders the single line reported before the run aborts
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s failed! %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed! %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements error unwrapping for the errors.Is/As functions
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Err: err}
}

// IsFatal reports whether err must abort a batch run. Name collisions and
// non-empty directories are recoverable.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrNameCollision) && !errors.Is(err, ErrNotEmpty)
}
