package sorter

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// MoveErrorKind classifies a failed move.
type MoveErrorKind string

const (
	MovePermissionDenied  MoveErrorKind = "permission_denied"
	MoveSourceMissing     MoveErrorKind = "source_missing"
	MoveDestinationExists MoveErrorKind = "destination_exists"
	MoveIOError           MoveErrorKind = "io_error"
)

// MoveError is a failed rename of Source to Dest.
type MoveError struct {
	Kind   MoveErrorKind
	Source string
	Dest   string
	Err    error
}

func (e *MoveError) Error() string {
	switch e.Kind {
	case MovePermissionDenied:
		return fmt.Sprintf("Permission denied moving file: %v", e.Err)
	case MoveSourceMissing:
		return fmt.Sprintf("Source file no longer exists: %v", e.Err)
	case MoveDestinationExists:
		return fmt.Sprintf("Target file appeared during move: %v", e.Err)
	default:
		return fmt.Sprintf("File system error: %v", e.Err)
	}
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// classifyMoveError maps a rename failure to a MoveError. Typed errors are
// checked first, the error text is the fallback for wrapped platform errors.
func classifyMoveError(source, dest string, err error) *MoveError {
	moveErr := &MoveError{Source: source, Dest: dest, Err: err}
	msg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, fs.ErrPermission),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "operation not permitted"):
		moveErr.Kind = MovePermissionDenied
	case errors.Is(err, fs.ErrNotExist), strings.Contains(msg, "no such file"):
		// A missing destination folder also reports "not exist".
		if pathExists(source) {
			moveErr.Kind = MoveIOError
		} else {
			moveErr.Kind = MoveSourceMissing
		}
	case errors.Is(err, fs.ErrExist),
		strings.Contains(msg, "file exists"),
		strings.Contains(msg, "directory not empty"):
		moveErr.Kind = MoveDestinationExists
	default:
		moveErr.Kind = MoveIOError
	}
	return moveErr
}
