package pictdb

import (
	"errors"
	"fmt"
)

// Kind classifies the error returned by a pictDB operation.
type Kind int

const (
	// KindInvalidArgument covers malformed operation arguments not
	// otherwise classified (empty bytes, unknown resolution index, etc).
	KindInvalidArgument Kind = iota
	// KindInvalidFilename is returned when a database path is empty or
	// exceeds the name-length limit.
	KindInvalidFilename
	// KindInvalidPicId is returned when a picture identifier is empty or
	// exceeds the identifier-length limit.
	KindInvalidPicId
	// KindIO wraps an underlying file I/O failure (short read/write,
	// seek failure, open/rename failure).
	KindIO
	// KindOutOfMemory is returned when an in-memory allocation needed to
	// hold the metadata table cannot be satisfied.
	KindOutOfMemory
	// KindFileNotFound is returned when no slot matches a requested id.
	KindFileNotFound
	// KindFullDatabase is returned when no empty slot remains.
	KindFullDatabase
	// KindDuplicateId is returned when an id already names a valid slot.
	KindDuplicateId
	// KindMaxFiles is returned when max_files is zero or exceeds the
	// table capacity limit.
	KindMaxFiles
	// KindResolutions is returned for an unknown resolution tag or a
	// resized dimension outside its bounds.
	KindResolutions
	// KindImage wraps a decode/dimension/resize/encode failure from the
	// image adapter.
	KindImage
	// KindNotEnoughArguments is returned by the CLI collaborator only.
	KindNotEnoughArguments
	// KindInvalidCommand is returned by the CLI collaborator only.
	KindInvalidCommand
)

// String returns a short machine-stable name for the kind, used in error
// messages and CLI exit diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindInvalidFilename:
		return "InvalidFilename"
	case KindInvalidPicId:
		return "InvalidPicId"
	case KindIO:
		return "Io"
	case KindOutOfMemory:
		return "OutOfMemory"
	case KindFileNotFound:
		return "FileNotFound"
	case KindFullDatabase:
		return "FullDatabase"
	case KindDuplicateId:
		return "DuplicateId"
	case KindMaxFiles:
		return "MaxFiles"
	case KindResolutions:
		return "Resolutions"
	case KindImage:
		return "Image"
	case KindNotEnoughArguments:
		return "NotEnoughArguments"
	case KindInvalidCommand:
		return "InvalidCommand"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every fallible pictDB
// operation. Op names the operation that failed (e.g. "insert", "read").
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pictdb: %s: %s: %v", e.Op, e.Kind, e.Err)
	}

	return fmt.Sprintf("pictdb: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's Kind, so that
// errors.Is(err, pictdb.ErrFileNotFound) works regardless of Op/Err.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*kindSentinel)
	if !ok {
		return false
	}

	return e.Kind == sentinel.kind
}

// kindSentinel lets callers match on Kind via errors.Is without exposing
// Kind comparison directly.
type kindSentinel struct{ kind Kind }

func (s *kindSentinel) Error() string { return s.kind.String() }

// Sentinels usable with errors.Is against any *Error of the matching Kind.
var (
	ErrInvalidArgument    error = &kindSentinel{KindInvalidArgument}
	ErrInvalidFilename    error = &kindSentinel{KindInvalidFilename}
	ErrInvalidPicId       error = &kindSentinel{KindInvalidPicId}
	ErrIO                 error = &kindSentinel{KindIO}
	ErrOutOfMemory        error = &kindSentinel{KindOutOfMemory}
	ErrFileNotFound       error = &kindSentinel{KindFileNotFound}
	ErrFullDatabase       error = &kindSentinel{KindFullDatabase}
	ErrDuplicateId        error = &kindSentinel{KindDuplicateId}
	ErrMaxFiles           error = &kindSentinel{KindMaxFiles}
	ErrResolutions        error = &kindSentinel{KindResolutions}
	ErrImage              error = &kindSentinel{KindImage}
	ErrNotEnoughArguments error = &kindSentinel{KindNotEnoughArguments}
	ErrInvalidCommand     error = &kindSentinel{KindInvalidCommand}
)

// newErr builds a classified *Error, wrapping err for context.
func newErr(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewCommandError builds a classified *Error for [KindNotEnoughArguments]
// and [KindInvalidCommand], the two kinds owned by the CLI collaborator
// rather than the core.
func NewCommandError(kind Kind, op string, err error) error {
	if kind != KindNotEnoughArguments && kind != KindInvalidCommand {
		panic(fmt.Sprintf("pictdb: NewCommandError called with non-CLI kind %s", kind))
	}

	return newErr(kind, op, err)
}

// KindOf extracts the Kind from err, returning (kind, true) if err (or
// something it wraps) is a *Error, or (KindIO, false) otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}

	return KindIO, false
}
