package types

import (
	"errors"
	"fmt"
	"io/fs"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// ErrorKind classifies a failure so the CLI can map it to an exit code.
type ErrorKind int

const (
	// KindUnknown is any error that was not classified.
	KindUnknown ErrorKind = iota

	// KindUsage is a command-line usage problem.
	KindUsage

	// KindFileNotFound means the input file does not exist.
	KindFileNotFound

	// KindIO means a file could not be read or written.
	KindIO

	// KindParse means the input is structurally malformed.
	KindParse

	// KindConfig means the configuration file is unreadable or invalid.
	KindConfig
)

// String returns the name used in error messages.
func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage error"
	case KindFileNotFound:
		return "file not found"
	case KindIO:
		return "I/O error"
	case KindParse:
		return "parse error"
	case KindConfig:
		return "config error"
	default:
		return "error"
	}
}

// Process exit codes.
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitFileNotFound = 2
	ExitIO           = 3
	ExitParse        = 4
	ExitConfig       = 5
)

// =============================================================================
// ERROR TYPE
// =============================================================================

// Error is a classified failure.
type Error struct {
	// Kind is the failure class.
	Kind ErrorKind

	// Op describes what was being done ("read", "write", "parse", ...).
	Op string

	// Path is the file involved, if any.
	Path string

	// Line is the 1-based line number for parse errors; 0 when unknown.
	Line int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewFileError classifies a filesystem failure: a missing file becomes
// KindFileNotFound, anything else KindIO.
func NewFileError(op, path string, err error) *Error {
	kind := KindIO
	if errors.Is(err, fs.ErrNotExist) {
		kind = KindFileNotFound
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// NewIOError reports a read or write failure regardless of its cause.
func NewIOError(op, path string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

// NewParseError reports malformed input at line (0 if unknown).
func NewParseError(path string, line int, err error) *Error {
	return &Error{Kind: KindParse, Op: "parse", Path: path, Line: line, Err: err}
}

// NewConfigError reports an unusable configuration file.
func NewConfigError(path string, err error) *Error {
	return &Error{Kind: KindConfig, Op: "load config", Path: path, Err: err}
}

// NewUsageError reports a command-line usage problem.
func NewUsageError(err error) *Error {
	return &Error{Kind: KindUsage, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindFileNotFound:
		return ExitFileNotFound
	case KindIO:
		return ExitIO
	case KindParse:
		return ExitParse
	case KindConfig:
		return ExitConfig
	default:
		return ExitUsage
	}
}
