package serial

import (
	"errors"
	"syscall"
)

// Kind categorizes a Error the way §7 of the design taxonomizes
// failures: by what went wrong, not by which call produced it.
type Kind string

const (
	KindInvalid      Kind = "invalid"
	KindOSError      Kind = "os-error"
	KindOutOfMemory  Kind = "out-of-memory"
	KindPipe         Kind = "pipe"
	KindNotSupported Kind = "not-supported"
)

// Error is microserial's structured error type. It generalizes
// Daedaluz-goserial's Error{msg, err} wrapper with an explicit Kind so
// callers can branch with errors.Is/errors.As instead of string
// matching.
type Error struct {
	Op    string // operation that failed, e.g. "open", "configure"
	Kind  Kind
	Errno syscall.Errno // populated when Kind == KindOSError
	msg   string
	err   error
}

func (e *Error) Error() string {
	text := e.msg
	if text == "" {
		text = string(e.Kind)
	}
	if e.Op != "" {
		text = e.Op + ": " + text
	}
	if e.err != nil {
		text += ": " + e.err.Error()
	}
	return text
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is supports errors.Is comparisons against a sentinel created with
// the same Kind (and, for os-error, the same Errno).
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != te.Kind {
		return false
	}
	if e.Kind == KindOSError && te.Errno != 0 {
		return e.Errno == te.Errno
	}
	return true
}

func newError(op string, kind Kind, msg string) *Error {
	return &Error{Op: op, Kind: kind, msg: msg}
}

func wrapOSError(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return &Error{Op: op, Kind: KindOSError, msg: err.Error(), err: err}
	}
	return &Error{Op: op, Kind: KindOSError, Errno: errno, msg: errno.Error(), err: err}
}

// Sentinel errors usable with errors.Is(err, serial.ErrInvalid) etc.
// without regard to Op or Errno.
var (
	ErrInvalid      = &Error{Kind: KindInvalid}
	ErrOutOfMemory  = &Error{Kind: KindOutOfMemory}
	ErrPipe         = &Error{Kind: KindPipe}
	ErrNotSupported = &Error{Kind: KindNotSupported}
	// ErrBusy reports that an operation is illegal while the worker is
	// running (spec.md §9's "reconfigure while running" resolution).
	ErrBusy = newError("", KindInvalid, "port is running")
	// ErrClosed reports use of a Port after Close.
	ErrClosed = newError("", KindInvalid, "port is closed")
)
