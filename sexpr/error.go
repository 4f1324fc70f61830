package sexpr

import (
	"errors"
	"log/slog"
	"strings"
)

// Sentinel errors. Use [errors.Is] to classify an error returned by this
// package; the returned values carry extra attributes and are distinct
// pointers.
var (
	ErrParse             = NewError("parse error")
	ErrTypeMismatch      = NewError("Type Mismatch")
	ErrUnboundIdentifier = NewError("Unbound Identifier")
	ErrDivisionByZero    = NewError("Division By Zero")
	ErrReadInput         = NewError("failed to read input")
	ErrCompile           = NewError("expression compilation failed")
	ErrEvaluate          = NewError("expression evaluation failed")
	ErrBackend           = NewError("unknown backend")
)

// Error is an error with structured logging attributes.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns an Error with the given message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError converts err into an [*Error], returning it unchanged if it
// already is one.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error renders "<msg>: <cause>", omitting whichever part is empty.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error with the same message, so that
// errors derived from a sentinel with [Error.Wrap] or [Error.With] still
// match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e with err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...),
	}
}
