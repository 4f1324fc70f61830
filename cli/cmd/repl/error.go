package repl

import (
	"errors"
	"log/slog"
)

// Error is a REPL error carrying structured attributes.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

func newError(msg string) *Error { return &Error{msg: msg} }

func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}

	return e.msg + ": " + e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.msg == e.msg
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)
	attrs = append(attrs, slog.String("error", e.msg))

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{msg: e.msg, err: e.err, attrs: append(clip(e.attrs), attrs...)}
}

func clip(attrs []slog.Attr) []slog.Attr { return attrs[:len(attrs):len(attrs)] }

// Sentinel errors.
var (
	ErrOutOfBounds = newError("history index out of range")
	ErrReadLine    = newError("read input line")
)
