package parsec

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// ErrEndOfStream matches, via [errors.Is], every error raised because the
// input was exhausted.
var ErrEndOfStream = &Error{msg: static("end of stream"), eos: true}

// Error is a parse failure at an input offset.
//
// The message is computed on demand, so building an error on a hot
// backtracking path costs nothing unless it is rendered.
type Error struct {
	// Pos is the rune offset at which the failure was raised.
	Pos int

	msg func() string
	eos bool
}

// NewError returns an error at pos with a fixed message.
func NewError(pos int, msg string) *Error {
	return &Error{Pos: pos, msg: static(msg)}
}

// Errorf returns an error at pos whose message is formatted only when it is
// first requested.
func Errorf(pos int, format string, args ...any) *Error {
	return &Error{
		Pos: pos,
		msg: func() string { return fmt.Sprintf(format, args...) },
	}
}

// EndOfStream returns an end-of-stream error at pos.
func EndOfStream(pos int) *Error {
	return &Error{Pos: pos, msg: ErrEndOfStream.msg, eos: true}
}

// Message returns the error message without the position prefix.
func (e *Error) Message() string {
	if e.msg == nil {
		return ""
	}

	return e.msg()
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "[" + strconv.Itoa(e.Pos) + "] " + e.Message()
}

// Is reports whether e is an end-of-stream error when target is
// [ErrEndOfStream].
func (e *Error) Is(target error) bool {
	return target == ErrEndOfStream && e.eos
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("pos", e.Pos),
		slog.String("error", e.Message()),
	)
}

// relabel returns a copy of e at the same position with a new message.
func (e *Error) relabel(msg func() string) *Error {
	return &Error{Pos: e.Pos, msg: msg}
}

// AsError converts err into an [*Error]. Errors that did not originate in
// the engine are placed at pos.
func AsError(err error, pos int) *Error {
	if err == nil {
		return nil
	}

	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}

	return &Error{Pos: pos, msg: err.Error}
}

func static(msg string) func() string {
	return func() string { return msg }
}
