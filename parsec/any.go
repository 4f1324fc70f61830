package parsec

import "sync"

// Any is a type-erased parser handle. Copies of an Any share the same
// underlying parse function, including one installed later by
// [Any.Define].
type Any[T any] struct {
	fn *func(*Cursor) (T, error)
}

// ToAny wraps p in an [Any] handle. If p is already an Any it is returned
// unchanged.
func ToAny[T any](p Parser[T]) Any[T] {
	if a, ok := p.(Any[T]); ok {
		return a
	}

	fn := func(c *Cursor) (T, error) { return Parse(c, p) }

	return Any[T]{fn: &fn}
}

// Declare returns an undefined handle for a rule that refers to itself.
// The rule is completed with [Any.Define].
func Declare[T any]() Any[T] {
	return Any[T]{fn: new(func(*Cursor) (T, error))}
}

// Define sets the behavior of a and every copy of it to that of p.
func (a Any[T]) Define(p Parser[T]) {
	*a.fn = func(c *Cursor) (T, error) { return Parse(c, p) }
}

// ParseRaw implements [Parser].
func (a Any[T]) ParseRaw(c *Cursor) (T, error) {
	if a.fn == nil || *a.fn == nil {
		var zero T
		return zero, c.Fail("undefined parser")
	}

	return (*a.fn)(c)
}

type lazy[T any] struct {
	get func() Parser[T]
}

// Lazy defers building a parser until it is first run. f is called at most
// once.
func Lazy[T any](f func() Parser[T]) Parser[T] {
	return lazy[T]{get: sync.OnceValue(f)}
}

func (l lazy[T]) ParseRaw(c *Cursor) (T, error) {
	return Parse(c, l.get())
}
