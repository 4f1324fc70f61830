package parsec

type just[T any] struct {
	f func() T
}

// Just consumes nothing and succeeds with f().
func Just[T any](f func() T) Parser[T] { return just[T]{f: f} }

func (j just[T]) ParseRaw(*Cursor) (T, error) { return j.f(), nil }

type fail[T any] struct {
	msg func() string
}

// Fail consumes nothing and fails at the current offset with the message
// msg returns.
func Fail[T any](msg func() string) Parser[T] { return fail[T]{msg: msg} }

func (f fail[T]) ParseRaw(c *Cursor) (T, error) {
	var zero T
	return zero, &Error{Pos: c.Pos(), msg: f.msg}
}

// FailMsg is [Fail] with a fixed message.
func FailMsg[T any](msg string) Parser[T] { return Fail[T](static(msg)) }
