package parsec

// Cursor is the read position over an input rune sequence.
//
// A Cursor belongs to exactly one in-flight parse.
type Cursor struct {
	input     []rune
	pos       int
	exhausted bool
}

// NewCursor returns a Cursor positioned at the start of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: []rune(input)}
}

// Next returns the rune at the current offset and advances past it.
// At the end of input it returns an end-of-stream error and does not advance.
func (c *Cursor) Next() (rune, error) {
	if c.pos >= len(c.input) {
		c.exhausted = true

		return 0, EndOfStream(c.pos)
	}

	r := c.input[c.pos]
	c.pos++

	return r, nil
}

// Pos returns the current rune offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the length of the input in runes.
func (c *Cursor) Len() int { return len(c.input) }

// Exhausted reports whether any read, including one later rolled back,
// reached the end of input. It is diagnostic state kept for the life of the
// Cursor; [Transaction] restores only the offset.
func (c *Cursor) Exhausted() bool { return c.exhausted }

// Remaining returns the number of runes not yet consumed.
func (c *Cursor) Remaining() int { return len(c.input) - c.pos }

// Fail returns an error with the given message at the current offset.
func (c *Cursor) Fail(msg string) *Error {
	return NewError(c.pos, msg)
}

// Errorf returns an error at the current offset whose message is formatted
// when first rendered.
func (c *Cursor) Errorf(format string, args ...any) *Error {
	return Errorf(c.pos, format, args...)
}

// Transaction runs f against c and restores the offset c had on entry if f
// fails. The offset is the only state a rollback restores.
func Transaction[T any](c *Cursor, f func(*Cursor) (T, error)) (T, error) {
	pos := c.pos

	v, err := f(c)
	if err != nil {
		c.pos = pos
	}

	return v, err
}
