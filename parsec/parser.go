package parsec

// Parser is anything that can consume a prefix of a [Cursor] and produce a T.
//
// ParseRaw does not roll back on failure; callers use [Parse], which wraps it
// in a [Transaction].
type Parser[T any] interface {
	ParseRaw(c *Cursor) (T, error)
}

// Func adapts an ordinary function to the [Parser] interface.
type Func[T any] func(c *Cursor) (T, error)

// ParseRaw calls f(c).
func (f Func[T]) ParseRaw(c *Cursor) (T, error) { return f(c) }

// Parse runs p against c inside a transaction.
func Parse[T any](c *Cursor, p Parser[T]) (T, error) {
	return Transaction(c, p.ParseRaw)
}

// ParseBy is the entry point for driving a parser over a prepared Cursor.
func ParseBy[T any](c *Cursor, p Parser[T]) (T, error) {
	return Parse(c, p)
}

// Run parses input with p from the beginning. Trailing input is not an
// error; compose with [EOS] to require it.
func Run[T any](input string, p Parser[T]) (T, error) {
	return ParseBy(NewCursor(input), p)
}
