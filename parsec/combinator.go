package parsec

// Tuple holds the results of a [Pair].
type Tuple[L, R any] struct {
	Left  L
	Right R
}

type mapped[T, U any] struct {
	p Parser[T]
	f func(T) U
}

// Map transforms the result of p with f.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return mapped[T, U]{p: p, f: f}
}

func (m mapped[T, U]) ParseRaw(c *Cursor) (U, error) {
	v, err := Parse(c, m.p)
	if err != nil {
		var zero U
		return zero, err
	}

	return m.f(v), nil
}

type andThen[T, U any] struct {
	p Parser[T]
	f func(T) (U, error)
}

// AndThen transforms the result of p with a fallible f. An error from f
// becomes a parse error at the offset reached by p.
func AndThen[T, U any](p Parser[T], f func(T) (U, error)) Parser[U] {
	return andThen[T, U]{p: p, f: f}
}

func (a andThen[T, U]) ParseRaw(c *Cursor) (U, error) {
	var zero U

	v, err := Parse(c, a.p)
	if err != nil {
		return zero, err
	}

	u, err := a.f(v)
	if err != nil {
		return zero, &Error{Pos: c.Pos(), msg: err.Error}
	}

	return u, nil
}

type flatMapped[T, U any] struct {
	p Parser[T]
	f func(T) Parser[U]
}

// FlatMap runs p and then the parser f builds from its result.
func FlatMap[T, U any](p Parser[T], f func(T) Parser[U]) Parser[U] {
	return flatMapped[T, U]{p: p, f: f}
}

func (m flatMapped[T, U]) ParseRaw(c *Cursor) (U, error) {
	v, err := Parse(c, m.p)
	if err != nil {
		var zero U
		return zero, err
	}

	return Parse(c, m.f(v))
}

type pair[L, R any] struct {
	l Parser[L]
	r Parser[R]
}

// Pair runs l then r and returns both results.
func Pair[L, R any](l Parser[L], r Parser[R]) Parser[Tuple[L, R]] {
	return pair[L, R]{l: l, r: r}
}

func (p pair[L, R]) ParseRaw(c *Cursor) (Tuple[L, R], error) {
	var t Tuple[L, R]
	var err error

	if t.Left, err = Parse(c, p.l); err != nil {
		return Tuple[L, R]{}, err
	}

	if t.Right, err = Parse(c, p.r); err != nil {
		return Tuple[L, R]{}, err
	}

	return t, nil
}

// UseLeft runs l then r and keeps the result of l.
func UseLeft[L, R any](l Parser[L], r Parser[R]) Parser[L] {
	return Map(Pair(l, r), func(t Tuple[L, R]) L { return t.Left })
}

// UseRight runs l then r and keeps the result of r.
func UseRight[L, R any](l Parser[L], r Parser[R]) Parser[R] {
	return Map(Pair(l, r), func(t Tuple[L, R]) R { return t.Right })
}

// Between runs l, p and r in sequence and keeps the result of p.
func Between[T, L, R any](p Parser[T], l Parser[L], r Parser[R]) Parser[T] {
	return UseLeft(UseRight(l, p), r)
}

type or[T any] struct {
	a, b Parser[T]
}

// Or tries a and, if it fails, b from the same offset. When both fail the
// error that reached further into the input is returned; on a tie the error
// from b wins.
func Or[T any](a, b Parser[T]) Parser[T] {
	return or[T]{a: a, b: b}
}

func (o or[T]) ParseRaw(c *Cursor) (T, error) {
	v, aerr := Parse(c, o.a)
	if aerr == nil {
		return v, nil
	}

	v, berr := Parse(c, o.b)
	if berr == nil {
		return v, nil
	}

	if position(aerr, c.Pos()) > position(berr, c.Pos()) {
		return v, aerr
	}

	return v, berr
}

// Choice is the left fold of [Or] over ps. It panics if ps is empty.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	if len(ps) == 0 {
		panic("parsec: Choice requires at least one parser")
	}

	p := ps[0]
	for _, q := range ps[1:] {
		p = Or(p, q)
	}

	return p
}

type some[T any] struct {
	p Parser[T]
}

// Some runs p one or more times and collects the results. It fails only if
// the first attempt fails.
func Some[T any](p Parser[T]) Parser[[]T] {
	return some[T]{p: p}
}

func (s some[T]) ParseRaw(c *Cursor) ([]T, error) {
	v, err := Parse(c, s.p)
	if err != nil {
		return nil, err
	}

	res := []T{v}
	for {
		v, err := Parse(c, s.p)
		if err != nil {
			return res, nil
		}

		res = append(res, v)
	}
}

// Many runs p zero or more times and collects the results. It never fails.
func Many[T any](p Parser[T]) Parser[[]T] {
	return Or(Some(p), Just(func() []T { return []T{} }))
}

type manyTill[T, E any] struct {
	p   Parser[T]
	end Parser[E]
}

// ManyTill runs p repeatedly until end succeeds. The end parser is tried
// first on every iteration; its input is consumed and its value discarded.
// A failure of p is returned as is.
func ManyTill[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return manyTill[T, E]{p: p, end: end}
}

func (m manyTill[T, E]) ParseRaw(c *Cursor) ([]T, error) {
	res := []T{}
	for {
		if _, err := Parse(c, m.end); err == nil {
			return res, nil
		}

		v, err := Parse(c, m.p)
		if err != nil {
			return nil, err
		}

		res = append(res, v)
	}
}

type filtered[T any] struct {
	p    Parser[T]
	pred func(T) bool
}

// Filter succeeds with the result of p only if pred holds for it.
// Otherwise it fails with "unsatisfied" at the offset reached by p.
func Filter[T any](p Parser[T], pred func(T) bool) Parser[T] {
	return filtered[T]{p: p, pred: pred}
}

func (f filtered[T]) ParseRaw(c *Cursor) (T, error) {
	v, err := Parse(c, f.p)
	if err != nil {
		return v, err
	}

	if !f.pred(v) {
		var zero T
		return zero, c.Fail("unsatisfied")
	}

	return v, nil
}

// Split parses one p followed by any number of sep, p sequences. The
// separators are discarded.
func Split[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Map(
		Pair(p, Many(UseRight(sep, p))),
		func(t Tuple[T, []T]) []T {
			return append([]T{t.Left}, t.Right...)
		},
	)
}

type labeled[T any] struct {
	p   Parser[T]
	msg func() string
}

// Label replaces the message of any error from p with msg, keeping the
// error's position. msg is only called when the error is rendered.
func Label[T any](p Parser[T], msg func() string) Parser[T] {
	return labeled[T]{p: p, msg: msg}
}

// Expect labels p with "expect <what>".
func Expect[T any](p Parser[T], what string) Parser[T] {
	return Label(p, static("expect "+what))
}

func (l labeled[T]) ParseRaw(c *Cursor) (T, error) {
	v, err := Parse(c, l.p)
	if err != nil {
		return v, AsError(err, c.Pos()).relabel(l.msg)
	}

	return v, nil
}

type debugged[T any] struct {
	p Parser[T]
	f func(T, error)
}

// Debug calls f with the outcome of every run of p without changing it.
func Debug[T any](p Parser[T], f func(T, error)) Parser[T] {
	return debugged[T]{p: p, f: f}
}

func (d debugged[T]) ParseRaw(c *Cursor) (T, error) {
	v, err := Parse(c, d.p)
	d.f(v, err)

	return v, err
}

// Trim runs p surrounded by ws on both sides.
func Trim[T, W any](p Parser[T], ws Parser[W]) Parser[T] {
	return Between(p, ws, ws)
}

// TrimWhitespaces runs p surrounded by optional whitespace.
func TrimWhitespaces[T any](p Parser[T]) Parser[T] {
	return Trim(p, Whitespaces())
}

// Parens runs p, surrounded by optional whitespace, between '(' and ')'.
// Whitespace around the parentheses is consumed as well.
func Parens[T any](p Parser[T]) Parser[T] {
	return TrimWhitespaces(Between(TrimWhitespaces(p), Char('('), Char(')')))
}

func position(err error, fallback int) int {
	return AsError(err, fallback).Pos
}
