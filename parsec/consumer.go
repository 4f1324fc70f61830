package parsec

import (
	"strconv"
	"strings"
	"unicode"
)

type anyChar struct{}

func (anyChar) ParseRaw(c *Cursor) (rune, error) { return c.Next() }

// AnyChar consumes a single rune.
func AnyChar() Parser[rune] { return anyChar{} }

// Char consumes the rune r.
func Char(r rune) Parser[rune] {
	return Label(
		Filter(AnyChar(), func(got rune) bool { return got == r }),
		func() string { return "expect '" + string(r) + "'" },
	)
}

// Whitespace consumes one Unicode whitespace rune.
func Whitespace() Parser[rune] {
	return Expect(Filter(AnyChar(), unicode.IsSpace), "whitespace")
}

// Whitespaces consumes zero or more whitespace runes.
func Whitespaces() Parser[string] {
	return Map(Many(Whitespace()), runesToString)
}

// Alphabetic consumes one ASCII letter.
func Alphabetic() Parser[rune] {
	return Expect(Filter(AnyChar(), isAlpha), "alphabetic")
}

// Digit consumes one ASCII decimal digit.
func Digit() Parser[rune] {
	return Expect(Filter(AnyChar(), isDigit), "digit")
}

// Number consumes one or more digits as a signed 64-bit decimal integer.
func Number() Parser[int64] {
	return Expect(
		AndThen(Map(Some(Digit()), runesToString), func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		}),
		"number",
	)
}

// Identifier consumes a letter or underscore followed by any number of
// letters, digits and underscores.
func Identifier() Parser[string] {
	head := Or(Alphabetic(), Char('_'))
	tail := Many(Choice(Alphabetic(), Digit(), Char('_')))

	return Expect(
		Map(Pair(head, tail), func(t Tuple[rune, []rune]) string {
			var sb strings.Builder
			sb.WriteRune(t.Left)
			sb.WriteString(string(t.Right))

			return sb.String()
		}),
		"identifier",
	)
}

type literal string

// String consumes exactly s. On mismatch nothing is consumed and the error
// is reported where the match began.
func String(s string) Parser[string] { return literal(s) }

func (l literal) ParseRaw(c *Cursor) (string, error) {
	start := c.Pos()

	_, err := Transaction(c, func(c *Cursor) (struct{}, error) {
		for _, want := range string(l) {
			got, err := c.Next()
			if err != nil {
				return struct{}{}, err
			}

			if got != want {
				return struct{}{}, c.Fail("mismatch")
			}
		}

		return struct{}{}, nil
	})
	if err != nil {
		return "", Errorf(start, "expect %q", string(l))
	}

	return string(l), nil
}

// Bool consumes "true" or "false".
func Bool() Parser[bool] {
	return Expect(
		Or(
			Map(String("true"), func(string) bool { return true }),
			Map(String("false"), func(string) bool { return false }),
		),
		"bool",
	)
}

type eos struct{}

// EOS succeeds only when the input is exhausted.
func EOS() Parser[struct{}] { return eos{} }

func (eos) ParseRaw(c *Cursor) (struct{}, error) {
	if _, err := c.Next(); err != nil {
		return struct{}{}, nil
	}

	return struct{}{}, c.Fail("expect end of stream")
}

func isAlpha(r rune) bool { return r < unicode.MaxASCII && unicode.IsLetter(r) }
func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func runesToString(rs []rune) string { return string(rs) }
