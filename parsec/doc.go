// Package parsec is a parser-combinator engine for building recursive-descent
// parsers over a character stream.
//
// A grammar is assembled ahead of time from small [Parser] values: primitive
// consumers such as [Char], [String], [Number] and [Identifier], and
// combinators such as [Map], [Pair], [Or], [Many] and [Label]. Parsers are
// immutable descriptors; all mutable state lives in the [Cursor] passed at
// call time, so a single grammar may be shared by any number of concurrent
// parses as long as each parse owns its own Cursor.
//
// # Transactions
//
// Every invocation of a parser through [Parse] is transactional. If the
// parser fails, the Cursor is restored to the offset it had on entry, so no
// partial consumption ever leaks across a failed composition boundary.
// Snapshots record only the offset; the rune buffer is never copied.
//
// # Errors
//
// The only error produced by the engine is [*Error], a position paired with a
// lazily computed message. [Or] keeps the failure with the greater position
// (ties favor the right alternative) so the reported error is the one that
// got furthest into the input. Repetitions swallow the failure that ends
// them. Errors render as "[<position>] <message>".
//
// # Recursion
//
// Rules that refer to themselves use the type-erased [Any] handle:
//
//	expr := parsec.Declare[int]()
//	expr.Define(parsec.Or(
//		parsec.Number(),
//		parsec.Between(expr, parsec.Char('('), parsec.Char(')')),
//	))
//
//	n, err := parsec.Run("((42))", expr)
//
// # Hazards
//
// Repetition combinators do not check that an iteration consumed input. A
// repeated parser that can succeed on empty input (for example [Many] of
// [Whitespaces]) loops forever.
package parsec
