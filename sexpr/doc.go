// Package sexpr implements a small s-expression language of integers,
// booleans, conditionals and let bindings on top of package parsec.
//
//	(let (x 6) (y 7)
//	  (if (< x y) (* x y) 0))
//
// # Syntax
//
// An expression is an integer literal, true or false, an identifier, or a
// parenthesized form:
//
//	(op lhs rhs)          op is one of + - * / = < >
//	(if pred then else)
//	(let (name expr)... body)
//
// [Parse] reads one expression, [ParseProgram] a whitespace-separated
// sequence. Parse failures are [*Error] values wrapping the [parsec.Error]
// that got furthest into the input; when that failure was caused by running
// out of input it matches [parsec.ErrEndOfStream].
//
// # Evaluation
//
// [Eval] walks the tree. Arithmetic and comparison require integers, if
// requires a boolean predicate, and / rejects a zero divisor. Let bindings
// are evaluated in the enclosing scope before the body, and shadow outer
// names of the same spelling.
//
// [Compile] translates a tree into an expr-lang program with the same
// semantics, which can be run repeatedly without re-walking the tree.
//
// # Formatting
//
// [Format] prints the canonical form; [FormatJSON] and [FormatYAML] encode
// the tree produced by [ToMap].
package sexpr
