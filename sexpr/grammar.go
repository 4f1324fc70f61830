package sexpr

import (
	"errors"

	"github.com/ardnew/parsec/log"
	"github.com/ardnew/parsec/parsec"
)

var errExpectOperator = errors.New("expect operator")

// grammar builds the expression parser. When logger is enabled at trace
// level every rule logs its outcome.
//
//	exp     = let | if | oper | atom
//	let     = "(" "let" binding* exp ")"
//	binding = "(" identifier exp ")"
//	if      = "(" "if" exp exp exp ")"
//	oper    = "(" operator exp exp ")"
//	atom    = number | bool | identifier
func grammar(logger log.Logger) parsec.Parser[Expr] {
	if !logger.Enabled(log.LevelTrace) {
		logger = log.Logger{}
	}

	rule := func(name string, p parsec.Parser[Expr]) parsec.Parser[Expr] {
		return parsec.Trace(p, name, logger)
	}

	exp := parsec.Declare[Expr]()
	exp.Define(parsec.TrimWhitespaces(parsec.Choice(
		rule("let", letExpr(exp)),
		rule("if", ifExpr(exp)),
		rule("oper", operExpr(exp)),
		rule("atom", atomExpr()),
		parsec.FailMsg[Expr]("syntax error"),
	)))

	return exp
}

func atomExpr() parsec.Parser[Expr] {
	return parsec.Choice(
		parsec.Map(parsec.Number(), func(n int64) Expr { return Int(n) }),
		parsec.Map(parsec.Bool(), func(b bool) Expr { return Bool(b) }),
		parsec.Map(parsec.Identifier(), func(s string) Expr { return Var(s) }),
		parsec.FailMsg[Expr]("atom expression syntax error"),
	)
}

func operator() parsec.Parser[Operator] {
	return parsec.AndThen(parsec.AnyChar(), func(r rune) (Operator, error) {
		if op := Operator(r); op.Valid() {
			return op, nil
		}

		return 0, errExpectOperator
	})
}

func operExpr(exp parsec.Parser[Expr]) parsec.Parser[Expr] {
	body := parsec.FlatMap(operator(), func(op Operator) parsec.Parser[Expr] {
		return parsec.Map(parsec.Pair(exp, exp), func(t parsec.Tuple[Expr, Expr]) Expr {
			return &Oper{Op: op, LHS: t.Left, RHS: t.Right}
		})
	})

	return parsec.Or(
		parsec.Parens(body),
		parsec.FailMsg[Expr]("operator expression syntax error"),
	)
}

func ifExpr(exp parsec.Parser[Expr]) parsec.Parser[Expr] {
	body := parsec.UseRight(
		parsec.String("if"),
		parsec.Pair(exp, parsec.Pair(exp, exp)),
	)

	return parsec.Or(
		parsec.Parens(parsec.Map(body, func(t parsec.Tuple[Expr, parsec.Tuple[Expr, Expr]]) Expr {
			return &If{Pred: t.Left, Then: t.Right.Left, Else: t.Right.Right}
		})),
		parsec.FailMsg[Expr]("if expression syntax error"),
	)
}

func binding(exp parsec.Parser[Expr]) parsec.Parser[Binding] {
	return parsec.Or(
		parsec.Parens(parsec.Map(
			parsec.Pair(parsec.Identifier(), exp),
			func(t parsec.Tuple[string, Expr]) Binding {
				return Binding{Name: t.Left, Value: t.Right}
			},
		)),
		parsec.FailMsg[Binding]("expect binding"),
	)
}

func letExpr(exp parsec.Parser[Expr]) parsec.Parser[Expr] {
	body := parsec.UseRight(
		parsec.String("let"),
		parsec.Pair(parsec.Many(binding(exp)), exp),
	)

	return parsec.Or(
		parsec.Parens(parsec.Map(body, func(t parsec.Tuple[[]Binding, Expr]) Expr {
			return &Let{Bindings: t.Left, Body: t.Right}
		})),
		parsec.FailMsg[Expr]("let expression syntax error"),
	)
}
