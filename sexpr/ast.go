package sexpr

import (
	"strconv"
	"strings"
)

// Expr is a node of the expression tree. String renders the canonical
// s-expression form, which parses back to an equal tree.
type Expr interface {
	String() string
	expr()
}

// Atom is a leaf expression: [Int], [Bool] or [Var].
type Atom interface {
	Expr
	atom()
}

// Int is an integer literal.
type Int int64

// Bool is a boolean literal.
type Bool bool

// Var is a reference to a let-bound name.
type Var string

// Oper applies a binary operator.
type Oper struct {
	Op       Operator
	LHS, RHS Expr
}

// If selects Then or Else by the value of Pred.
type If struct {
	Pred, Then, Else Expr
}

// Binding associates a name with the expression that provides its value.
type Binding struct {
	Name  string
	Value Expr
}

// Let evaluates Body with Bindings in scope.
type Let struct {
	Bindings []Binding
	Body     Expr
}

func (Int) expr() {}
func (Bool) expr() {}
func (Var) expr() {}
func (*Oper) expr() {}
func (*If) expr() {}
func (*Let) expr() {}

func (Int) atom() {}
func (Bool) atom() {}
func (Var) atom() {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (v Var) String() string { return string(v) }

func (o *Oper) String() string {
	return "(" + o.Op.String() + " " + o.LHS.String() + " " + o.RHS.String() + ")"
}

func (i *If) String() string {
	return "(if " + i.Pred.String() + " " + i.Then.String() + " " + i.Else.String() + ")"
}

func (l *Let) String() string {
	var sb strings.Builder

	sb.WriteString("(let")

	for _, b := range l.Bindings {
		sb.WriteString(" (")
		sb.WriteString(b.Name)
		sb.WriteByte(' ')
		sb.WriteString(b.Value.String())
		sb.WriteByte(')')
	}

	sb.WriteByte(' ')
	sb.WriteString(l.Body.String())
	sb.WriteByte(')')

	return sb.String()
}

// Operator is a binary operator symbol.
type Operator rune

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
	OpEq  Operator = '='
	OpLt  Operator = '<'
	OpGt  Operator = '>'
)

// Operators lists every operator in display order.
var Operators = []Operator{OpAdd, OpSub, OpMul, OpDiv, OpEq, OpLt, OpGt}

func (o Operator) String() string { return string(o) }

// Valid reports whether o is one of [Operators].
func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpEq, OpLt, OpGt:
		return true
	default:
		return false
	}
}

// Keywords are the reserved words of the language.
var Keywords = []string{"if", "let", "true", "false"}

// Walk calls f for e and, while f returns true, for each of its children
// depth-first.
func Walk(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}

	switch n := e.(type) {
	case *Oper:
		Walk(n.LHS, f)
		Walk(n.RHS, f)

	case *If:
		Walk(n.Pred, f)
		Walk(n.Then, f)
		Walk(n.Else, f)

	case *Let:
		for _, b := range n.Bindings {
			Walk(b.Value, f)
		}

		Walk(n.Body, f)
	}
}

// BoundNames returns the names introduced by let expressions in e, in order
// of appearance and without duplicates.
func BoundNames(e Expr) []string {
	var names []string

	seen := map[string]bool{}

	Walk(e, func(n Expr) bool {
		if l, ok := n.(*Let); ok {
			for _, b := range l.Bindings {
				if !seen[b.Name] {
					seen[b.Name] = true
					names = append(names, b.Name)
				}
			}
		}

		return true
	})

	return names
}
