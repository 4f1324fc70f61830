package sexpr

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Program is an expression compiled for the expr-lang virtual machine.
//
// Operators, conditionals and bindings are translated to calls of helper
// functions so that a Program yields the same values and the same error
// kinds as [Eval]. Let-bound names are renamed apart during translation.
type Program struct {
	source  string
	program *vm.Program
}

// Compile translates e to expr-lang source and compiles it.
func Compile(e Expr) (*Program, error) {
	var t translator

	t.emit(e, nil)

	source := t.sb.String()

	program, err := expr.Compile(source, expr.Env((&machine{}).env()))
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", source))
	}

	return &Program{source: source, program: program}, nil
}

// Source returns the generated expr-lang source.
func (p *Program) Source() string { return p.source }

// Run evaluates the program. A Program may be run concurrently.
func (p *Program) Run() (Value, error) {
	m := &machine{vars: map[string]any{}}

	out, err := vm.Run(p.program, m.env())
	if m.err != nil {
		return Value{}, m.err
	}

	if err != nil {
		return Value{}, ErrEvaluate.Wrap(err).With(slog.String("source", p.source))
	}

	switch v := out.(type) {
	case int:
		return IntValue(int64(v)), nil
	case bool:
		return BoolValue(v), nil
	default:
		return Value{}, ErrEvaluate.With(
			slog.String("source", p.source),
			slog.String("result", resultTypeName(out)),
		)
	}
}

// scope maps source names to their renamed storage keys.
type scope map[string]string

type translator struct {
	sb   strings.Builder
	next int
}

var helperName = map[Operator]string{
	OpAdd: "sx_add",
	OpSub: "sx_sub",
	OpMul: "sx_mul",
	OpDiv: "sx_div",
	OpEq:  "sx_eq",
	OpLt:  "sx_lt",
	OpGt:  "sx_gt",
}

func (t *translator) emit(e Expr, s scope) {
	switch n := e.(type) {
	case Int:
		t.emitInt(int64(n))

	case Bool:
		t.sb.WriteString(strconv.FormatBool(bool(n)))

	case Var:
		if key, ok := s[string(n)]; ok {
			t.call("sx_get", func() { t.sb.WriteString(strconv.Quote(key)) })
		} else {
			t.call("sx_unbound", func() { t.sb.WriteString(strconv.Quote(string(n))) })
		}

	case *Oper:
		t.call(helperName[n.Op], func() { t.emit(n.LHS, s) }, func() { t.emit(n.RHS, s) })

	case *If:
		t.sb.WriteByte('(')
		t.call("sx_truth", func() { t.emit(n.Pred, s) })
		t.sb.WriteString(" ? ")
		t.emit(n.Then, s)
		t.sb.WriteString(" : ")
		t.emit(n.Else, s)
		t.sb.WriteByte(')')

	case *Let:
		inner := make(scope, len(s)+len(n.Bindings))
		for k, v := range s {
			inner[k] = v
		}

		// Bindings see the enclosing scope; the body sees all of them.
		keys := make([]string, len(n.Bindings))
		for i, b := range n.Bindings {
			keys[i] = b.Name + "#" + strconv.Itoa(t.next)
			t.next++
			inner[b.Name] = keys[i]
		}

		t.emitLet(n.Bindings, keys, s, n.Body, inner)
	}
}

// emitLet writes sx_seq(sx_set(k0, v0), sx_seq(sx_set(k1, v1), ... body)).
func (t *translator) emitLet(bs []Binding, keys []string, outer scope, body Expr, inner scope) {
	if len(bs) == 0 {
		t.emit(body, inner)

		return
	}

	t.call("sx_seq",
		func() {
			t.call("sx_set",
				func() { t.sb.WriteString(strconv.Quote(keys[0])) },
				func() { t.emit(bs[0].Value, outer) },
			)
		},
		func() { t.emitLet(bs[1:], keys[1:], outer, body, inner) },
	)
}

func (t *translator) emitInt(n int64) {
	switch {
	case n == math.MinInt64:
		t.sb.WriteString("sx_sub(sx_sub(0, " + strconv.FormatInt(math.MaxInt64, 10) + "), 1)")
	case n < 0:
		t.sb.WriteString("sx_sub(0, " + strconv.FormatInt(-n, 10) + ")")
	default:
		t.sb.WriteString(strconv.FormatInt(n, 10))
	}
}

func (t *translator) call(name string, args ...func()) {
	t.sb.WriteString(name)
	t.sb.WriteByte('(')

	for i, arg := range args {
		if i > 0 {
			t.sb.WriteString(", ")
		}

		arg()
	}

	t.sb.WriteByte(')')
}

// machine holds the state of one Program run. Its helper functions record
// the first domain error so that Run can return it unwrapped.
type machine struct {
	vars map[string]any
	err  error
}

func (m *machine) fail(err *Error) error {
	if m.err == nil {
		m.err = err
	}

	return err
}

func (m *machine) ints(op Operator, a, b any) (int, int, error) {
	x, xok := a.(int)
	y, yok := b.(int)

	if !xok || !yok {
		return 0, 0, m.fail(ErrTypeMismatch.With(
			slog.String("op", op.String()),
			slog.String("lhs", resultTypeName(a)),
			slog.String("rhs", resultTypeName(b)),
		))
	}

	return x, y, nil
}

func (m *machine) binary(op Operator) func(a, b any) (any, error) {
	return func(a, b any) (any, error) {
		x, y, err := m.ints(op, a, b)
		if err != nil {
			return nil, err
		}

		switch op {
		case OpAdd:
			return x + y, nil
		case OpSub:
			return x - y, nil
		case OpMul:
			return x * y, nil
		case OpDiv:
			if y == 0 {
				return nil, m.fail(ErrDivisionByZero.With(slog.Int("dividend", x)))
			}

			return x / y, nil
		case OpEq:
			return x == y, nil
		case OpLt:
			return x < y, nil
		default:
			return x > y, nil
		}
	}
}

func (m *machine) env() map[string]any {
	env := map[string]any{
		"sx_truth": func(v any) (bool, error) {
			b, ok := v.(bool)
			if !ok {
				return false, m.fail(ErrTypeMismatch.With(
					slog.String("expr", "if"),
					slog.String("pred", resultTypeName(v)),
				))
			}

			return b, nil
		},
		"sx_set": func(key string, v any) any {
			m.vars[key] = v

			return v
		},
		"sx_get": func(key string) any { return m.vars[key] },
		"sx_seq": func(_, v any) any { return v },
		"sx_unbound": func(name string) (any, error) {
			return nil, m.fail(ErrUnboundIdentifier.With(slog.String("name", name)))
		},
	}

	for op, name := range helperName {
		env[name] = m.binary(op)
	}

	return env
}

func resultTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case int:
		return KindInt.String()
	case bool:
		return KindBool.String()
	default:
		return "unknown"
	}
}
