package sexpr

import (
	"log/slog"
	"maps"
)

// Env maps names to values. The zero Env is empty.
type Env map[string]Value

// Eval evaluates e in an empty environment.
func Eval(e Expr) (Value, error) { return Env(nil).Eval(e) }

// Eval evaluates e with the names in env in scope.
func (env Env) Eval(e Expr) (Value, error) {
	switch n := e.(type) {
	case Int:
		return IntValue(int64(n)), nil

	case Bool:
		return BoolValue(bool(n)), nil

	case Var:
		if v, ok := env[string(n)]; ok {
			return v, nil
		}

		return Value{}, ErrUnboundIdentifier.With(slog.String("name", string(n)))

	case *Oper:
		lhs, err := env.Eval(n.LHS)
		if err != nil {
			return Value{}, err
		}

		rhs, err := env.Eval(n.RHS)
		if err != nil {
			return Value{}, err
		}

		return apply(n.Op, lhs, rhs)

	case *If:
		pred, err := env.Eval(n.Pred)
		if err != nil {
			return Value{}, err
		}

		b, ok := pred.Bool()
		if !ok {
			return Value{}, ErrTypeMismatch.With(
				slog.String("expr", "if"),
				slog.String("pred", pred.Kind().String()),
			)
		}

		if b {
			return env.Eval(n.Then)
		}

		return env.Eval(n.Else)

	case *Let:
		// Every binding value is evaluated in env, before the body.
		scope := make(Env, len(env)+len(n.Bindings))
		maps.Copy(scope, env)

		for _, b := range n.Bindings {
			v, err := env.Eval(b.Value)
			if err != nil {
				return Value{}, err
			}

			scope[b.Name] = v
		}

		return scope.Eval(n.Body)

	default:
		return Value{}, ErrTypeMismatch.With(slog.Any("expr", e))
	}
}

func apply(op Operator, lhs, rhs Value) (Value, error) {
	a, aok := lhs.Int()
	b, bok := rhs.Int()

	if !aok || !bok {
		return Value{}, ErrTypeMismatch.With(
			slog.String("op", op.String()),
			slog.String("lhs", lhs.Kind().String()),
			slog.String("rhs", rhs.Kind().String()),
		)
	}

	switch op {
	case OpAdd:
		return IntValue(a + b), nil
	case OpSub:
		return IntValue(a - b), nil
	case OpMul:
		return IntValue(a * b), nil
	case OpDiv:
		if b == 0 {
			return Value{}, ErrDivisionByZero.With(slog.Int64("dividend", a))
		}

		return IntValue(a / b), nil
	case OpEq:
		return BoolValue(a == b), nil
	case OpLt:
		return BoolValue(a < b), nil
	case OpGt:
		return BoolValue(a > b), nil
	default:
		return Value{}, ErrTypeMismatch.With(slog.String("op", op.String()))
	}
}
