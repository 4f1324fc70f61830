package sexpr

import "strconv"

// Kind is the dynamic type of a [Value].
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the result of evaluating an expression: an integer or a boolean.
type Value struct {
	kind Kind
	n    int64
}

// IntValue returns an integer Value.
func IntValue(n int64) Value { return Value{kind: KindInt, n: n} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.n = 1
	}

	return v
}

// Kind returns the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer held by v, if any.
func (v Value) Int() (int64, bool) { return v.n, v.kind == KindInt }

// Bool returns the boolean held by v, if any.
func (v Value) Bool() (bool, bool) { return v.n != 0, v.kind == KindBool }

// Any returns v as an int64 or bool.
func (v Value) Any() any {
	if v.kind == KindBool {
		return v.n != 0
	}

	return v.n
}

func (v Value) String() string {
	if v.kind == KindBool {
		return strconv.FormatBool(v.n != 0)
	}

	return strconv.FormatInt(v.n, 10)
}
