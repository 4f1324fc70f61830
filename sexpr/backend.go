package sexpr

import (
	"log/slog"
	"strings"
)

// Backend selects how an expression is evaluated.
type Backend uint8

const (
	// BackendTree walks the syntax tree with [Eval].
	BackendTree Backend = iota
	// BackendExpr compiles the tree with [Compile] and runs it on the
	// expr-lang virtual machine.
	BackendExpr
)

var backendNames = map[Backend]string{
	BackendTree: "tree",
	BackendExpr: "expr",
}

// Backends returns the names accepted by [ParseBackend].
func Backends() []string { return []string{"tree", "expr"} }

func (b Backend) String() string {
	if s, ok := backendNames[b]; ok {
		return s
	}

	return "unknown"
}

// ParseBackend returns the backend with the given case-insensitive name.
func ParseBackend(s string) (Backend, error) {
	for b, name := range backendNames {
		if strings.EqualFold(s, name) {
			return b, nil
		}
	}

	return BackendTree, ErrBackend.With(
		slog.String("backend", s),
		slog.String("valid", strings.Join(Backends(), ",")),
	)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (b *Backend) UnmarshalText(text []byte) error {
	v, err := ParseBackend(string(text))
	if err != nil {
		return err
	}

	*b = v

	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (b Backend) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// Eval evaluates e with the selected backend.
func (b Backend) Eval(e Expr) (Value, error) {
	if b != BackendExpr {
		return Eval(e)
	}

	p, err := Compile(e)
	if err != nil {
		return Value{}, err
	}

	return p.Run()
}
