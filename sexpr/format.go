package sexpr

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// Format returns the canonical s-expression text of e.
func Format(e Expr) string { return e.String() }

// ToMap converts e to plain Go values suitable for generic encoders.
// Literals become int64 and bool; every other node becomes a map:
//
//	{"var": name}
//	{"op": "+", "args": [lhs, rhs]}
//	{"if": pred, "then": then, "else": else}
//	{"let": [{"name": n, "value": v}, ...], "in": body}
func ToMap(e Expr) any {
	switch n := e.(type) {
	case Int:
		return int64(n)

	case Bool:
		return bool(n)

	case Var:
		return map[string]any{"var": string(n)}

	case *Oper:
		return map[string]any{
			"op":   n.Op.String(),
			"args": []any{ToMap(n.LHS), ToMap(n.RHS)},
		}

	case *If:
		return map[string]any{
			"if":   ToMap(n.Pred),
			"then": ToMap(n.Then),
			"else": ToMap(n.Else),
		}

	case *Let:
		bindings := make([]any, len(n.Bindings))
		for i, b := range n.Bindings {
			bindings[i] = map[string]any{"name": b.Name, "value": ToMap(b.Value)}
		}

		return map[string]any{"let": bindings, "in": ToMap(n.Body)}

	default:
		return nil
	}
}

// FormatJSON encodes e as indented JSON terminated by a newline.
func FormatJSON(e Expr) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(ToMap(e)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// FormatYAML encodes e as YAML.
func FormatYAML(e Expr) ([]byte, error) {
	return yaml.Marshal(ToMap(e))
}
