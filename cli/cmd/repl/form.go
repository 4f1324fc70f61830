package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/parsec/sexpr"
)

var (
	formStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	formHeadStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	currentParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// formParams lists the operand names of each special form and operator.
var formParams = func() map[string][]string {
	m := map[string][]string{
		"if":  {"pred", "then", "else"},
		"let": {"(name value)...", "body"},
	}

	for _, op := range sexpr.Operators {
		m[op.String()] = []string{"lhs", "rhs"}
	}

	return m
}()

// form describes the innermost unclosed form enclosing the cursor.
type form struct {
	head     string // first token after the open paren
	argIndex int    // operand index under the cursor, 0-based
	inForm   bool
}

// detectForm scans input up to cursor for the innermost unclosed form.
func detectForm(input string, cursor int) form {
	cursor = min(max(cursor, 0), len(input))

	open := -1
	depth := 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return form{}
	}

	headStart := open + 1
	for headStart < cursor && isSpace(input[headStart]) {
		headStart++
	}

	headEnd := headStart
	for headEnd < len(input) && !isSpace(input[headEnd]) &&
		input[headEnd] != '(' && input[headEnd] != ')' {
		headEnd++
	}

	if headEnd == headStart || headEnd >= cursor {
		return form{}
	}

	var (
		args  int
		inTok bool
	)

	depth = 0

	for i := headEnd; i < cursor; i++ {
		switch ch := input[i]; {
		case depth > 0:
			switch ch {
			case '(':
				depth++
			case ')':
				depth--
			}

		case ch == '(':
			args++
			depth = 1
			inTok = true

		case isSpace(ch):
			inTok = false

		case !inTok:
			args++
			inTok = true
		}
	}

	idx := args
	if inTok {
		idx--
	}

	return form{head: input[headStart:headEnd], argIndex: idx, inForm: true}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

// renderFormHint renders the operand list of f with the current operand
// highlighted. It returns "" for unknown forms.
func renderFormHint(f form) string {
	params, ok := formParams[f.head]
	if !ok || !f.inForm {
		return ""
	}

	current := min(f.argIndex, len(params)-1)

	var b strings.Builder

	b.WriteString(formStyle.Render("("))
	b.WriteString(formHeadStyle.Render(f.head))

	for i, p := range params {
		b.WriteString(" ")

		if i == current {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(formStyle.Render(p))
		}
	}

	b.WriteString(formStyle.Render(")"))

	return b.String()
}
