package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/parsec/sexpr"
)

// ctrlCommands are the available command-mode commands.
var ctrlCommands = []string{"help", "list", "clear", "quit"}

// isWordBoundary reports whether r separates completable words.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '(', ')':
		return true
	}

	return false
}

// wordBounds returns the word under the cursor and its byte offsets.
// The word is empty when the cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// evalCandidates returns the completion candidates for eval mode: keywords
// followed by every let-bound name seen so far.
func evalCandidates(bound []string) []string {
	out := slices.Clone(sexpr.Keywords)

	for _, name := range bound {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out
}

// computeMatches ranks the candidates for the word under the cursor.
// An empty word yields no matches so the hint line stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, start, end := wordBounds(m.input.Value(), m.input.Position())
	if word == "" {
		return nil, start, end
	}

	candidates := ctrlCommands
	if m.mode == modeEval {
		candidates = evalCandidates(m.session.boundNames())
	}

	return fuzzy.Find(word, candidates), start, end
}

// renderCandidateBar builds the one-line completion bar, ellipsized to width.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		last := i == len(matches)-1
		if i > 0 && (used+w > width || (!last && used+w+reserve > width)) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched runes highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
