package repl

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/parsec/sexpr"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"

	defaultWidth = 80
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help     Print this message
  list     List keywords, operators, and names bound by let so far
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type an s-expression to evaluate it, e.g. (let (x 2) (* x 21))
  Completions appear as you type; Tab / Shift-Tab cycle candidates
  The hint line shows the operands of the enclosing form
  Press Esc to toggle between eval and command modes
  Use Up/Down for history (the mode switches to match the entry)
  Use Shift+Up/Shift+Down for history within the current mode only
  Press Ctrl+C on an empty line or Ctrl+D to exit`

// inputMode is the interpretation applied to a submitted line.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

var (
	promptStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	inputStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

func echo(mode inputMode, input string) tea.Cmd {
	if mode == modeCtrl {
		return tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))
	}

	return tea.Println(promptStyle.Render(evalPrompt) + inputStyle.Render(input))
}

// model is the Bubble Tea model of the interactive REPL.
type model struct {
	session *session
	input   textinput.Model
	history *History

	historyIdx   int
	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int

	width    int
	quitting bool

	mode       inputMode
	evalText   string
	evalCursor int
	ctrlText   string
	ctrlCursor int
}

func newModel(s *session, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		session:    s,
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(evalPrompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintLine())
	b.WriteString("\n")

	return b.String()
}

// hintLine chooses the single line shown below the input.
func (m model) hintLine() string {
	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx + 1))

		return hintStyle.Render(fmt.Sprintf("%s/%d", pos, m.history.Len()))

	case strings.TrimSpace(input) == "":
		if m.mode == modeEval {
			return hintStyle.Render("Type an expression or press Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")

	case len(m.matches) > 0:
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)

	case m.mode == modeEval:
		return renderFormHint(detectForm(input, m.input.Position()))
	}

	return ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.session.logger.TraceContext(m.session.ctx, "repl keypress",
		slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches(true)

			return m, nil
		}

		return m.execute()

	case tea.KeyTab:
		return m.cycle(+1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(+1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(+1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches(false)

			return m, nil
		}

		return m.switchMode(1 - m.mode), nil

	case tea.KeyRunes, tea.KeySpace:
		if m.tabActive && msg.Type == tea.KeySpace {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		m.refreshMatches(true)

		return m, cmd
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(false)

	return m, cmd
}

// cycle moves the tab selection by step, starting a new cycle if needed.
func (m model) cycle(step int) model {
	switch len(m.matches) {
	case 0:
		return m

	case 1:
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	n := len(m.matches)

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord substitutes the current word and moves the cursor after it.
func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))
	m.wordEnd = m.wordStart + len(s)
}

// refreshMatches recomputes completions. With autoConfirm set, a sole
// candidate equal to the typed word is accepted.
func (m *model) refreshMatches(autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) execute() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	mode := m.mode

	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, mode); err != nil {
		m.session.logger.WarnContext(m.session.ctx, "could not save history",
			slog.String("path", m.history.Path()),
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()

	if mode == modeCtrl {
		return m.command(input)
	}

	v, err := m.session.eval(input)
	if err != nil {
		return m, tea.Sequence(echo(mode, input), tea.Println(errorStyle.Render(err.Error())))
	}

	return m, tea.Sequence(echo(mode, input), tea.Println(resultStyle.Render(v.String())))
}

func (m model) command(input string) (model, tea.Cmd) {
	fields := strings.Fields(input)

	m.session.logger.TraceContext(m.session.ctx, "repl command",
		slog.String("command", fields[0]))

	switch fields[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo(modeCtrl, input), tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo(modeCtrl, input), tea.Println(helpMessage))

	case "l", "list":
		return m, tea.Sequence(echo(modeCtrl, input), tea.Println(m.listing()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + fields[0] + " (try 'help')"),
		)
	}
}

// listing renders the keywords, operators, and bound names.
func (m model) listing() string {
	ops := make([]string, len(sexpr.Operators))
	for i, op := range sexpr.Operators {
		ops[i] = op.String()
	}

	var b strings.Builder

	row := func(title string, items []string) {
		if len(items) == 0 {
			items = []string{hintStyle.Render("(none)")}
		}

		fmt.Fprintf(&b, "  %-10s %s\n", title, strings.Join(items, " "))
	}

	row("keywords", sexpr.Keywords)
	row("operators", ops)
	row("bound", m.session.boundNames())

	return b.String()
}

// historyStep moves through history by dir. When sameMode is set, entries
// of the other mode are skipped; otherwise the mode follows the entry.
func (m model) historyStep(dir int, sameMode bool) model {
	n := m.history.Len()

	for i := m.historyIdx + dir; i >= 0 && i < n; i += dir {
		entry, err := m.history.At(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		m.refreshMatches(false)

		return m
	}

	if dir > 0 && m.historyIdx < n {
		m.historyIdx = n
		m.input.SetValue("")
		m.refreshMatches(false)
	}

	return m
}

// switchMode saves the current mode's input and restores the target's.
func (m model) switchMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	m.refreshMatches(false)

	return m
}
