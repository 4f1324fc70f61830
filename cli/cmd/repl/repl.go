package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/mattn/go-isatty"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/parsec/log"
	"github.com/ardnew/parsec/sexpr"
)

// linePrompt is printed before each line read by the plain line loop.
const linePrompt = "> "

// Config holds the collaborators of a REPL session.
//
// Nil readers and writers default to the process's standard streams.
type Config struct {
	Input     io.Reader
	Output    io.Writer
	ErrOutput io.Writer
	CacheDir  string
	Backend   sexpr.Backend
	Logger    log.Logger
}

func (c Config) withDefaults() Config {
	if c.Input == nil {
		c.Input = os.Stdin
	}

	if c.Output == nil {
		c.Output = os.Stdout
	}

	if c.ErrOutput == nil {
		c.ErrOutput = os.Stderr
	}

	return c
}

// Run starts a REPL. If the input is a terminal it runs the interactive
// editor; otherwise it reads one expression per line and prints each result
// followed by a blank line.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg = cfg.withDefaults()
	s := newSession(ctx, cfg.Backend, cfg.Logger)

	if !isTerminal(cfg.Input) {
		cfg.Logger.DebugContext(ctx, "repl start",
			slog.String("mode", "lines"),
			slog.String("backend", cfg.Backend.String()),
		)

		return lines(ctx, s, cfg.Input, cfg.Output, cfg.ErrOutput)
	}

	history := NewHistory(filepath.Join(cfg.CacheDir, baseHistory))
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", history.Path()),
			slog.Any("error", err),
		)
	}

	cfg.Logger.DebugContext(ctx, "repl start",
		slog.String("mode", "terminal"),
		slog.String("backend", cfg.Backend.String()),
		slog.Int("history", history.Len()),
	)

	p := tea.NewProgram(
		newModel(s, history),
		tea.WithContext(ctx),
		tea.WithInput(cfg.Input),
		tea.WithOutput(cfg.Output),
	)

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// lines is the plain read-eval-print loop. It returns nil at end of input.
func lines(
	ctx context.Context,
	s *session,
	in io.Reader,
	out, errOut io.Writer,
) error {
	r := bufio.NewReader(in)

	for {
		if err := ctx.Err(); err != nil {
			return context.Cause(ctx)
		}

		fmt.Fprint(out, linePrompt)

		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return ErrReadLine.Wrap(err)
		}

		if line == "" && err != nil {
			return nil
		}

		v, everr := s.eval(line)
		if everr != nil {
			fmt.Fprintln(errOut, everr)
		} else {
			fmt.Fprintln(out, v)
		}

		fmt.Fprintln(out)

		if err != nil {
			return nil
		}
	}
}

// session evaluates input lines and remembers every let-bound name it has
// seen, for listing and completion.
type session struct {
	ctx     context.Context
	backend sexpr.Backend
	logger  log.Logger

	mu    sync.Mutex
	names map[string]struct{}
}

func newSession(ctx context.Context, backend sexpr.Backend, logger log.Logger) *session {
	return &session{
		ctx:     ctx,
		backend: backend,
		logger:  logger,
		names:   map[string]struct{}{},
	}
}

func (s *session) eval(input string) (sexpr.Value, error) {
	e, err := sexpr.Parse(s.ctx, input, sexpr.WithLogger(s.logger))
	if err != nil {
		s.logger.TraceContext(s.ctx, "repl parse failed", slog.Any("error", err))

		return sexpr.Value{}, err
	}

	s.remember(sexpr.BoundNames(e)...)

	v, err := s.backend.Eval(e)

	s.logger.TraceContext(s.ctx, "repl eval",
		slog.String("expr", sexpr.Format(e)),
		slog.String("result", v.String()),
		slog.Any("error", err),
	)

	return v, err
}

func (s *session) remember(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		s.names[name] = struct{}{}
	}
}

// boundNames returns the sorted let-bound names seen so far.
func (s *session) boundNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Sorted(maps.Keys(s.names))
}
