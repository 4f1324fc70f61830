package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/parsec/log"
	"github.com/ardnew/parsec/sexpr"
)

// Eval evaluates each expression of a program and prints its value.
type Eval struct {
	Backend sexpr.Backend `default:"tree" help:"Evaluation backend (tree, expr)." short:"b"`

	Exprs []string `arg:"" help:"Expressions to evaluate. Reads --source or stdin if none." name:"expr" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := program(ctx, e.Exprs)
	if err != nil {
		return ErrEvaluate.Wrap(err).With(slog.String("backend", e.Backend.String()))
	}

	log.DebugContext(ctx, "eval",
		slog.Int("exprs", len(prog)),
		slog.String("backend", e.Backend.String()),
	)

	out := stdout(ctx)

	for i, x := range prog {
		v, err := e.Backend.Eval(x)
		if err != nil {
			return ErrEvaluate.Wrap(err).With(
				slog.Int("index", i),
				slog.String("expr", sexpr.Format(x)),
				slog.String("backend", e.Backend.String()),
			)
		}

		fmt.Fprintln(out, v)
	}

	return nil
}
