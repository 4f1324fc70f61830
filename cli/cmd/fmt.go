package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/parsec/log"
	"github.com/ardnew/parsec/sexpr"
)

// Fmt parses a program and prints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical s-expressions (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON, one object per expression."`
	YAML   YAML   `cmd:""                    help:"Format as YAML, one document per expression."`
}

// Native formats a program in canonical s-expression syntax.
type Native struct {
	Exprs []string `arg:"" help:"Expressions to format. Reads --source or stdin if none." name:"expr" optional:""`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) error {
	return format(ctx, "native", f.Exprs, "", func(e sexpr.Expr) ([]byte, error) {
		return []byte(sexpr.Format(e) + "\n"), nil
	})
}

// JSON formats a program as a stream of JSON objects.
type JSON struct {
	Exprs []string `arg:"" help:"Expressions to format. Reads --source or stdin if none." name:"expr" optional:""`
}

// Run executes the fmt json command.
func (f *JSON) Run(ctx context.Context) error {
	return format(ctx, "json", f.Exprs, "", sexpr.FormatJSON)
}

// YAML formats a program as a stream of YAML documents.
type YAML struct {
	Exprs []string `arg:"" help:"Expressions to format. Reads --source or stdin if none." name:"expr" optional:""`
}

// Run executes the fmt yaml command.
func (f *YAML) Run(ctx context.Context) error {
	return format(ctx, "yaml", f.Exprs, "---\n", sexpr.FormatYAML)
}

// format writes each expression of the program rendered by render, with sep
// written between consecutive expressions.
func format(
	ctx context.Context,
	name string,
	exprs []string,
	sep string,
	render func(sexpr.Expr) ([]byte, error),
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := program(ctx, exprs)
	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", name))
	}

	log.DebugContext(ctx, "fmt",
		slog.String("format", name),
		slog.Int("exprs", len(prog)),
	)

	out := stdout(ctx)

	for i, e := range prog {
		if i > 0 && sep != "" {
			if _, err := io.WriteString(out, sep); err != nil {
				return ErrFormat.Wrap(err).With(slog.String("format", name))
			}
		}

		data, err := render(e)
		if err != nil {
			return ErrFormat.Wrap(err).With(
				slog.String("format", name),
				slog.Int("index", i),
			)
		}

		if _, err := out.Write(data); err != nil {
			return ErrFormat.Wrap(err).With(slog.String("format", name))
		}
	}

	return nil
}
