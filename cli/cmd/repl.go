package cmd

import (
	"context"

	"github.com/ardnew/parsec/cli/cmd/repl"
	"github.com/ardnew/parsec/log"
	"github.com/ardnew/parsec/sexpr"
)

// Repl starts an interactive read-eval-print loop.
//
// With --source, the named files are read as REPL input, one expression per
// line.
type Repl struct {
	Backend sexpr.Backend `default:"tree" help:"Evaluation backend (tree, expr)." short:"b"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	cfg := repl.Config{
		Output:    stdout(ctx),
		ErrOutput: stderr(ctx),
		CacheDir:  kongVar(ctx, CacheIdentifier),
		Backend:   r.Backend,
		Logger:    log.Default(),
	}

	if src := sourceFilesFrom(ctx); src != nil {
		defer src.Close()

		cfg.Input = src
	}

	return repl.Run(ctx, cfg)
}
