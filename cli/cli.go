package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/parsec/cli/cmd"
	"github.com/ardnew/parsec/pkg"
)

// CLI is the top-level command-line interface for sexp.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Source []string `help:"Program source file(s), searched in ${searchPath}, or '-' for stdin." name:"source" short:"s"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Evaluate expressions (default)."`
	Fmt  cmd.Fmt  `cmd:""                    help:"Format expressions."`
	Repl cmd.Repl `cmd:""                    help:"Start an interactive read-eval-print loop."`
	Init cmd.Init `cmd:""                    help:"Write a configuration file with the current flag values."`
}

// Run executes the sexp CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong
// terminates early (help, version, usage errors).
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		"version":            pkg.Version,
		"searchPath":         searchPathHelp(),
		cmd.ConfigIdentifier: configPath(baseConfig + ".yaml"),
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Flags that configure the logger are applied before kong parses, so
	// that parse errors are already logged in the requested style.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve, configPath(baseConfig+".yaml")),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, resolveSources(cli.Source))

	ktx.BindTo(ctx, (*context.Context)(nil))

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
