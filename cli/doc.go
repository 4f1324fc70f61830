// Package cli contains the command line interface of sexp.
//
// # Commands
//
//	sexp [eval] [--backend=tree|expr] [expr ...]
//	sexp fmt [native|json|yaml] [expr ...]
//	sexp repl [--backend=tree|expr]
//	sexp init [--force]
//
// Commands that read a program take expressions from their arguments, or
// else from the --source files, or else from stdin. Relative --source names
// that do not exist in the working directory are searched for in $SEXP_PATH
// and then in the lib directory under the configuration directory.
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the
// configuration directory ($XDG_CONFIG_HOME/sexp on Linux). The init command
// writes config.yaml from the current flag values.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error); trace
//     logs the outcome of every grammar rule
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is available only when built with the pprof tag:
//
//	go build -tags pprof -o sexp .
//
//   - --pprof-mode: profile kind (allocs, block, clock, cpu, goroutine, heap,
//     mem, mutex, thread, trace)
//   - --pprof-dir: output directory (default: the pprof directory under the
//     cache directory)
package cli
