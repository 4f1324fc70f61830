// Package cmd implements the subcommands of the sexp command.
//
// Every command that reads a program takes its expressions from positional
// arguments when given, and otherwise from the root --source files or stdin.
package cmd

var (
	// CacheIdentifier is the kong variable holding the runtime cache
	// directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the path of the YAML
	// configuration file.
	ConfigIdentifier = "config"
)
