package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/mung"

	"github.com/ardnew/parsec/pkg"
)

const (
	// baseConfig is the base name of the configuration files.
	baseConfig = "config"

	// baseLibrary is the directory under the configuration directory that is
	// always searched for program sources.
	baseLibrary = "lib"

	// envSearchPath names the PATH-like variable of extra source directories.
	envSearchPath = "SEXP_PATH"
)

// defaultDirMode is the permission mode of created directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the name used for the configuration and cache
// directories: the executable's base name, with a dlv debug binary mapped to
// [pkg.Name] and leading dots removed.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d*$`): pkg.Name,
			regexp.MustCompile(`^\.+`):             "",
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			id = pkg.Name
		}

		return id
	},
)

// userDir joins basePrefix to the first directory that can be determined:
// the platform directory from primary, then $HOME/fallback, then the working
// directory.
func userDir(primary func() (string, error), fallback string) string {
	dir, err := primary()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, basePrefix())
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// cacheDir returns the directory for transient files such as REPL history
// and profiles.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration, library, and cache
// directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configPath(baseLibrary), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// searchPath returns the directories searched for relative source names, in
// order: the working directory, then $SEXP_PATH, then the library directory.
func searchPath() []string {
	return searchPathFrom(os.Getenv(envSearchPath), configPath(baseLibrary))
}

func searchPathFrom(env, library string) []string {
	list := mung.Make(
		mung.WithSubjectItems(filepath.SplitList(env)...),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems("."),
	).String()

	dirs := append(filepath.SplitList(list), library)

	out := dirs[:0]
	seen := map[string]bool{}

	for _, d := range dirs {
		if d == "" || seen[d] {
			continue
		}

		seen[d] = true
		out = append(out, d)
	}

	return out
}

// searchPathHelp renders the search path for help text.
func searchPathHelp() string {
	return "." + string(os.PathListSeparator) + "$" + envSearchPath +
		string(os.PathListSeparator) + configPath(baseLibrary)
}

// resolveSources maps each relative source name that does not exist in the
// working directory to the first match in [searchPath]. Absolute names,
// "-", and names with no match are returned unchanged.
func resolveSources(sources []string) []string {
	return resolveSourcesIn(sources, searchPath())
}

func resolveSourcesIn(sources, dirs []string) []string {
	out := make([]string, len(sources))

	for i, src := range sources {
		out[i] = src

		if src == "-" || filepath.IsAbs(src) {
			continue
		}

		for _, dir := range dirs {
			path := filepath.Join(dir, src)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				out[i] = path

				break
			}
		}
	}

	return out
}
