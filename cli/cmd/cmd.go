package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/parsec/log"
	"github.com/ardnew/parsec/sexpr"
)

type contextKey struct{}

// WithContext returns a copy of ctx carrying the parsed [kong.Context].
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// stdout returns the writer configured with [kong.Writers], or os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the error writer configured with [kong.Writers], or
// os.Stderr.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// kongVar returns the named interpolation variable, or "".
func kongVar(ctx context.Context, name string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Model.Vars()[name]
	}

	return ""
}

type sourceFilesKey struct{}

// SourceFiles reads the program sources named on the command line in order.
type SourceFiles interface {
	io.Reader
	io.Closer
	Names() []string
}

type sourceFiles struct {
	names  []string
	files  []*os.File
	stdin  bool
	reader io.Reader
}

func (s *sourceFiles) Names() []string { return s.names }

func (s *sourceFiles) Read(p []byte) (int, error) {
	if s.reader == nil {
		readers := make([]io.Reader, 0, len(s.files)+1)
		for _, f := range s.files {
			readers = append(readers, f)
		}

		if s.stdin {
			readers = append(readers, os.Stdin)
		}

		s.reader = io.MultiReader(readers...)
	}

	return s.reader.Read(p)
}

func (s *sourceFiles) Close() error {
	var errs []error

	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	return errors.Join(errs...)
}

// stdinSource names standard input on the command line.
const stdinSource = "-"

// WithSourceFiles returns a copy of ctx carrying a reader over the given
// source paths.
//
// Paths are deduplicated by device and inode, so a file named twice (or via
// a symlink) is read once. Every "-" collapses to a single read of stdin,
// placed after all regular files. Paths that cannot be opened are skipped.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, openSourceFiles(sources))
}

// sourceFilesFrom returns the sources stored by [WithSourceFiles], or nil.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	src, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return src
}

// fileKey identifies a file by device and inode.
type fileKey struct {
	dev, ino uint64
}

func openSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var (
		src  sourceFiles
		seen = map[fileKey]struct{}{}
	)

	stdinKey, _ := statKey(os.Stdin.Stat())

	for _, path := range sources {
		if path == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		file, key, ok := openUnique(path, seen)
		if !ok {
			continue
		}

		if key == stdinKey {
			file.Close()

			continue
		}

		src.names = append(src.names, file.Name())
		src.files = append(src.files, file)
	}

	if _, src.stdin = seen[stdinKey]; src.stdin {
		src.names = append(src.names, stdinSource)
	}

	if len(src.files) == 0 && !src.stdin {
		return nil
	}

	return &src
}

func openUnique(path string, seen map[fileKey]struct{}) (*os.File, fileKey, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fileKey{}, false
	}

	key, ok := statKey(os.Stat(resolved))
	if !ok {
		return nil, key, false
	}

	if _, dup := seen[key]; dup {
		return nil, key, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, key, false
	}

	return file, key, true
}

func statKey(info os.FileInfo, err error) (fileKey, bool) {
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// parseOptions returns the parse options shared by every command.
func parseOptions() []sexpr.Option {
	return []sexpr.Option{sexpr.WithLogger(log.Default())}
}

// program parses exprs, one expression per element, or the command line
// sources when exprs is empty, falling back to stdin.
func program(ctx context.Context, exprs []string) ([]sexpr.Expr, error) {
	if len(exprs) > 0 {
		prog := make([]sexpr.Expr, 0, len(exprs))

		for _, s := range exprs {
			e, err := sexpr.Parse(ctx, s, parseOptions()...)
			if err != nil {
				return nil, err
			}

			prog = append(prog, e)
		}

		return prog, nil
	}

	var r io.Reader = os.Stdin

	if src := sourceFilesFrom(ctx); src != nil {
		defer src.Close()

		r = src
	}

	return sexpr.ParseReader(ctx, r, parseOptions()...)
}
