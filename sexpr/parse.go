package sexpr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/parsec/log"
	"github.com/ardnew/parsec/parsec"
)

// Option configures parsing.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the logger for parse diagnostics. At trace level each
// grammar rule logs its outcome.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func makeOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// The untraced grammar is immutable and shared by every parse.
var plainGrammar = sync.OnceValue(func() parsec.Parser[Expr] {
	return grammar(log.Logger{})
})

func (o options) grammar() parsec.Parser[Expr] {
	if o.logger.Enabled(log.LevelTrace) {
		return grammar(o.logger)
	}

	return plainGrammar()
}

// Parse parses a single expression. The whole input must be consumed apart
// from surrounding whitespace.
func Parse(ctx context.Context, input string, opts ...Option) (Expr, error) {
	o := makeOptions(opts...)

	c := parsec.NewCursor(input)

	e, err := parsec.ParseBy(c, parsec.UseLeft(o.grammar(), parsec.EOS()))
	if err != nil {
		return nil, parseError(err, c, input)
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("length", c.Len()))

	return e, nil
}

// ParseProgram parses a sequence of expressions separated by whitespace.
// Input that is empty or all whitespace yields an empty program.
func ParseProgram(ctx context.Context, input string, opts ...Option) ([]Expr, error) {
	o := makeOptions(opts...)

	c := parsec.NewCursor(input)

	end := parsec.UseRight(parsec.Whitespaces(), parsec.EOS())

	prog, err := parsec.ParseBy(c, parsec.ManyTill(o.grammar(), end))
	if err != nil {
		return nil, parseError(err, c, input)
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("length", c.Len()),
		slog.Int("expressions", len(prog)))

	return prog, nil
}

// parseError reports a failure at the end of input that was caused by
// running out of input as an end-of-stream error.
func parseError(err error, c *parsec.Cursor, input string) *Error {
	perr := parsec.AsError(err, c.Pos())

	if perr.Pos >= c.Len() && c.Exhausted() && !errors.Is(perr, parsec.ErrEndOfStream) {
		perr = parsec.EndOfStream(perr.Pos)
	}

	return ErrParse.Wrap(perr).With(
		slog.Int("pos", perr.Pos),
		slog.String("input", input),
	)
}

// Run parses and evaluates a single expression.
func Run(ctx context.Context, input string, opts ...Option) (Value, error) {
	e, err := Parse(ctx, input, opts...)
	if err != nil {
		return Value{}, err
	}

	return Eval(e)
}

// maxCached bounds the number of memoized sources. Exceeding it discards
// the whole cache.
const maxCached = 1024

var (
	cache     sync.Map // source key -> *cached
	cacheSize atomic.Int64
)

type cached struct {
	once sync.Once
	prog []Expr
	err  error
}

// ParseCached is [ParseProgram] with results memoized by source content.
// The returned slice is shared between callers and must not be modified.
// At most maxCached sources are kept; storing one more first empties the
// cache.
func ParseCached(ctx context.Context, source string, opts ...Option) ([]Expr, error) {
	o := makeOptions(opts...)

	key := strconv.FormatUint(xxh3.Hash([]byte(source)), 36)

	v, hit := cache.Load(key)
	if !hit {
		if cacheSize.Add(1) > maxCached {
			ClearCache()
			cacheSize.Add(1)
		}

		v, hit = cache.LoadOrStore(key, new(cached))
		if hit {
			cacheSize.Add(-1)
		}
	}

	entry := v.(*cached)

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", hit))

	entry.once.Do(func() {
		entry.prog, entry.err = ParseProgram(ctx, source, opts...)
	})

	return entry.prog, entry.err
}

// ParseReader reads all of r and parses it with [ParseCached].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) ([]Expr, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	makeOptions(opts...).logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)))

	return ParseCached(ctx, string(data), opts...)
}

// ClearCache discards every memoized parse.
func ClearCache() {
	cache.Clear()
	cacheSize.Store(0)
}
