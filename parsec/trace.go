package parsec

import (
	"log/slog"

	"github.com/ardnew/parsec/log"
)

// Trace logs the outcome of every run of p at trace level under the given
// rule name. A zero [log.Logger] disables tracing and p is returned as is.
func Trace[T any](p Parser[T], rule string, logger log.Logger) Parser[T] {
	if logger.Logger == nil {
		return p
	}

	return Func[T](func(c *Cursor) (T, error) {
		start := c.Pos()

		return Parse(c, Debug(p, func(_ T, err error) {
			attrs := []slog.Attr{
				slog.String("rule", rule),
				slog.Int("start", start),
				slog.Int("end", c.Pos()),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", AsError(err, c.Pos())))
			}

			logger.Trace("parse", attrs...)
		}))
	})
}
