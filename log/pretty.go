package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler writes colorized records for humans. In text format each
// record is one line of key=value pairs; in JSON format each record is an
// indented object with unquoted values.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	format Format
	attrs  []slog.Attr // preformatted by WithAttrs, already qualified
	prefix string      // dotted group path for attrs added later
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, format Format) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, format: format}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.prefix == "" {
		return attrs
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.qualify([]slog.Attr{a})...)

		return true
	})

	buf := new(bytes.Buffer)

	switch h.format {
	case FormatJSON:
		buf.WriteString("{\n")
		h.writeJSON(buf, fields, 1)
		buf.WriteString("\n}\n")

	default:
		h.writeText(buf, "", fields)
		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// replace applies the ReplaceAttr option; it reports false for attributes
// that should be dropped.
func (h *prettyHandler) replace(a slog.Attr) (slog.Attr, bool) {
	a.Value = a.Value.Resolve()
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(nil, a)
	}

	return a, !a.Equal(slog.Attr{})
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, prefix string, attrs []slog.Attr) {
	for _, a := range attrs {
		a, ok := h.replace(a)
		if !ok {
			continue
		}

		if a.Value.Kind() == slog.KindGroup {
			h.writeText(buf, prefix+a.Key+".", a.Value.Group())

			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		paint(buf, colorGray, prefix+a.Key)
		buf.WriteByte('=')
		writeValue(buf, a.Value)
	}
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, attrs []slog.Attr, depth int) {
	indent := strings.Repeat("  ", depth)
	first := true

	for _, a := range attrs {
		a, ok := h.replace(a)
		if !ok {
			continue
		}

		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString(indent)
		paint(buf, colorGray, a.Key)
		buf.WriteString(": ")

		if a.Value.Kind() == slog.KindGroup {
			buf.WriteString("{\n")
			h.writeJSON(buf, a.Value.Group(), depth+1)
			buf.WriteString("\n" + indent + "}")

			continue
		}

		writeValue(buf, a.Value)
	}
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindInt64:
		paint(buf, colorYellow, strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		paint(buf, colorYellow, strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		paint(buf, colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			paint(buf, colorGreen, "true")
		} else {
			paint(buf, colorRed, "false")
		}

	case slog.KindDuration:
		paint(buf, colorMagenta, v.Duration().String())

	case slog.KindTime:
		paint(buf, colorBlue, v.Time().Format(time.RFC3339))

	case slog.KindAny:
		switch x := v.Any().(type) {
		case slog.Level:
			paint(buf, levelColor(x), strings.ToUpper(Level(x).String()))
		case nil:
			paint(buf, colorGray, "null")
		default:
			paint(buf, colorCyan, v.String())
		}

	default:
		paint(buf, colorCyan, v.String())
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

func paint(buf *bytes.Buffer, color, s string) {
	buf.WriteString(color)
	buf.WriteString(s)
	buf.WriteString(colorReset)
}
