package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func plain(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{WithPretty(false)}, opts...)...)
}

func TestMake_Defaults(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}
	if logger.Format() != FormatJSON {
		t.Errorf("expected default format json, got %v", logger.Format())
	}
	if logger.caller {
		t.Error("expected caller disabled by default")
	}
	if !logger.pretty {
		t.Error("expected pretty enabled by default")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level  Level
		log    func(Logger)
		logged bool
	}{
		{LevelInfo, func(l Logger) { l.Debug("m") }, false},
		{LevelInfo, func(l Logger) { l.Info("m") }, true},
		{LevelError, func(l Logger) { l.Warn("m") }, false},
		{LevelError, func(l Logger) { l.Error("m") }, true},
		{LevelDebug, func(l Logger) { l.Trace("m") }, false},
		{LevelTrace, func(l Logger) { l.Trace("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(plain(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("logged = %v, want %v: %q", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_Enabled(t *testing.T) {
	var zero Logger
	if zero.Enabled(LevelError) {
		t.Error("zero Logger must not be enabled")
	}

	logger := Make(nil, WithLevel(LevelWarn))
	if logger.Enabled(LevelInfo) || !logger.Enabled(LevelWarn) {
		t.Error("Enabled does not follow the configured level")
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	plain(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace)).
		Trace("trace message", slog.String("key", "value"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	for k, want := range map[string]any{
		"msg":   "trace message",
		"level": "TRACE",
		"key":   "value",
	} {
		if entry[k] != want {
			t.Errorf("%s = %v, want %v", k, entry[k], want)
		}
	}
}

func TestLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	plain(&buf, WithFormat(FormatText)).Info("text message", slog.String("key", "value"))

	out := buf.String()
	if !strings.Contains(out, `msg="text message"`) || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer
	plain(&buf, WithCaller(true)).Info("m")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller file in output, got: %s", buf.String())
	}

	buf.Reset()
	plain(&buf, WithCaller(false)).Info("m")

	if strings.Contains(buf.String(), "source") {
		t.Errorf("unexpected source in output: %s", buf.String())
	}
}

func TestLogger_TimeLayoutNone(t *testing.T) {
	var buf bytes.Buffer
	plain(&buf, WithTimeLayout("none")).Info("m")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("expected no time field, got: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	plain(&buf).With(slog.String("component", "repl")).Info("m")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log entry: %v", err)
	}

	if entry["component"] != "repl" {
		t.Errorf("expected component=repl, got %v", entry["component"])
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer
	base := plain(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError {
		t.Errorf("Wrap modified the original Logger")
	}

	wrapped.Debug("m")
	if buf.Len() == 0 {
		t.Error("wrapped Logger did not log at the new level")
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("m")
	l.Debug("m")
	l.Info("m")
	l.Warn("m")
	l.Error("m")

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Error("expected nil logger from zero value With")
	}
	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("zero Logger must report defaults")
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	logger := plain(&buf)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.With(slog.Int("goroutine", i)).Info("m")
			_ = logger.Level()
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 10 {
		t.Errorf("expected 10 lines, got %d", n)
	}
}

func TestPretty(t *testing.T) {
	err := slog.Group("error", slog.Int("pos", 4), slog.String("error", "end of stream"))

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		Make(&buf, WithFormat(FormatText), WithTimeLayout("none")).
			With(slog.String("cmd", "eval")).
			Warn("parse failed", err)

		out := buf.String()
		for _, want := range []string{"WARN", "parse failed", "cmd", "error.pos", "end of stream"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
		if strings.Count(out, "\n") != 1 {
			t.Errorf("expected a single line, got %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).
			WithGroup("sexpr").
			Info("parsed", err)

		out := buf.String()
		if !strings.HasPrefix(out, "{\n") || !strings.HasSuffix(out, "\n}\n") {
			t.Errorf("expected an indented object, got %q", out)
		}
		if !strings.Contains(out, "sexpr.error") {
			t.Errorf("expected group prefix in %q", out)
		}
	})
}

func TestPackage_UsesDefaultLogger(t *testing.T) {
	original := Default()
	defer func() { defaultLog = original }()

	var buf bytes.Buffer
	Config(WithOutput(&buf), WithLevel(LevelDebug), WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("package message", slog.String("key", "value"))

			out := buf.String()
			for _, want := range []string{"package message", tt.level, `"key":"value"`} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in %s", want, out)
				}
			}
		})
	}

	buf.Reset()
	With(slog.String("k", "v")).Info("with")

	if !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("expected attribute from With, got %s", buf.String())
	}
}
