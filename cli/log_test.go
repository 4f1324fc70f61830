package cli

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardnew/parsec/log"
)

func TestLogConfigScan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name   string
		args   []string
		want   logConfig
		level  log.Level
		format log.Format
	}{
		{
			name:   "separate_values",
			args:   []string{"--log-level", "debug", "--log-format", "text", "eval"},
			want:   logConfig{Level: "debug", Format: "text", Pretty: true},
			level:  log.LevelDebug,
			format: log.FormatText,
		},
		{
			name:   "assigned_values",
			args:   []string{"eval", "--log-level=warn", "--log-format=json"},
			want:   logConfig{Level: "warn", Format: "json", Pretty: true},
			level:  log.LevelWarn,
			format: log.FormatJSON,
		},
		{
			name:   "booleans",
			args:   []string{"--no-log-pretty", "--log-caller=true", "--log-level=error"},
			want:   logConfig{Level: "error", Caller: true},
			level:  log.LevelError,
			format: log.FormatJSON,
		},
		{
			name:   "malformed_boolean_ignored",
			args:   []string{"--log-pretty=maybe", "--log-level=info"},
			want:   logConfig{Level: "info", Pretty: true},
			level:  log.LevelInfo,
			format: log.FormatJSON,
		},
		{
			name:   "stops_at_terminator",
			args:   []string{"--log-level=trace", "--", "--log-level=error"},
			want:   logConfig{Level: "trace", Pretty: true},
			level:  log.LevelTrace,
			format: log.FormatJSON,
		},
		{
			name:   "value_not_taken_from_flag",
			args:   []string{"--log-level", "--log-caller"},
			want:   logConfig{Caller: true, Pretty: true},
			level:  log.DefaultLevel,
			format: log.FormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.Config(log.WithDefaults(io.Discard))

			f := logConfig{Pretty: true}
			f.scan(tt.args)

			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.level, log.Default().Level())
			assert.Equal(t, tt.format, log.Default().Format())
		})
	}
}
