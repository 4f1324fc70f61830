package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/parsec/log"
	"github.com/ardnew/parsec/profile"
)

// ignoredFlags are flag name prefixes never written to the configuration.
var ignoredFlags = []string{"help", "version", "force", profile.Tag}

// Init writes a YAML configuration file holding the current flag values.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	path := kongVar(ctx, ConfigIdentifier)
	if path == "" {
		panic("internal error: configuration path undefined")
	}

	_, err = os.Stat(path)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", path), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	data, err := yaml.Marshal(i.values(ctx))
	if err != nil {
		return ErrYAMLMarshal.With(slog.String("file", path)).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// values collects the set flag values in declaration order.
func (i *Init) values(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return nil
	}

	var out yaml.MapSlice

	for _, flag := range ktx.Flags() {
		if flag.Hidden || slices.ContainsFunc(ignoredFlags, func(p string) bool {
			return strings.HasPrefix(flag.Name, p)
		}) {
			continue
		}

		if v, ok := configValue(ktx, flag); ok {
			out = append(out, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return out
}

// configValue returns the YAML representation of a flag's current value.
// Empty strings and empty lists are omitted.
func configValue(ktx *kong.Context, flag *kong.Flag) (any, bool) {
	switch v := ktx.FlagValue(flag).(type) {
	case nil:
		return nil, false

	case string:
		return v, v != ""

	case []string:
		return v, len(v) > 0

	case bool, int, int64, uint, uint64, float64:
		return v, true

	case interface{ MarshalText() ([]byte, error) }:
		text, err := v.MarshalText()

		return string(text), err == nil && len(text) > 0

	default:
		switch rv := reflect.ValueOf(v); rv.Kind() {
		case reflect.String:
			return rv.String(), rv.Len() > 0
		case reflect.Bool:
			return rv.Bool(), true
		}

		return nil, false
	}
}
