package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/parsec/log"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys are flag names. Nested mappings are joined with hyphens, and
// underscores may stand in for hyphens, so the following are equivalent:
//
//	log-level: debug
//
//	log_level: debug
//
//	log:
//	  level: debug
//
// Command-line flags override configuration values. A malformed file is
// reported and otherwise ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring configuration file", slog.Any("error", err))
		}

		return config{}, nil
	}

	c := config{}
	c.flatten("", doc)

	return c, nil
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]any

func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := strings.ReplaceAll(prefix+k, "_", "-")

		if sub, ok := v.(map[string]any); ok {
			c.flatten(key+"-", sub)

			continue
		}

		c[key] = scalar(v)
	}
}

// scalar converts a decoded YAML value to the form kong parses: booleans
// stay booleans, sequences become comma-separated strings, and everything
// else becomes its string form.
func scalar(v any) any {
	switch v := v.(type) {
	case bool, string, nil:
		return v

	case []any:
		parts := make([]string, len(v))
		for i, x := range v {
			parts[i] = fmt.Sprint(scalar(x))
		}

		return strings.Join(parts, ",")

	case uint64:
		return strconv.FormatUint(v, 10)

	case int64:
		return strconv.FormatInt(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
