package sexpr_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/parsec/sexpr"
)

var formatTests = []struct {
	name  string
	input string
}{
	{"oper", "(+   1\n 2)"},
	{"if", "(if (< a b) a b)"},
	{"let", "(let (x 1) (+ x 1))"},
}

func TestFormat_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range formatTests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := sexpr.Parse(context.Background(), tt.input)
			require.NoError(t, err)

			g.Assert(t, tt.name+".sexp", []byte(sexpr.Format(e)+"\n"))

			data, err := sexpr.FormatJSON(e)
			require.NoError(t, err)
			g.Assert(t, tt.name+".json", data)
		})
	}
}

func TestFormatYAML(t *testing.T) {
	for _, tt := range formatTests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := sexpr.Parse(context.Background(), tt.input)
			require.NoError(t, err)

			data, err := sexpr.FormatYAML(e)
			require.NoError(t, err)

			var decoded any
			require.NoError(t, yaml.Unmarshal(data, &decoded))

			// Compare through JSON so integer widths do not matter.
			got, err := json.Marshal(decoded)
			require.NoError(t, err)

			want, err := json.Marshal(sexpr.ToMap(e))
			require.NoError(t, err)

			assert.JSONEq(t, string(want), string(got))
		})
	}
}

func TestToMap_Atoms(t *testing.T) {
	assert.Equal(t, int64(7), sexpr.ToMap(sexpr.Int(7)))
	assert.Equal(t, true, sexpr.ToMap(sexpr.Bool(true)))
	assert.Equal(t, map[string]any{"var": "x"}, sexpr.ToMap(sexpr.Var("x")))
	assert.Nil(t, sexpr.ToMap(nil))
}
