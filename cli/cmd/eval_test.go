package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/parsec/sexpr"
)

func TestEvalRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
		err  error
	}{
		{
			name: "default_command",
			args: []string{"(+ 1 2)"},
			want: "3\n",
		},
		{
			name: "explicit_command",
			args: []string{"eval", "(let (x 4) (* x x))", "(< 1 2)"},
			want: "16\ntrue\n",
		},
		{
			name: "expr_backend",
			args: []string{"eval", "--backend=expr", "(if (= 1 1) 10 20)"},
			want: "10\n",
		},
		{
			name: "stops_at_first_error",
			args: []string{"eval", "7", "(/ 1 0)", "8"},
			want: "7\n",
			err:  sexpr.ErrDivisionByZero,
		},
		{
			name: "parse_error",
			args: []string{"eval", "(+ 1"},
			err:  sexpr.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, nil, tt.args...)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.ErrorIs(t, err, ErrEvaluate)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEvalRun_Source(t *testing.T) {
	sexpr.ClearCache()

	path := writeFile(t, "prog.sexp", "(+ 1 2)\n(let (x 3)\n  (* x x))\n")

	out, err := run(t, nil, "--source", path, "eval", "-b", "expr")
	require.NoError(t, err)
	assert.Equal(t, "3\n9\n", out)
}
