package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.exists {
				require.NoError(t, os.WriteFile(path, []byte("existing: true\n"), 0o600))
			}

			args := []string{"--log-level=debug", "--pprof-mode=cpu", "init"}
			if tt.force {
				args = append(args, "--force")
			}

			_, err := run(t, kong.Vars{ConfigIdentifier: path}, args...)

			data, rerr := os.ReadFile(path)
			require.NoError(t, rerr)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrWriteConfig)
				assert.Equal(t, "existing: true\n", string(data))

				return
			}

			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, yaml.Unmarshal(data, &got))

			assert.Equal(t, "debug", got["log-level"])
			assert.Equal(t, true, got["log-pretty"])
			assert.NotContains(t, got, "pprof-mode")
			assert.NotContains(t, got, "help")
			assert.NotContains(t, got, "source")
			assert.NotContains(t, got, "force")
		})
	}
}
