package repl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AddPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	require.NoError(t, h.Add("(+ 1 2)", modeEval))
	require.NoError(t, h.Add("  list ", modeCtrl))
	require.NoError(t, h.Add("", modeEval))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "E:(+ 1 2)\nC:list\n", string(data))

	reloaded := NewHistory(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, h.Entries(), reloaded.Entries())
}

func TestHistory_Duplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"a", modeEval},
		{"b", modeEval},
		{"b", modeEval},
		{"a", modeCtrl},
		{"a", modeEval},
	} {
		require.NoError(t, h.Add(e.Line, e.Mode))
	}

	assert.Equal(t, []HistoryEntry{
		{"b", modeEval},
		{"a", modeCtrl},
		{"a", modeEval},
	}, h.Entries())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "E:b\nC:a\nE:a\n", string(data))
}

func TestHistory_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	require.NoError(t, os.WriteFile(path, []byte("E:x\n\nC:help\n(legacy)\n"), 0o600))

	h := NewHistory(path)
	require.NoError(t, h.Load())

	assert.Equal(t, []HistoryEntry{
		{"x", modeEval},
		{"help", modeCtrl},
		{"(legacy)", modeEval},
	}, h.Entries())

	e, err := h.At(1)
	require.NoError(t, err)
	assert.Equal(t, "help", e.Line)

	_, err = h.At(3)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestHistory_LoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"))

	assert.NoError(t, h.Load())
	assert.Zero(t, h.Len())
}
