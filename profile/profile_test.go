package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_Apply(t *testing.T) {
	p := Profiler{}.Apply(
		WithMode("cpu"),
		nil,
		WithPath("/tmp/profiles"),
		WithQuiet(true),
	)

	assert.Equal(t, Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}, p)
}

func TestProfiler_ApplyDoesNotMutate(t *testing.T) {
	base := Profiler{Mode: "heap"}
	_ = base.Apply(WithMode("cpu"))

	assert.Equal(t, "heap", base.Mode)
}

func TestProfiler_StartDisabled(t *testing.T) {
	for _, p := range []Profiler{
		{},
		{Mode: "", Path: t.TempDir()},
		{Mode: "bogus", Path: t.TempDir(), Quiet: true},
	} {
		ctl := p.Start()
		assert.IsType(t, ignore{}, ctl)
		assert.NotPanics(t, ctl.Stop)
	}
}
