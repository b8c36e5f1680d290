package caml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	assert.Equal(t, 5_000_000, l.MaxSteps)
	assert.Equal(t, 10_000, l.MaxCallDepth)
	assert.Equal(t, int64(5_000), l.TimeoutMs)
	assert.Equal(t, 10, l.StackFrames)
}

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	l := Limits{MaxSteps: 100}.withDefaults()
	assert.Equal(t, 100, l.MaxSteps)
	assert.Equal(t, 10_000, l.MaxCallDepth)
	assert.Equal(t, int64(5_000), l.TimeoutMs)
}

func TestLoadLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_steps = 1000
timeout_ms = 250
`), 0o644))

	l, err := LoadLimits(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, l.MaxSteps)
	assert.Equal(t, int64(250), l.TimeoutMs)
	// unset fields fall back to defaults
	assert.Equal(t, 10_000, l.MaxCallDepth)
	assert.Equal(t, 10, l.StackFrames)
}

func TestLoadLimitsMissingFile(t *testing.T) {
	_, err := LoadLimits(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading limits")
}
