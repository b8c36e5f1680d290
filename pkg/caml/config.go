package caml

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Limits bounds a single run. Every limit is mandatory; zero values are
// replaced with the defaults so a partially-filled config file still
// yields a safe configuration.
type Limits struct {
	MaxSteps     int   `toml:"max_steps"`
	MaxCallDepth int   `toml:"max_call_depth"`
	TimeoutMs    int64 `toml:"timeout_ms"`
	StackFrames  int   `toml:"stack_frames_reported"`
}

// DefaultLimits returns the limits used when no configuration is given.
func DefaultLimits() Limits {
	return Limits{
		MaxSteps:     5_000_000,
		MaxCallDepth: 10_000,
		TimeoutMs:    5_000,
		StackFrames:  10,
	}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxSteps <= 0 {
		l.MaxSteps = def.MaxSteps
	}
	if l.MaxCallDepth <= 0 {
		l.MaxCallDepth = def.MaxCallDepth
	}
	if l.TimeoutMs <= 0 {
		l.TimeoutMs = def.TimeoutMs
	}
	if l.StackFrames <= 0 {
		l.StackFrames = def.StackFrames
	}
	return l
}

func (l Limits) timeout() time.Duration {
	return time.Duration(l.TimeoutMs) * time.Millisecond
}

// LoadLimits reads a TOML limits file, filling unset fields with defaults.
func LoadLimits(path string) (Limits, error) {
	var l Limits
	if _, err := toml.DecodeFile(path, &l); err != nil {
		return Limits{}, errors.Wrapf(err, "loading limits from %s", path)
	}
	return l.withDefaults(), nil
}
