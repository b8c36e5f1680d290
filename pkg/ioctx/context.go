// Package ioctx carries output writers through a context.Context, so
// interpreter builtins can print without global state and callers can
// capture or redirect program output per run.
package ioctx

import (
	"context"
	"io"
)

type stdoutKey struct{}
type stderrKey struct{}

// StdoutToContext returns a context whose interpreter stdout is w.
func StdoutToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}

// StdoutFromContext returns the context's stdout writer, or io.Discard
// when none was installed.
func StdoutFromContext(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey{}).(io.Writer); ok {
		return w
	}
	return io.Discard
}

// StderrToContext returns a context whose interpreter stderr is w.
func StderrToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stderrKey{}, w)
}

// StderrFromContext returns the context's stderr writer, or io.Discard
// when none was installed.
func StderrFromContext(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stderrKey{}).(io.Writer); ok {
		return w
	}
	return io.Discard
}
