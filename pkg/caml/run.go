package caml

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/camlbox/camlbox/pkg/ioctx"
	"github.com/pkg/errors"
)

// TopLevelValue reports one top-level binding, or an anonymous
// expression result under the name "-".
type TopLevelValue struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ErrorReport is the run's single failure, when there is one.
type ErrorReport struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Result is the cumulative outcome of one run. On failure Errors holds
// exactly one entry and Output/Values keep everything produced before
// the failing phrase.
type Result struct {
	Output          string          `json:"output"`
	Values          []TopLevelValue `json:"values"`
	Errors          []ErrorReport   `json:"errors"`
	Memory          MemoryState     `json:"memoryState"`
	ExecutionTimeMs int64           `json:"executionTimeMs"`
}

// RunOption configures a single run.
type RunOption func(*runConfig)

type runConfig struct {
	limits Limits
}

// WithLimits overrides the default resource limits for one run.
func WithLimits(l Limits) RunOption {
	return func(cfg *runConfig) { cfg.limits = l }
}

// Run lexes, parses, and evaluates source as a sequence of
// ;;-terminated phrases. Interpreted print output goes both to the
// returned Result and to any writer already carried by ctx.
func Run(ctx context.Context, source string, opts ...RunOption) *Result {
	cfg := runConfig{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	in := NewInterp(cfg.limits)

	var out strings.Builder
	ctx = ioctx.StdoutToContext(ctx, io.MultiWriter(&out, ioctx.StdoutFromContext(ctx)))

	res := &Result{
		Values: []TopLevelValue{},
		Errors: []ErrorReport{},
	}
	// Let bindings are reported by name during the loop but their type
	// and value are read back from the globals only once the run is
	// over, so mutation through refs in later phrases shows up in the
	// reported values.
	var pending []pendingBinding
	finish := func() *Result {
		for _, p := range pending {
			if bound, ok := in.globals.Get(p.name); ok {
				res.Values[p.index].Type = in.typeOf(bound)
				res.Values[p.index].Value = FormatValue(bound)
			}
		}
		res.Output = out.String()
		res.Memory = in.Snapshot()
		res.ExecutionTimeMs = time.Since(start).Milliseconds()
		return res
	}
	fail := func(err error) *Result {
		res.Errors = append(res.Errors, reportError(err))
		in.state = stateAborted
		return finish()
	}

	tokens, err := Lex(source)
	if err != nil {
		return fail(err)
	}
	phrases, err := Parse(tokens)
	if err != nil {
		return fail(err)
	}

	in.beginRun()
	for _, phrase := range phrases {
		v, err := in.evalPhrase(ctx, phrase)
		if err != nil {
			return fail(err)
		}
		if let, ok := phrase.(*Let); ok && let.Body == nil {
			for _, binding := range let.Bindings {
				for _, name := range bindingNames(binding) {
					if _, defined := in.globals.Get(name); !defined {
						continue
					}
					pending = append(pending, pendingBinding{index: len(res.Values), name: name})
					res.Values = append(res.Values, TopLevelValue{Name: name})
				}
			}
			continue
		}
		res.Values = append(res.Values, in.reportPhrase(phrase, v)...)
	}
	in.state = stateCompleted
	return finish()
}

// pendingBinding marks a Values slot whose type and value are filled in
// from the global frame once the run finishes.
type pendingBinding struct {
	index int
	name  string
}

// reportPhrase turns one successfully evaluated phrase into its value
// reports: named entries for declarations, an anonymous entry for a
// non-unit expression, nothing for unit. Top-level let groups are
// handled by the run loop itself.
func (in *Interp) reportPhrase(phrase Node, v Value) []TopLevelValue {
	switch n := phrase.(type) {
	case *TypeDecl:
		return []TopLevelValue{{Name: n.Name, Type: "type", Value: typeDeclSignature(n)}}
	case *ExceptionDecl:
		return []TopLevelValue{{Name: n.Name, Type: "exn", Value: exceptionSignature(n)}}
	case *OpenDecl:
		return nil
	}
	if _, isUnit := v.(UnitValue); isUnit {
		return nil
	}
	return []TopLevelValue{{Name: "-", Type: in.typeOf(v), Value: FormatValue(v)}}
}

func bindingNames(binding *LetBinding) []string {
	if binding.Pattern != nil {
		return patternVars(binding.Pattern, nil)
	}
	return []string{binding.Name}
}

// patternVars collects the variables a pattern binds, left to right.
// Both sides of an or-pattern bind the same names, so only the left is
// walked.
func patternVars(pat Pattern, out []string) []string {
	switch pt := pat.(type) {
	case *PVar:
		return append(out, pt.Name)
	case *PTuple:
		for _, item := range pt.Items {
			out = patternVars(item, out)
		}
	case *PList:
		for _, item := range pt.Items {
			out = patternVars(item, out)
		}
	case *PCons:
		out = patternVars(pt.Head, out)
		out = patternVars(pt.Tail, out)
	case *PConstructor:
		if pt.Arg != nil {
			out = patternVars(pt.Arg, out)
		}
	case *POr:
		out = patternVars(pt.Left, out)
	}
	return out
}

// reportError flattens any evaluation failure into the line/column/
// message shape. Raised exceptions render their payload; anything
// unrecognized is reported as a runtime failure.
func reportError(err error) ErrorReport {
	var raised *RaisedError
	if errors.As(err, &raised) {
		rep := raised.Report()
		return ErrorReport{Line: rep.Line, Column: rep.Column, Message: rep.Message}
	}
	var ierr *Error
	if errors.As(err, &ierr) {
		return ErrorReport{Line: ierr.Line, Column: ierr.Column, Message: string(ierr.Kind) + ": " + ierr.Message}
	}
	return ErrorReport{Message: err.Error()}
}
