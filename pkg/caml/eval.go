package caml

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camlbox/camlbox/pkg/ioctx"
)

// runState tracks the per-run lifecycle: idle until the first phrase,
// running while phrases evaluate, then completed or aborted.
type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateCompleted
	stateAborted
)

// heapEntry tracks a live ref or array for the memory snapshot. Ids are
// monotonic per run and never reused.
type heapEntry struct {
	id   int
	kind string
	ref  *RefValue
	arr  *ArrayValue
}

// Interp is a single-run tree-walking evaluator. Each run owns a fresh
// Interp; nothing is shared between runs.
type Interp struct {
	limits  Limits
	globals *Frame

	steps    int
	depth    int
	deadline time.Time
	state    runState

	heap     []heapEntry
	nextHeap int

	// most recent application frames, oldest first, capped at
	// limits.StackFrames
	callRing []*Frame

	constructors map[string]ctorInfo
	recordTypes  []recordInfo
	typeSigs     []string
}

// NewInterp creates a fresh evaluator with the standard library and
// pre-bound constructors installed into a new global frame.
func NewInterp(limits Limits) *Interp {
	in := &Interp{
		limits:       limits.withDefaults(),
		globals:      NewFrame(nil),
		constructors: make(map[string]ctorInfo),
	}
	for name, info := range builtinConstructors {
		in.constructors[name] = info
	}
	installStdlib(in.globals)
	return in
}

// beginRun resets the resource counters and arms the deadline.
func (in *Interp) beginRun() {
	in.steps = 0
	in.depth = 0
	in.deadline = time.Now().Add(in.limits.timeout())
	in.state = stateRunning
}

// step accounts for one AST-node evaluation. The wall clock is sampled
// periodically rather than on every step to bound the cost of timing.
func (in *Interp) step() error {
	in.steps++
	if in.steps > in.limits.MaxSteps {
		return &Error{Kind: RuntimeError, Message: "possible infinite loop"}
	}
	if in.steps%1024 == 0 && time.Now().After(in.deadline) {
		return &Error{Kind: RuntimeError, Message: "execution timed out"}
	}
	return nil
}

func (in *Interp) allocHeapRef(r *RefValue) {
	r.ID = in.nextHeap
	in.nextHeap++
	in.heap = append(in.heap, heapEntry{id: r.ID, kind: "ref", ref: r})
}

func (in *Interp) allocHeapArray(a *ArrayValue) {
	a.ID = in.nextHeap
	in.nextHeap++
	in.heap = append(in.heap, heapEntry{id: a.ID, kind: "array", arr: a})
}

func (in *Interp) recordCall(frame *Frame) {
	in.callRing = append(in.callRing, frame)
	if len(in.callRing) > in.limits.StackFrames {
		in.callRing = in.callRing[1:]
	}
}

// evalPhrase evaluates one top-level phrase against the global frame.
func (in *Interp) evalPhrase(ctx context.Context, phrase Node) (Value, error) {
	if let, ok := phrase.(*Let); ok && let.Body == nil {
		if err := in.evalLetBindings(ctx, let, in.globals, in.globals); err != nil {
			return nil, err
		}
		return UnitValue{}, nil
	}
	return in.eval(ctx, phrase, in.globals)
}

func (in *Interp) eval(ctx context.Context, node Node, env *Frame) (Value, error) {
	if err := in.step(); err != nil {
		return nil, err
	}
	switch n := node.(type) {
	case *IntLit:
		return IntValue{Val: n.Value}, nil
	case *FloatLit:
		return FloatValue{Val: n.Value}, nil
	case *StringLit:
		return StringValue{Val: n.Value}, nil
	case *CharLit:
		return CharValue{Val: n.Value}, nil
	case *BoolLit:
		return BoolValue{Val: n.Value}, nil
	case *UnitLit:
		return UnitValue{}, nil
	case *Symbol:
		v, ok := env.Get(n.Name)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "Unbound value %s", n.Name)
		}
		return v, nil
	case *ConstructorRef:
		if _, ok := in.constructors[n.Name]; !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "Unbound constructor %s", n.Name)
		}
		return ConstructorValue{Name: n.Name}, nil
	case *ListLit:
		items, err := in.evalAll(ctx, n.Elements, env)
		if err != nil {
			return nil, err
		}
		return ListValue{Items: items}, nil
	case *TupleLit:
		items, err := in.evalAll(ctx, n.Items, env)
		if err != nil {
			return nil, err
		}
		return TupleValue{Items: items}, nil
	case *ArrayLit:
		items, err := in.evalAll(ctx, n.Elements, env)
		if err != nil {
			return nil, err
		}
		arr := &ArrayValue{Items: items}
		in.allocHeapArray(arr)
		return arr, nil
	case *RecordLit:
		fields := make([]RecordFieldValue, len(n.Fields))
		for i, f := range n.Fields {
			v, err := in.eval(ctx, f.Value, env)
			if err != nil {
				return nil, err
			}
			fields[i] = RecordFieldValue{Name: f.Name, Value: v}
		}
		return RecordValue{Fields: fields}, nil
	case *Cons:
		head, err := in.eval(ctx, n.Head, env)
		if err != nil {
			return nil, err
		}
		tail, err := in.eval(ctx, n.Tail, env)
		if err != nil {
			return nil, err
		}
		list, ok := tail.(ListValue)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "the right operand of :: must be a list")
		}
		items := make([]Value, 0, len(list.Items)+1)
		items = append(items, head)
		items = append(items, list.Items...)
		return ListValue{Items: items}, nil
	case *Let:
		frame := NewFrame(env)
		if err := in.evalLetBindings(ctx, n, frame, env); err != nil {
			return nil, err
		}
		return in.eval(ctx, n.Body, frame)
	case *FunExpr:
		return &ClosureValue{Params: n.Params, Body: n.Body, Env: env}, nil
	case *Apply:
		fn, err := in.eval(ctx, n.Fn, env)
		if err != nil {
			return nil, err
		}
		arg, err := in.eval(ctx, n.Arg, env)
		if err != nil {
			return nil, err
		}
		return in.applyValue(ctx, fn, arg, n.Loc)
	case *Binop:
		return in.evalBinop(ctx, n, env)
	case *Unop:
		return in.evalUnop(ctx, n, env)
	case *If:
		cond, err := in.eval(ctx, n.Cond, env)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(BoolValue)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "if condition must be a boolean")
		}
		if b.Val {
			return in.eval(ctx, n.Then, env)
		}
		if n.Else == nil {
			return UnitValue{}, nil
		}
		return in.eval(ctx, n.Else, env)
	case *MatchExpr:
		scrutinee, err := in.eval(ctx, n.Scrutinee, env)
		if err != nil {
			return nil, err
		}
		v, matched, err := in.evalCases(ctx, n.Cases, scrutinee, env)
		if err != nil {
			return nil, err
		}
		if !matched {
			return nil, matchFailure(n.Loc.Line, n.Loc.Column)
		}
		return v, nil
	case *TryExpr:
		return in.evalTry(ctx, n, env)
	case *Raise:
		payload, err := in.eval(ctx, n.Expr, env)
		if err != nil {
			return nil, err
		}
		return nil, &RaisedError{Payload: payload, Line: n.Loc.Line, Column: n.Loc.Column}
	case *Sequence:
		var last Value = UnitValue{}
		for _, e := range n.Exprs {
			v, err := in.eval(ctx, e, env)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	case *RefNew:
		v, err := in.eval(ctx, n.Expr, env)
		if err != nil {
			return nil, err
		}
		r := &RefValue{Contents: v}
		in.allocHeapRef(r)
		return r, nil
	case *Deref:
		v, err := in.eval(ctx, n.Expr, env)
		if err != nil {
			return nil, err
		}
		r, ok := v.(*RefValue)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "! expects a ref")
		}
		return r.Contents, nil
	case *RefAssign:
		target, err := in.eval(ctx, n.Target, env)
		if err != nil {
			return nil, err
		}
		r, ok := target.(*RefValue)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, ":= expects a ref on the left")
		}
		v, err := in.eval(ctx, n.Value, env)
		if err != nil {
			return nil, err
		}
		r.Contents = v
		return UnitValue{}, nil
	case *FieldAccess:
		v, err := in.eval(ctx, n.Expr, env)
		if err != nil {
			return nil, err
		}
		rec, ok := v.(RecordValue)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "this expression is not a record")
		}
		for _, f := range rec.Fields {
			if f.Name == n.Field {
				return f.Value, nil
			}
		}
		return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "record has no field %s", n.Field)
	case *ArrayGet:
		arr, idx, err := in.evalArrayIndex(ctx, n.Array, n.Index, env, n.Loc)
		if err != nil {
			return nil, err
		}
		return arr.Items[idx], nil
	case *ArraySet:
		arr, idx, err := in.evalArrayIndex(ctx, n.Array, n.Index, env, n.Loc)
		if err != nil {
			return nil, err
		}
		v, err := in.eval(ctx, n.Value, env)
		if err != nil {
			return nil, err
		}
		arr.Items[idx] = v
		return UnitValue{}, nil
	case *ForLoop:
		return in.evalFor(ctx, n, env)
	case *WhileLoop:
		for {
			cond, err := in.eval(ctx, n.Cond, env)
			if err != nil {
				return nil, err
			}
			b, ok := cond.(BoolValue)
			if !ok {
				return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "while condition must be a boolean")
			}
			if !b.Val {
				return UnitValue{}, nil
			}
			if _, err := in.eval(ctx, n.Body, env); err != nil {
				return nil, err
			}
		}
	case *PrintfExpr:
		return in.evalPrintf(ctx, n, env)
	case *TypeDecl:
		in.declareType(n)
		return UnitValue{}, nil
	case *ExceptionDecl:
		in.constructors[n.Name] = ctorInfo{typeName: "exn", hasArg: n.ArgType != "", argType: n.ArgType}
		in.typeSigs = append(in.typeSigs, exceptionSignature(n))
		return UnitValue{}, nil
	case *OpenDecl:
		in.openModule(n.Module)
		return UnitValue{}, nil
	default:
		return nil, runtimeErrorf(0, 0, "cannot evaluate %T", node)
	}
}

func (in *Interp) evalAll(ctx context.Context, nodes []Node, env *Frame) ([]Value, error) {
	items := make([]Value, len(nodes))
	for i, node := range nodes {
		v, err := in.eval(ctx, node, env)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}

// evalLetBindings installs a let group's bindings into frame. For
// non-recursive groups each expression is evaluated against the outer
// env; `let rec` closures capture the frame being built so they can see
// themselves and their siblings.
func (in *Interp) evalLetBindings(ctx context.Context, let *Let, frame, env *Frame) error {
	if let.Rec {
		for _, b := range let.Bindings {
			if b.Pattern != nil {
				return syntaxErrorf(b.Loc.Line, b.Loc.Column, "only variables are allowed as left-hand side of 'let rec'")
			}
			clos, ok := recClosure(b, frame)
			if !ok {
				// a non-function let rec; evaluate as a plain binding
				v, err := in.eval(ctx, b.Expr, frame)
				if err != nil {
					return err
				}
				frame.Define(b.Name, v)
				continue
			}
			frame.Define(b.Name, clos)
		}
		return nil
	}
	for _, b := range let.Bindings {
		if len(b.Params) > 0 {
			frame.Define(b.Name, &ClosureValue{Params: b.Params, Body: b.Expr, Env: env})
			continue
		}
		v, err := in.eval(ctx, b.Expr, env)
		if err != nil {
			return err
		}
		if b.Pattern != nil {
			binds, ok := matchPattern(b.Pattern, v)
			if !ok {
				return matchFailure(b.Loc.Line, b.Loc.Column)
			}
			commitBindings(frame, binds)
			continue
		}
		frame.Define(b.Name, v)
	}
	return nil
}

// recClosure builds the closure for a `let rec` binding, capturing the
// frame the binding itself lives in.
func recClosure(b *LetBinding, frame *Frame) (*ClosureValue, bool) {
	if len(b.Params) > 0 {
		return &ClosureValue{Params: b.Params, Body: b.Expr, Env: frame, SelfName: b.Name}, true
	}
	if fn, ok := b.Expr.(*FunExpr); ok {
		return &ClosureValue{Params: fn.Params, Body: fn.Body, Env: frame, SelfName: b.Name}, true
	}
	return nil, false
}

// applyValue applies a function-like value to one argument: closures and
// builtins curry, constructors take at most one payload.
func (in *Interp) applyValue(ctx context.Context, fn, arg Value, loc *SourceLocation) (Value, error) {
	switch f := fn.(type) {
	case *ClosureValue:
		frame := NewFrame(f.Env)
		frame.fnName = f.SelfName
		if frame.fnName == "" {
			frame.fnName = "<fun>"
		}
		frame.callLine = loc.Line
		binds, ok := matchPattern(f.Params[0], arg)
		if !ok {
			return nil, matchFailure(loc.Line, loc.Column)
		}
		commitBindings(frame, binds)
		if len(f.Params) > 1 {
			return &ClosureValue{Params: f.Params[1:], Body: f.Body, Env: frame, SelfName: f.SelfName}, nil
		}
		in.depth++
		if in.depth > in.limits.MaxCallDepth {
			in.depth--
			return nil, &Error{Kind: RuntimeError, Message: "stack overflow (maximum call depth exceeded)"}
		}
		in.recordCall(frame)
		v, err := in.eval(ctx, f.Body, frame)
		in.depth--
		return v, err
	case *BuiltinValue:
		args := make([]Value, 0, len(f.Args)+1)
		args = append(args, f.Args...)
		args = append(args, arg)
		if len(args) < f.Arity {
			return &BuiltinValue{Name: f.Name, Arity: f.Arity, Args: args, Impl: f.Impl}, nil
		}
		in.depth++
		if in.depth > in.limits.MaxCallDepth {
			in.depth--
			return nil, &Error{Kind: RuntimeError, Message: "stack overflow (maximum call depth exceeded)"}
		}
		v, err := f.Impl(ctx, in, args)
		in.depth--
		return v, err
	case ConstructorValue:
		if f.Arg != nil {
			return nil, runtimeErrorf(loc.Line, loc.Column, "constructor %s is already applied", f.Name)
		}
		if info, ok := in.constructors[f.Name]; ok && !info.hasArg {
			return nil, runtimeErrorf(loc.Line, loc.Column, "constructor %s expects no argument", f.Name)
		}
		return ConstructorValue{Name: f.Name, Arg: arg}, nil
	default:
		return nil, runtimeErrorf(loc.Line, loc.Column, "this expression is not a function; it cannot be applied")
	}
}

// evalCases tries each case in order against v. Returns matched=false if
// no case's pattern (and guard) accepts v.
func (in *Interp) evalCases(ctx context.Context, cases []*MatchCase, v Value, env *Frame) (Value, bool, error) {
	for _, c := range cases {
		binds, ok := matchPattern(c.Pattern, v)
		if !ok {
			continue
		}
		frame := NewFrame(env)
		commitBindings(frame, binds)
		if c.Guard != nil {
			guard, err := in.eval(ctx, c.Guard, frame)
			if err != nil {
				return nil, false, err
			}
			b, ok := guard.(BoolValue)
			if !ok {
				return nil, false, runtimeErrorf(c.Loc.Line, c.Loc.Column, "when guard must be a boolean")
			}
			if !b.Val {
				continue
			}
		}
		result, err := in.eval(ctx, c.Body, frame)
		if err != nil {
			return nil, false, err
		}
		return result, true, nil
	}
	return nil, false, nil
}

// evalTry recovers only from user exceptions. If no handler matches, the
// original exception re-propagates with identity preserved.
func (in *Interp) evalTry(ctx context.Context, try *TryExpr, env *Frame) (Value, error) {
	v, err := in.eval(ctx, try.Body, env)
	if err == nil {
		return v, nil
	}
	var raised *RaisedError
	if !errors.As(err, &raised) {
		return nil, err
	}
	result, matched, herr := in.evalCases(ctx, try.Cases, raised.Payload, env)
	if herr != nil {
		return nil, herr
	}
	if !matched {
		return nil, raised
	}
	return result, nil
}

func (in *Interp) evalArrayIndex(ctx context.Context, arrayNode, indexNode Node, env *Frame, loc *SourceLocation) (*ArrayValue, int, error) {
	av, err := in.eval(ctx, arrayNode, env)
	if err != nil {
		return nil, 0, err
	}
	arr, ok := av.(*ArrayValue)
	if !ok {
		return nil, 0, runtimeErrorf(loc.Line, loc.Column, "this expression is not an array")
	}
	iv, err := in.eval(ctx, indexNode, env)
	if err != nil {
		return nil, 0, err
	}
	idx, ok := iv.(IntValue)
	if !ok {
		return nil, 0, runtimeErrorf(loc.Line, loc.Column, "array index must be an integer")
	}
	if idx.Val < 0 || idx.Val >= len(arr.Items) {
		return nil, 0, runtimeErrorf(loc.Line, loc.Column, "index out of bounds")
	}
	return arr, idx.Val, nil
}

func (in *Interp) evalFor(ctx context.Context, loop *ForLoop, env *Frame) (Value, error) {
	fromV, err := in.eval(ctx, loop.From, env)
	if err != nil {
		return nil, err
	}
	toV, err := in.eval(ctx, loop.To, env)
	if err != nil {
		return nil, err
	}
	from, ok1 := fromV.(IntValue)
	to, ok2 := toV.(IntValue)
	if !ok1 || !ok2 {
		return nil, runtimeErrorf(loop.Loc.Line, loop.Loc.Column, "for loop bounds must be integers")
	}
	frame := NewFrame(env)
	if loop.Down {
		for i := from.Val; i >= to.Val; i-- {
			frame.Define(loop.Var, IntValue{Val: i})
			if _, err := in.eval(ctx, loop.Body, frame); err != nil {
				return nil, err
			}
		}
	} else {
		for i := from.Val; i <= to.Val; i++ {
			frame.Define(loop.Var, IntValue{Val: i})
			if _, err := in.eval(ctx, loop.Body, frame); err != nil {
				return nil, err
			}
		}
	}
	return UnitValue{}, nil
}

func (in *Interp) evalBinop(ctx context.Context, n *Binop, env *Frame) (Value, error) {
	// short-circuit forms evaluate the right operand lazily
	if n.Op == "&&" || n.Op == "||" {
		left, err := in.eval(ctx, n.Left, env)
		if err != nil {
			return nil, err
		}
		lb, ok := left.(BoolValue)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "operator %s expects boolean operands", n.Op)
		}
		if n.Op == "&&" && !lb.Val {
			return BoolValue{Val: false}, nil
		}
		if n.Op == "||" && lb.Val {
			return BoolValue{Val: true}, nil
		}
		right, err := in.eval(ctx, n.Right, env)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(BoolValue)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "operator %s expects boolean operands", n.Op)
		}
		return rb, nil
	}

	left, err := in.eval(ctx, n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(ctx, n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "+", "-", "*", "/", "mod":
		li, lok := left.(IntValue)
		ri, rok := right.(IntValue)
		if !lok || !rok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "operator %s expects integer operands", n.Op)
		}
		switch n.Op {
		case "+":
			return IntValue{Val: li.Val + ri.Val}, nil
		case "-":
			return IntValue{Val: li.Val - ri.Val}, nil
		case "*":
			return IntValue{Val: li.Val * ri.Val}, nil
		case "/":
			if ri.Val == 0 {
				return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "Division_by_zero")
			}
			return IntValue{Val: li.Val / ri.Val}, nil
		default:
			if ri.Val == 0 {
				return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "Division_by_zero")
			}
			return IntValue{Val: li.Val % ri.Val}, nil
		}
	case "+.", "-.", "*.", "/.":
		lf, lok := left.(FloatValue)
		rf, rok := right.(FloatValue)
		if !lok || !rok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "operator %s expects float operands", n.Op)
		}
		switch n.Op {
		case "+.":
			return FloatValue{Val: lf.Val + rf.Val}, nil
		case "-.":
			return FloatValue{Val: lf.Val - rf.Val}, nil
		case "*.":
			return FloatValue{Val: lf.Val * rf.Val}, nil
		default:
			return FloatValue{Val: lf.Val / rf.Val}, nil
		}
	case "^":
		ls, lok := left.(StringValue)
		rs, rok := right.(StringValue)
		if !lok || !rok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "operator ^ expects string operands")
		}
		return StringValue{Val: ls.Val + rs.Val}, nil
	case "@":
		ll, lok := left.(ListValue)
		rl, rok := right.(ListValue)
		if !lok || !rok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "operator @ expects list operands")
		}
		items := make([]Value, 0, len(ll.Items)+len(rl.Items))
		items = append(items, ll.Items...)
		items = append(items, rl.Items...)
		return ListValue{Items: items}, nil
	case "=":
		return BoolValue{Val: compareValues(left, right) == 0}, nil
	case "<>":
		return BoolValue{Val: compareValues(left, right) != 0}, nil
	case "<":
		return BoolValue{Val: compareValues(left, right) < 0}, nil
	case ">":
		return BoolValue{Val: compareValues(left, right) > 0}, nil
	case "<=":
		return BoolValue{Val: compareValues(left, right) <= 0}, nil
	case ">=":
		return BoolValue{Val: compareValues(left, right) >= 0}, nil
	case "==":
		return BoolValue{Val: physicalEqual(left, right)}, nil
	case "!=":
		return BoolValue{Val: !physicalEqual(left, right)}, nil
	default:
		return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "unknown operator %s", n.Op)
	}
}

func (in *Interp) evalUnop(ctx context.Context, n *Unop, env *Frame) (Value, error) {
	v, err := in.eval(ctx, n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		switch val := v.(type) {
		case IntValue:
			return IntValue{Val: -val.Val}, nil
		case FloatValue:
			return FloatValue{Val: -val.Val}, nil
		}
		return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "unary - expects a number")
	case "-.":
		f, ok := v.(FloatValue)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "unary -. expects a float")
		}
		return FloatValue{Val: -f.Val}, nil
	case "not":
		b, ok := v.(BoolValue)
		if !ok {
			return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "not expects a boolean")
		}
		return BoolValue{Val: !b.Val}, nil
	default:
		return nil, runtimeErrorf(n.Loc.Line, n.Loc.Column, "unknown operator %s", n.Op)
	}
}

// evalPrintf renders a Printf.printf call. Unknown specifiers pass through
// literally rather than erroring.
func (in *Interp) evalPrintf(ctx context.Context, n *PrintfExpr, env *Frame) (Value, error) {
	args, err := in.evalAll(ctx, n.Args, env)
	if err != nil {
		return nil, err
	}
	text, err := formatPrintf(n.Format, args, n.Loc)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(ioctx.StdoutFromContext(ctx), text)
	return UnitValue{}, nil
}

func formatPrintf(format string, args []Value, loc *SourceLocation) (string, error) {
	var sb strings.Builder
	next := 0
	take := func() (Value, bool) {
		if next >= len(args) {
			return nil, false
		}
		v := args[next]
		next++
		return v, true
	}
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 >= len(runes) {
			sb.WriteRune(runes[i])
			continue
		}
		spec := runes[i+1]
		switch spec {
		case '%':
			sb.WriteByte('%')
			i++
		case 'd', 'i':
			v, ok := take()
			iv, isInt := v.(IntValue)
			if !ok || !isInt {
				return "", runtimeErrorf(loc.Line, loc.Column, "printf: %%%c expects an integer argument", spec)
			}
			fmt.Fprintf(&sb, "%d", iv.Val)
			i++
		case 's':
			v, ok := take()
			sv, isStr := v.(StringValue)
			if !ok || !isStr {
				return "", runtimeErrorf(loc.Line, loc.Column, "printf: %%s expects a string argument")
			}
			sb.WriteString(sv.Val)
			i++
		case 'f':
			v, ok := take()
			fv, isFloat := v.(FloatValue)
			if !ok || !isFloat {
				return "", runtimeErrorf(loc.Line, loc.Column, "printf: %%f expects a float argument")
			}
			fmt.Fprintf(&sb, "%f", fv.Val)
			i++
		case 'g':
			v, ok := take()
			fv, isFloat := v.(FloatValue)
			if !ok || !isFloat {
				return "", runtimeErrorf(loc.Line, loc.Column, "printf: %%g expects a float argument")
			}
			fmt.Fprintf(&sb, "%g", fv.Val)
			i++
		case 'b':
			v, ok := take()
			bv, isBool := v.(BoolValue)
			if !ok || !isBool {
				return "", runtimeErrorf(loc.Line, loc.Column, "printf: %%b expects a boolean argument")
			}
			fmt.Fprintf(&sb, "%t", bv.Val)
			i++
		case 'c':
			v, ok := take()
			cv, isChar := v.(CharValue)
			if !ok || !isChar {
				return "", runtimeErrorf(loc.Line, loc.Column, "printf: %%c expects a char argument")
			}
			sb.WriteRune(cv.Val)
			i++
		default:
			// unknown specifier renders literally
			sb.WriteByte('%')
			sb.WriteRune(spec)
			i++
		}
	}
	return sb.String(), nil
}

func (in *Interp) declareType(decl *TypeDecl) {
	switch {
	case len(decl.Variants) > 0:
		for _, vc := range decl.Variants {
			in.constructors[vc.Name] = ctorInfo{typeName: decl.Name, hasArg: vc.ArgType != "", argType: vc.ArgType}
		}
	case len(decl.Fields) > 0:
		fields := make([]string, len(decl.Fields))
		for i, f := range decl.Fields {
			fields[i] = f.Name
		}
		in.recordTypes = append(in.recordTypes, recordInfo{name: decl.Name, fields: fields})
	}
	in.typeSigs = append(in.typeSigs, typeDeclSignature(decl))
}

// openModule installs unqualified aliases for a module's bindings, e.g.
// `open List` makes `map` resolve to `List.map`.
func (in *Interp) openModule(module string) {
	prefix := module + "."
	var aliases []matchBinding
	in.globals.Bindings(func(name string, v Value) {
		if strings.HasPrefix(name, prefix) {
			aliases = append(aliases, matchBinding{name: strings.TrimPrefix(name, prefix), val: v})
		}
	})
	for _, a := range aliases {
		in.globals.Define(a.name, a.val)
	}
}

func typeDeclSignature(decl *TypeDecl) string {
	var sb strings.Builder
	sb.WriteString("type ")
	if len(decl.Params) == 1 {
		sb.WriteString(decl.Params[0] + " ")
	} else if len(decl.Params) > 1 {
		sb.WriteString("(" + strings.Join(decl.Params, ", ") + ") ")
	}
	sb.WriteString(decl.Name + " =")
	switch {
	case len(decl.Variants) > 0:
		parts := make([]string, len(decl.Variants))
		for i, vc := range decl.Variants {
			if vc.ArgType != "" {
				parts[i] = vc.Name + " of " + vc.ArgType
			} else {
				parts[i] = vc.Name
			}
		}
		sb.WriteString(" " + strings.Join(parts, " | "))
	case len(decl.Fields) > 0:
		parts := make([]string, len(decl.Fields))
		for i, f := range decl.Fields {
			mut := ""
			if f.Mutable {
				mut = "mutable "
			}
			parts[i] = mut + f.Name + " : " + f.Type
		}
		sb.WriteString(" { " + strings.Join(parts, "; ") + " }")
	default:
		sb.WriteString(" " + decl.Alias)
	}
	return sb.String()
}

func exceptionSignature(decl *ExceptionDecl) string {
	if decl.ArgType != "" {
		return "exception " + decl.Name + " of " + decl.ArgType
	}
	return "exception " + decl.Name
}
