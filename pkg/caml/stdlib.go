package caml

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/camlbox/camlbox/pkg/ioctx"
)

// builtinDef is one registered builtin. The registry is process-global
// and immutable after init; installStdlib copies it into each run's
// fresh global frame so runs cannot observe each other.
type builtinDef struct {
	name  string
	doc   string
	arity int
	impl  BuiltinImpl
}

var registry []*builtinDef

type builtinBuilder struct{ def *builtinDef }

// Builtin starts registering a named builtin with arity 1.
func Builtin(name string) *builtinBuilder {
	def := &builtinDef{name: name, arity: 1}
	registry = append(registry, def)
	return &builtinBuilder{def: def}
}

func (b *builtinBuilder) Doc(doc string) *builtinBuilder {
	b.def.doc = doc
	return b
}

func (b *builtinBuilder) Arity(n int) *builtinBuilder {
	b.def.arity = n
	return b
}

// Impl completes the registration.
func (b *builtinBuilder) Impl(fn BuiltinImpl) {
	b.def.impl = fn
}

func installStdlib(frame *Frame) {
	for _, def := range registry {
		frame.Define(def.name, &BuiltinValue{Name: def.name, Arity: def.arity, Impl: def.impl})
	}
}

var noLoc = &SourceLocation{}

// apply2 calls a curried two-argument function value from native code.
func (in *Interp) apply2(ctx context.Context, fn, a, b Value) (Value, error) {
	partial, err := in.applyValue(ctx, fn, a, noLoc)
	if err != nil {
		return nil, err
	}
	return in.applyValue(ctx, partial, b, noLoc)
}

func raiseCtor(name string, arg Value) error {
	return &RaisedError{Payload: ConstructorValue{Name: name, Arg: arg}}
}

func raiseFailure(msg string) error {
	return raiseCtor("Failure", StringValue{Val: msg})
}

func raiseInvalidArg(msg string) error {
	return raiseCtor("Invalid_argument", StringValue{Val: msg})
}

func raiseNotFound() error {
	return &RaisedError{Payload: ConstructorValue{Name: "Not_found"}}
}

func wantInt(name string, v Value) (int, error) {
	iv, ok := v.(IntValue)
	if !ok {
		return 0, runtimeErrorf(0, 0, "%s expects an integer, got %s", name, FormatValue(v))
	}
	return iv.Val, nil
}

func wantFloat(name string, v Value) (float64, error) {
	fv, ok := v.(FloatValue)
	if !ok {
		return 0, runtimeErrorf(0, 0, "%s expects a float, got %s", name, FormatValue(v))
	}
	return fv.Val, nil
}

func wantString(name string, v Value) (string, error) {
	sv, ok := v.(StringValue)
	if !ok {
		return "", runtimeErrorf(0, 0, "%s expects a string, got %s", name, FormatValue(v))
	}
	return sv.Val, nil
}

func wantChar(name string, v Value) (rune, error) {
	cv, ok := v.(CharValue)
	if !ok {
		return 0, runtimeErrorf(0, 0, "%s expects a char, got %s", name, FormatValue(v))
	}
	return cv.Val, nil
}

func wantList(name string, v Value) ([]Value, error) {
	lv, ok := v.(ListValue)
	if !ok {
		return nil, runtimeErrorf(0, 0, "%s expects a list, got %s", name, FormatValue(v))
	}
	return lv.Items, nil
}

func init() {
	registerCore()
	registerListLib()
	registerStringLib()
	registerArrayLib()
	registerCharLib()
}

func registerCore() {
	Builtin("print_string").
		Doc("prints a string without quoting").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("print_string", args[0])
			if err != nil {
				return nil, err
			}
			fmt.Fprint(ioctx.StdoutFromContext(ctx), s)
			return UnitValue{}, nil
		})

	Builtin("print_endline").
		Doc("prints a string followed by a newline").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("print_endline", args[0])
			if err != nil {
				return nil, err
			}
			fmt.Fprintln(ioctx.StdoutFromContext(ctx), s)
			return UnitValue{}, nil
		})

	Builtin("print_int").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("print_int", args[0])
			if err != nil {
				return nil, err
			}
			fmt.Fprint(ioctx.StdoutFromContext(ctx), n)
			return UnitValue{}, nil
		})

	Builtin("print_float").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			f, err := wantFloat("print_float", args[0])
			if err != nil {
				return nil, err
			}
			fmt.Fprint(ioctx.StdoutFromContext(ctx), formatFloat(f))
			return UnitValue{}, nil
		})

	Builtin("print_char").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			c, err := wantChar("print_char", args[0])
			if err != nil {
				return nil, err
			}
			fmt.Fprint(ioctx.StdoutFromContext(ctx), string(c))
			return UnitValue{}, nil
		})

	Builtin("print_newline").
		Doc("prints a newline; takes ()").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			fmt.Fprintln(ioctx.StdoutFromContext(ctx))
			return UnitValue{}, nil
		})

	Builtin("string_of_int").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("string_of_int", args[0])
			if err != nil {
				return nil, err
			}
			return StringValue{Val: strconv.Itoa(n)}, nil
		})

	Builtin("string_of_float").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			f, err := wantFloat("string_of_float", args[0])
			if err != nil {
				return nil, err
			}
			return StringValue{Val: formatFloat(f)}, nil
		})

	Builtin("string_of_bool").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			b, ok := args[0].(BoolValue)
			if !ok {
				return nil, runtimeErrorf(0, 0, "string_of_bool expects a boolean")
			}
			return StringValue{Val: strconv.FormatBool(b.Val)}, nil
		})

	Builtin("int_of_string").
		Doc("raises Failure on malformed input").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("int_of_string", args[0])
			if err != nil {
				return nil, err
			}
			n, convErr := strconv.Atoi(strings.TrimSpace(s))
			if convErr != nil {
				return nil, raiseFailure("int_of_string")
			}
			return IntValue{Val: n}, nil
		})

	Builtin("float_of_string").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("float_of_string", args[0])
			if err != nil {
				return nil, err
			}
			f, convErr := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if convErr != nil {
				return nil, raiseFailure("float_of_string")
			}
			return FloatValue{Val: f}, nil
		})

	Builtin("int_of_float").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			f, err := wantFloat("int_of_float", args[0])
			if err != nil {
				return nil, err
			}
			return IntValue{Val: int(math.Trunc(f))}, nil
		})

	Builtin("float_of_int").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("float_of_int", args[0])
			if err != nil {
				return nil, err
			}
			return FloatValue{Val: float64(n)}, nil
		})

	Builtin("abs").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("abs", args[0])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				n = -n
			}
			return IntValue{Val: n}, nil
		})

	Builtin("succ").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("succ", args[0])
			if err != nil {
				return nil, err
			}
			return IntValue{Val: n + 1}, nil
		})

	Builtin("pred").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("pred", args[0])
			if err != nil {
				return nil, err
			}
			return IntValue{Val: n - 1}, nil
		})

	Builtin("min").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			if compareValues(args[0], args[1]) <= 0 {
				return args[0], nil
			}
			return args[1], nil
		})

	Builtin("max").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			if compareValues(args[0], args[1]) >= 0 {
				return args[0], nil
			}
			return args[1], nil
		})

	Builtin("compare").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			return IntValue{Val: compareValues(args[0], args[1])}, nil
		})

	Builtin("fst").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			t, ok := args[0].(TupleValue)
			if !ok || len(t.Items) != 2 {
				return nil, runtimeErrorf(0, 0, "fst expects a pair")
			}
			return t.Items[0], nil
		})

	Builtin("snd").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			t, ok := args[0].(TupleValue)
			if !ok || len(t.Items) != 2 {
				return nil, runtimeErrorf(0, 0, "snd expects a pair")
			}
			return t.Items[1], nil
		})

	Builtin("ignore").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			return UnitValue{}, nil
		})

	Builtin("failwith").
		Doc("raises Failure with the given message").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("failwith", args[0])
			if err != nil {
				return nil, err
			}
			return nil, raiseFailure(s)
		})

	Builtin("invalid_arg").
		Doc("raises Invalid_argument with the given message").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("invalid_arg", args[0])
			if err != nil {
				return nil, err
			}
			return nil, raiseInvalidArg(s)
		})
}
