package caml

import "context"

// Value is a runtime value. The set of implementations is closed; every
// evaluation site inspects values through exhaustive type switches.
// Values are immutable except through explicit ref and array mutation.
type Value interface {
	value()
}

type IntValue struct{ Val int }

type FloatValue struct{ Val float64 }

type StringValue struct{ Val string }

type CharValue struct{ Val rune }

type BoolValue struct{ Val bool }

type UnitValue struct{}

type ListValue struct{ Items []Value }

type TupleValue struct{ Items []Value }

// ClosureValue is a function value: parameter patterns, body, and the
// frame captured at creation. SelfName is set for `let rec` closures so
// the function can resolve itself through its captured frame.
type ClosureValue struct {
	Params   []Pattern
	Body     Node
	Env      *Frame
	SelfName string
}

// BuiltinImpl is the native implementation of a builtin, invoked once the
// full argument count has been accumulated.
type BuiltinImpl func(ctx context.Context, in *Interp, args []Value) (Value, error)

// BuiltinValue is a curried native function. Applying it accumulates
// arguments until Arity is met.
type BuiltinValue struct {
	Name  string
	Arity int
	Args  []Value
	Impl  BuiltinImpl
}

// RefValue is a mutable reference cell. ID is its per-run heap id.
type RefValue struct {
	ID       int
	Contents Value
}

// ConstructorValue is an applied or nullary variant/exception constructor.
// Arg is nil for nullary constructors.
type ConstructorValue struct {
	Name string
	Arg  Value
}

type RecordFieldValue struct {
	Name  string
	Value Value
}

// RecordValue holds fields in declaration order.
type RecordValue struct{ Fields []RecordFieldValue }

// ArrayValue is a mutable fixed-size array. ID is its per-run heap id.
type ArrayValue struct {
	ID    int
	Items []Value
}

func (IntValue) value()          {}
func (FloatValue) value()        {}
func (StringValue) value()       {}
func (CharValue) value()         {}
func (BoolValue) value()         {}
func (UnitValue) value()         {}
func (ListValue) value()         {}
func (TupleValue) value()        {}
func (*ClosureValue) value()     {}
func (*BuiltinValue) value()     {}
func (*RefValue) value()         {}
func (ConstructorValue) value()  {}
func (RecordValue) value()       {}
func (*ArrayValue) value()       {}
