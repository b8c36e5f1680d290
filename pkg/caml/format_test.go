package caml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrimitives(t *testing.T) {
	assert.Equal(t, "42", FormatValue(IntValue{Val: 42}))
	assert.Equal(t, "-7", FormatValue(IntValue{Val: -7}))
	assert.Equal(t, "true", FormatValue(BoolValue{Val: true}))
	assert.Equal(t, "()", FormatValue(UnitValue{}))
	assert.Equal(t, "'x'", FormatValue(CharValue{Val: 'x'}))
	assert.Equal(t, `'\n'`, FormatValue(CharValue{Val: '\n'}))
}

func TestFormatFloatAlwaysShowsPoint(t *testing.T) {
	assert.Equal(t, "2.", FormatValue(FloatValue{Val: 2.0}))
	assert.Equal(t, "3.14", FormatValue(FloatValue{Val: 3.14}))
	assert.Equal(t, "-0.5", FormatValue(FloatValue{Val: -0.5}))
	assert.Equal(t, "1e+20", FormatValue(FloatValue{Val: 1e20}))
}

func TestFormatStringQuoting(t *testing.T) {
	assert.Equal(t, `"hi"`, FormatValue(StringValue{Val: "hi"}))
	assert.Equal(t, `"a\nb"`, FormatValue(StringValue{Val: "a\nb"}))
	assert.Equal(t, `"say \"hi\""`, FormatValue(StringValue{Val: `say "hi"`}))
	assert.Equal(t, `"back\\slash"`, FormatValue(StringValue{Val: `back\slash`}))
}

func TestFormatContainers(t *testing.T) {
	list := ListValue{Items: []Value{IntValue{Val: 1}, IntValue{Val: 2}}}
	assert.Equal(t, "[1; 2]", FormatValue(list))

	tuple := TupleValue{Items: []Value{IntValue{Val: 1}, StringValue{Val: "a"}}}
	assert.Equal(t, `(1, "a")`, FormatValue(tuple))

	arr := &ArrayValue{Items: []Value{IntValue{Val: 1}, IntValue{Val: 2}}}
	assert.Equal(t, "[|1; 2|]", FormatValue(arr))

	ref := &RefValue{Contents: IntValue{Val: 5}}
	assert.Equal(t, "{contents = 5}", FormatValue(ref))

	assert.Equal(t, "[]", FormatValue(ListValue{}))
}

func TestFormatConstructors(t *testing.T) {
	assert.Equal(t, "None", FormatValue(ConstructorValue{Name: "None"}))
	assert.Equal(t, "Some 3", FormatValue(ConstructorValue{Name: "Some", Arg: IntValue{Val: 3}}))
	assert.Equal(t, "Some (-3)", FormatValue(ConstructorValue{Name: "Some", Arg: IntValue{Val: -3}}))

	nested := ConstructorValue{Name: "Some", Arg: ConstructorValue{Name: "Some", Arg: IntValue{Val: 1}}}
	assert.Equal(t, "Some (Some 1)", FormatValue(nested))
}

func TestFormatRecord(t *testing.T) {
	rec := RecordValue{Fields: []RecordFieldValue{
		{Name: "x", Value: IntValue{Val: 1}},
		{Name: "y", Value: IntValue{Val: 2}},
	}}
	assert.Equal(t, "{x = 1; y = 2}", FormatValue(rec))
}

func TestFormatDepthCap(t *testing.T) {
	deep := Value(IntValue{Val: 1})
	for i := 0; i < 20; i++ {
		deep = ListValue{Items: []Value{deep}}
	}
	rendered := FormatValue(deep)
	assert.Contains(t, rendered, "...")
}

func TestFormatFunctions(t *testing.T) {
	assert.Equal(t, "<fun>", FormatValue(&ClosureValue{}))
	assert.Equal(t, "<fun>", FormatValue(&BuiltinValue{Name: "succ", Arity: 1}))
}
