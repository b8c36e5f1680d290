package caml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleValues() []Value {
	ref := &RefValue{Contents: IntValue{Val: 1}}
	arr := &ArrayValue{Items: []Value{IntValue{Val: 1}}}
	return []Value{
		UnitValue{},
		BoolValue{Val: true},
		IntValue{Val: 3},
		FloatValue{Val: 2.5},
		CharValue{Val: 'k'},
		StringValue{Val: "abc"},
		ListValue{Items: []Value{IntValue{Val: 1}, IntValue{Val: 2}}},
		TupleValue{Items: []Value{IntValue{Val: 1}, StringValue{Val: "x"}}},
		arr,
		RecordValue{Fields: []RecordFieldValue{{Name: "a", Value: IntValue{Val: 1}}}},
		ConstructorValue{Name: "Some", Arg: IntValue{Val: 9}},
		ref,
		&ClosureValue{},
	}
}

func TestCompareReflexive(t *testing.T) {
	for _, v := range sampleValues() {
		assert.Equal(t, 0, compareValues(v, v), "compare(%s, %s)", FormatValue(v), FormatValue(v))
	}
}

func TestCompareAntisymmetric(t *testing.T) {
	vals := sampleValues()
	for _, a := range vals {
		for _, b := range vals {
			assert.Equal(t, compareValues(a, b), -compareValues(b, a),
				"compare(%s, %s)", FormatValue(a), FormatValue(b))
		}
	}
}

func TestCompareNumericCrossTag(t *testing.T) {
	assert.Equal(t, 0, compareValues(IntValue{Val: 2}, FloatValue{Val: 2.0}))
	assert.Equal(t, -1, compareValues(IntValue{Val: 1}, FloatValue{Val: 1.5}))
	assert.Equal(t, 1, compareValues(FloatValue{Val: 3.5}, IntValue{Val: 3}))
}

func TestCompareLists(t *testing.T) {
	short := ListValue{Items: []Value{IntValue{Val: 1}}}
	long := ListValue{Items: []Value{IntValue{Val: 1}, IntValue{Val: 2}}}
	assert.Equal(t, -1, compareValues(short, long))
	assert.Equal(t, 1, compareValues(long, short))

	a := ListValue{Items: []Value{IntValue{Val: 1}, IntValue{Val: 9}}}
	assert.Equal(t, -1, compareValues(long, a))
}

func TestCompareConstructors(t *testing.T) {
	none := ConstructorValue{Name: "None"}
	some1 := ConstructorValue{Name: "Some", Arg: IntValue{Val: 1}}
	some2 := ConstructorValue{Name: "Some", Arg: IntValue{Val: 2}}
	assert.Equal(t, -1, compareValues(none, some1))
	assert.Equal(t, -1, compareValues(some1, some2))
}

func TestCompareRefsByContents(t *testing.T) {
	a := &RefValue{Contents: IntValue{Val: 1}}
	b := &RefValue{Contents: IntValue{Val: 1}}
	assert.Equal(t, 0, compareValues(a, b))
}

func TestPhysicalEquality(t *testing.T) {
	a := &RefValue{Contents: IntValue{Val: 1}}
	b := &RefValue{Contents: IntValue{Val: 1}}
	assert.True(t, physicalEqual(a, a))
	assert.False(t, physicalEqual(a, b))

	// immutable primitives compare structurally under ==
	assert.True(t, physicalEqual(IntValue{Val: 3}, IntValue{Val: 3}))
	assert.False(t, physicalEqual(IntValue{Val: 3}, IntValue{Val: 4}))
}
