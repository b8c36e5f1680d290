package caml

import "strings"

// compareValues is the total structural order behind the polymorphic
// comparison operators and the library's min/max/mem/assoc/sort. Values of
// mismatched shapes order by tag rank: unspecified but consistent, which
// is all internal library use requires.
func compareValues(a, b Value) int {
	ra, rb := tagRank(a), tagRank(b)
	if ra != rb {
		if numericRank(ra) && numericRank(rb) {
			return cmpFloat(numeric(a), numeric(b))
		}
		return cmpInt(ra, rb)
	}
	switch av := a.(type) {
	case UnitValue:
		return 0
	case BoolValue:
		bv := b.(BoolValue)
		switch {
		case av.Val == bv.Val:
			return 0
		case !av.Val:
			return -1
		default:
			return 1
		}
	case IntValue:
		return cmpInt(av.Val, b.(IntValue).Val)
	case FloatValue:
		return cmpFloat(av.Val, b.(FloatValue).Val)
	case CharValue:
		return cmpInt(int(av.Val), int(b.(CharValue).Val))
	case StringValue:
		return strings.Compare(av.Val, b.(StringValue).Val)
	case ListValue:
		return compareSlices(av.Items, b.(ListValue).Items)
	case TupleValue:
		return compareSlices(av.Items, b.(TupleValue).Items)
	case *ArrayValue:
		return compareSlices(av.Items, b.(*ArrayValue).Items)
	case *RefValue:
		return compareValues(av.Contents, b.(*RefValue).Contents)
	case ConstructorValue:
		bv := b.(ConstructorValue)
		if c := strings.Compare(av.Name, bv.Name); c != 0 {
			return c
		}
		if av.Arg != nil && bv.Arg != nil {
			return compareValues(av.Arg, bv.Arg)
		}
		switch {
		case av.Arg == nil && bv.Arg == nil:
			return 0
		case av.Arg == nil:
			return -1
		default:
			return 1
		}
	case RecordValue:
		bv := b.(RecordValue)
		n := min(len(av.Fields), len(bv.Fields))
		for i := 0; i < n; i++ {
			if c := strings.Compare(av.Fields[i].Name, bv.Fields[i].Name); c != 0 {
				return c
			}
			if c := compareValues(av.Fields[i].Value, bv.Fields[i].Value); c != 0 {
				return c
			}
		}
		return cmpInt(len(av.Fields), len(bv.Fields))
	default:
		// functions and builtins carry no ordering beyond their tag
		return 0
	}
}

// compareSlices orders elementwise; a strict prefix sorts before its
// extension.
func compareSlices(a, b []Value) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := compareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func tagRank(v Value) int {
	switch v.(type) {
	case UnitValue:
		return 0
	case BoolValue:
		return 1
	case IntValue:
		return 2
	case FloatValue:
		return 3
	case CharValue:
		return 4
	case StringValue:
		return 5
	case ListValue:
		return 6
	case TupleValue:
		return 7
	case *ArrayValue:
		return 8
	case RecordValue:
		return 9
	case ConstructorValue:
		return 10
	case *RefValue:
		return 11
	case *ClosureValue:
		return 12
	default:
		return 13
	}
}

func numericRank(r int) bool { return r == 2 || r == 3 }

func numeric(v Value) float64 {
	switch n := v.(type) {
	case IntValue:
		return float64(n.Val)
	case FloatValue:
		return n.Val
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// physicalEqual is `==`: identity for mutable structures and closures,
// structural equality for immutable primitives.
func physicalEqual(a, b Value) bool {
	switch av := a.(type) {
	case *RefValue:
		bv, ok := b.(*RefValue)
		return ok && av == bv
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		return ok && av == bv
	case *ClosureValue:
		bv, ok := b.(*ClosureValue)
		return ok && av == bv
	case *BuiltinValue:
		bv, ok := b.(*BuiltinValue)
		return ok && av == bv
	default:
		return compareValues(a, b) == 0
	}
}
