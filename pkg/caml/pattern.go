package caml

// matchBinding is one variable binding produced by a successful pattern
// match attempt, held off to the side until the whole pattern commits.
type matchBinding struct {
	name string
	val  Value
}

// matchPattern tests pat against v, appending bindings to binds. On
// failure the returned slice must be discarded by the caller; nothing has
// been committed to any frame. The or-pattern commits its left
// alternative's bindings only if that alternative succeeds, otherwise the
// right alternative is tried fresh.
func matchPattern(pat Pattern, v Value) ([]matchBinding, bool) {
	return matchInto(pat, v, nil)
}

func matchInto(pat Pattern, v Value, binds []matchBinding) ([]matchBinding, bool) {
	switch pt := pat.(type) {
	case *PWildcard:
		return binds, true
	case *PVar:
		return append(binds, matchBinding{name: pt.Name, val: v}), true
	case *PConst:
		return binds, compareValues(pt.Value, v) == 0
	case *PUnit:
		_, ok := v.(UnitValue)
		return binds, ok
	case *PTuple:
		tuple, ok := v.(TupleValue)
		if !ok || len(tuple.Items) != len(pt.Items) {
			return binds, false
		}
		for i, item := range pt.Items {
			binds, ok = matchInto(item, tuple.Items[i], binds)
			if !ok {
				return binds, false
			}
		}
		return binds, true
	case *PList:
		list, ok := v.(ListValue)
		if !ok || len(list.Items) != len(pt.Items) {
			return binds, false
		}
		for i, item := range pt.Items {
			binds, ok = matchInto(item, list.Items[i], binds)
			if !ok {
				return binds, false
			}
		}
		return binds, true
	case *PCons:
		list, ok := v.(ListValue)
		if !ok || len(list.Items) == 0 {
			return binds, false
		}
		binds, ok = matchInto(pt.Head, list.Items[0], binds)
		if !ok {
			return binds, false
		}
		return matchInto(pt.Tail, ListValue{Items: list.Items[1:]}, binds)
	case *PConstructor:
		ctor, ok := v.(ConstructorValue)
		if !ok || ctor.Name != pt.Name {
			return binds, false
		}
		switch {
		case pt.Arg == nil && ctor.Arg == nil:
			return binds, true
		case pt.Arg != nil && ctor.Arg != nil:
			return matchInto(pt.Arg, ctor.Arg, binds)
		default:
			return binds, false
		}
	case *POr:
		if left, ok := matchInto(pt.Left, v, nil); ok {
			return append(binds, left...), true
		}
		return matchInto(pt.Right, v, binds)
	default:
		return binds, false
	}
}

// commitBindings installs a successful match attempt's bindings into frame.
func commitBindings(frame *Frame, binds []matchBinding) {
	for _, b := range binds {
		frame.Define(b.name, b.val)
	}
}
