package caml

import (
	"context"
	"sort"
)

// The List module. Every function is registered under its qualified
// name; `open List` aliases them to bare names.
func registerListLib() {
	Builtin("List.length").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.length", args[0])
			if err != nil {
				return nil, err
			}
			return IntValue{Val: len(items)}, nil
		})

	Builtin("List.hd").
		Doc("raises Failure on the empty list").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.hd", args[0])
			if err != nil {
				return nil, err
			}
			if len(items) == 0 {
				return nil, raiseFailure("hd")
			}
			return items[0], nil
		})

	Builtin("List.tl").
		Doc("raises Failure on the empty list").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.tl", args[0])
			if err != nil {
				return nil, err
			}
			if len(items) == 0 {
				return nil, raiseFailure("tl")
			}
			return ListValue{Items: items[1:]}, nil
		})

	Builtin("List.nth").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.nth", args[0])
			if err != nil {
				return nil, err
			}
			n, err := wantInt("List.nth", args[1])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, raiseInvalidArg("List.nth")
			}
			if n >= len(items) {
				return nil, raiseFailure("nth")
			}
			return items[n], nil
		})

	Builtin("List.rev").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.rev", args[0])
			if err != nil {
				return nil, err
			}
			out := make([]Value, len(items))
			for i, v := range items {
				out[len(items)-1-i] = v
			}
			return ListValue{Items: out}, nil
		})

	Builtin("List.append").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			a, err := wantList("List.append", args[0])
			if err != nil {
				return nil, err
			}
			b, err := wantList("List.append", args[1])
			if err != nil {
				return nil, err
			}
			out := make([]Value, 0, len(a)+len(b))
			out = append(out, a...)
			out = append(out, b...)
			return ListValue{Items: out}, nil
		})

	Builtin("List.concat").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			lists, err := wantList("List.concat", args[0])
			if err != nil {
				return nil, err
			}
			var out []Value
			for _, lv := range lists {
				inner, err := wantList("List.concat", lv)
				if err != nil {
					return nil, err
				}
				out = append(out, inner...)
			}
			return ListValue{Items: out}, nil
		})

	Builtin("List.mem").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.mem", args[1])
			if err != nil {
				return nil, err
			}
			for _, v := range items {
				if compareValues(args[0], v) == 0 {
					return BoolValue{Val: true}, nil
				}
			}
			return BoolValue{Val: false}, nil
		})

	Builtin("List.assoc").Arity(2).
		Doc("raises Not_found when the key is absent").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.assoc", args[1])
			if err != nil {
				return nil, err
			}
			for _, v := range items {
				pair, ok := v.(TupleValue)
				if !ok || len(pair.Items) != 2 {
					return nil, runtimeErrorf(0, 0, "List.assoc expects a list of pairs")
				}
				if compareValues(args[0], pair.Items[0]) == 0 {
					return pair.Items[1], nil
				}
			}
			return nil, raiseNotFound()
		})

	Builtin("List.map").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.map", args[1])
			if err != nil {
				return nil, err
			}
			out := make([]Value, len(items))
			for i, v := range items {
				mapped, err := in.applyValue(ctx, args[0], v, noLoc)
				if err != nil {
					return nil, err
				}
				out[i] = mapped
			}
			return ListValue{Items: out}, nil
		})

	Builtin("List.filter").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.filter", args[1])
			if err != nil {
				return nil, err
			}
			var out []Value
			for _, v := range items {
				keep, err := in.applyValue(ctx, args[0], v, noLoc)
				if err != nil {
					return nil, err
				}
				b, ok := keep.(BoolValue)
				if !ok {
					return nil, runtimeErrorf(0, 0, "List.filter predicate must return a boolean")
				}
				if b.Val {
					out = append(out, v)
				}
			}
			return ListValue{Items: out}, nil
		})

	Builtin("List.iter").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.iter", args[1])
			if err != nil {
				return nil, err
			}
			for _, v := range items {
				if _, err := in.applyValue(ctx, args[0], v, noLoc); err != nil {
					return nil, err
				}
			}
			return UnitValue{}, nil
		})

	Builtin("List.fold_left").Arity(3).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.fold_left", args[2])
			if err != nil {
				return nil, err
			}
			acc := args[1]
			for _, v := range items {
				acc, err = in.apply2(ctx, args[0], acc, v)
				if err != nil {
					return nil, err
				}
			}
			return acc, nil
		})

	Builtin("List.fold_right").Arity(3).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.fold_right", args[1])
			if err != nil {
				return nil, err
			}
			acc := args[2]
			for i := len(items) - 1; i >= 0; i-- {
				acc, err = in.apply2(ctx, args[0], items[i], acc)
				if err != nil {
					return nil, err
				}
			}
			return acc, nil
		})

	Builtin("List.exists").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.exists", args[1])
			if err != nil {
				return nil, err
			}
			for _, v := range items {
				res, err := in.applyValue(ctx, args[0], v, noLoc)
				if err != nil {
					return nil, err
				}
				if b, ok := res.(BoolValue); ok && b.Val {
					return BoolValue{Val: true}, nil
				}
			}
			return BoolValue{Val: false}, nil
		})

	Builtin("List.for_all").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.for_all", args[1])
			if err != nil {
				return nil, err
			}
			for _, v := range items {
				res, err := in.applyValue(ctx, args[0], v, noLoc)
				if err != nil {
					return nil, err
				}
				if b, ok := res.(BoolValue); !ok || !b.Val {
					return BoolValue{Val: false}, nil
				}
			}
			return BoolValue{Val: true}, nil
		})

	Builtin("List.sort").Arity(2).
		Doc("sorts with a user comparison returning an int").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("List.sort", args[1])
			if err != nil {
				return nil, err
			}
			out := make([]Value, len(items))
			copy(out, items)
			var sortErr error
			sort.SliceStable(out, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				res, err := in.apply2(ctx, args[0], out[i], out[j])
				if err != nil {
					sortErr = err
					return false
				}
				n, ok := res.(IntValue)
				if !ok {
					sortErr = runtimeErrorf(0, 0, "List.sort comparison must return an integer")
					return false
				}
				return n.Val < 0
			})
			if sortErr != nil {
				return nil, sortErr
			}
			return ListValue{Items: out}, nil
		})
}
