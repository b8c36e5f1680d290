package caml

import "context"

func registerArrayLib() {
	Builtin("Array.make").Arity(2).
		Doc("allocates a heap array filled with one value").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("Array.make", args[0])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, raiseInvalidArg("Array.make")
			}
			items := make([]Value, n)
			for i := range items {
				items[i] = args[1]
			}
			arr := &ArrayValue{Items: items}
			in.allocHeapArray(arr)
			return arr, nil
		})

	Builtin("Array.init").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("Array.init", args[0])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, raiseInvalidArg("Array.init")
			}
			items := make([]Value, n)
			for i := range items {
				v, err := in.applyValue(ctx, args[1], IntValue{Val: i}, noLoc)
				if err != nil {
					return nil, err
				}
				items[i] = v
			}
			arr := &ArrayValue{Items: items}
			in.allocHeapArray(arr)
			return arr, nil
		})

	Builtin("Array.length").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			arr, ok := args[0].(*ArrayValue)
			if !ok {
				return nil, runtimeErrorf(0, 0, "Array.length expects an array, got %s", FormatValue(args[0]))
			}
			return IntValue{Val: len(arr.Items)}, nil
		})

	Builtin("Array.get").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			arr, ok := args[0].(*ArrayValue)
			if !ok {
				return nil, runtimeErrorf(0, 0, "Array.get expects an array, got %s", FormatValue(args[0]))
			}
			i, err := wantInt("Array.get", args[1])
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(arr.Items) {
				return nil, runtimeErrorf(0, 0, "index out of bounds: %d (array length %d)", i, len(arr.Items))
			}
			return arr.Items[i], nil
		})

	Builtin("Array.set").Arity(3).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			arr, ok := args[0].(*ArrayValue)
			if !ok {
				return nil, runtimeErrorf(0, 0, "Array.set expects an array, got %s", FormatValue(args[0]))
			}
			i, err := wantInt("Array.set", args[1])
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(arr.Items) {
				return nil, runtimeErrorf(0, 0, "index out of bounds: %d (array length %d)", i, len(arr.Items))
			}
			arr.Items[i] = args[2]
			return UnitValue{}, nil
		})

	Builtin("Array.of_list").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			items, err := wantList("Array.of_list", args[0])
			if err != nil {
				return nil, err
			}
			out := make([]Value, len(items))
			copy(out, items)
			arr := &ArrayValue{Items: out}
			in.allocHeapArray(arr)
			return arr, nil
		})

	Builtin("Array.to_list").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			arr, ok := args[0].(*ArrayValue)
			if !ok {
				return nil, runtimeErrorf(0, 0, "Array.to_list expects an array, got %s", FormatValue(args[0]))
			}
			out := make([]Value, len(arr.Items))
			copy(out, arr.Items)
			return ListValue{Items: out}, nil
		})
}
