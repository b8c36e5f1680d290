package caml

import "context"

func registerCharLib() {
	Builtin("Char.code").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			c, err := wantChar("Char.code", args[0])
			if err != nil {
				return nil, err
			}
			return IntValue{Val: int(c)}, nil
		})

	Builtin("Char.chr").
		Doc("raises Invalid_argument outside 0..255").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("Char.chr", args[0])
			if err != nil {
				return nil, err
			}
			if n < 0 || n > 255 {
				return nil, raiseInvalidArg("Char.chr")
			}
			return CharValue{Val: rune(n)}, nil
		})

	Builtin("Char.uppercase_ascii").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			c, err := wantChar("Char.uppercase_ascii", args[0])
			if err != nil {
				return nil, err
			}
			if c >= 'a' && c <= 'z' {
				c -= 32
			}
			return CharValue{Val: c}, nil
		})

	Builtin("Char.lowercase_ascii").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			c, err := wantChar("Char.lowercase_ascii", args[0])
			if err != nil {
				return nil, err
			}
			if c >= 'A' && c <= 'Z' {
				c += 32
			}
			return CharValue{Val: c}, nil
		})
}
