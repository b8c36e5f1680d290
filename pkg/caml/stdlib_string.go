package caml

import (
	"context"
	"strings"
)

func registerStringLib() {
	Builtin("String.length").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("String.length", args[0])
			if err != nil {
				return nil, err
			}
			return IntValue{Val: len(s)}, nil
		})

	Builtin("String.get").Arity(2).
		Doc("raises Invalid_argument when the index is out of range").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("String.get", args[0])
			if err != nil {
				return nil, err
			}
			i, err := wantInt("String.get", args[1])
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(s) {
				return nil, raiseInvalidArg("index out of bounds")
			}
			return CharValue{Val: rune(s[i])}, nil
		})

	Builtin("String.sub").Arity(3).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("String.sub", args[0])
			if err != nil {
				return nil, err
			}
			pos, err := wantInt("String.sub", args[1])
			if err != nil {
				return nil, err
			}
			length, err := wantInt("String.sub", args[2])
			if err != nil {
				return nil, err
			}
			if pos < 0 || length < 0 || pos+length > len(s) {
				return nil, raiseInvalidArg("String.sub")
			}
			return StringValue{Val: s[pos : pos+length]}, nil
		})

	Builtin("String.make").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			n, err := wantInt("String.make", args[0])
			if err != nil {
				return nil, err
			}
			c, err := wantChar("String.make", args[1])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, raiseInvalidArg("String.make")
			}
			return StringValue{Val: strings.Repeat(string(c), n)}, nil
		})

	Builtin("String.concat").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			sep, err := wantString("String.concat", args[0])
			if err != nil {
				return nil, err
			}
			items, err := wantList("String.concat", args[1])
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(items))
			for i, v := range items {
				s, err := wantString("String.concat", v)
				if err != nil {
					return nil, err
				}
				parts[i] = s
			}
			return StringValue{Val: strings.Join(parts, sep)}, nil
		})

	Builtin("String.uppercase_ascii").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("String.uppercase_ascii", args[0])
			if err != nil {
				return nil, err
			}
			return StringValue{Val: asciiMap(s, asciiUpper)}, nil
		})

	Builtin("String.lowercase_ascii").
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("String.lowercase_ascii", args[0])
			if err != nil {
				return nil, err
			}
			return StringValue{Val: asciiMap(s, asciiLower)}, nil
		})

	Builtin("String.contains").Arity(2).
		Impl(func(ctx context.Context, in *Interp, args []Value) (Value, error) {
			s, err := wantString("String.contains", args[0])
			if err != nil {
				return nil, err
			}
			c, err := wantChar("String.contains", args[1])
			if err != nil {
				return nil, err
			}
			return BoolValue{Val: strings.ContainsRune(s, c)}, nil
		})
}

// ASCII-only case mapping; bytes outside a-z/A-Z pass through.
func asciiMap(s string, f func(byte) byte) string {
	b := []byte(s)
	for i := range b {
		b[i] = f(b[i])
	}
	return string(b)
}

func asciiUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 32
	}
	return c
}

func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 32
	}
	return c
}
