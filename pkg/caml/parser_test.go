package caml

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ignoreLocs = cmpopts.IgnoreTypes(&SourceLocation{})

func parseSource(t *testing.T, src string) []Node {
	t.Helper()
	tokens, err := Lex(src)
	require.NoError(t, err)
	phrases, err := Parse(tokens)
	require.NoError(t, err)
	return phrases
}

func parseOne(t *testing.T, src string) Node {
	t.Helper()
	phrases := parseSource(t, src)
	require.Len(t, phrases, 1)
	return phrases[0]
}

func requireParseErr(t *testing.T, src string) *Error {
	t.Helper()
	tokens, err := Lex(src)
	require.NoError(t, err)
	_, err = Parse(tokens)
	require.Error(t, err)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	require.Equal(t, SyntaxError, serr.Kind)
	return serr
}

func TestParseTopLevelLet(t *testing.T) {
	got := parseOne(t, "let x = 42 ;;")
	want := &Let{
		Bindings: []*LetBinding{{Name: "x", Expr: &IntLit{Value: 42}}},
	}
	if diff := cmp.Diff(want, got, ignoreLocs); diff != "" {
		t.Errorf("phrase mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLetIn(t *testing.T) {
	got := parseOne(t, "let x = 1 in x + 1 ;;")
	want := &Let{
		Bindings: []*LetBinding{{Name: "x", Expr: &IntLit{Value: 1}}},
		Body: &Binop{
			Op:    "+",
			Left:  &Symbol{Name: "x"},
			Right: &IntLit{Value: 1},
		},
	}
	if diff := cmp.Diff(want, got, ignoreLocs); diff != "" {
		t.Errorf("phrase mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCurriedDefinition(t *testing.T) {
	got := parseOne(t, "let add x y = x + y ;;")
	let, ok := got.(*Let)
	require.True(t, ok)
	require.Len(t, let.Bindings, 1)
	assert.Equal(t, "add", let.Bindings[0].Name)
	assert.Len(t, let.Bindings[0].Params, 2)
}

func TestParsePrecedence(t *testing.T) {
	t.Run("multiplication binds tighter than addition", func(t *testing.T) {
		got := parseOne(t, "1 + 2 * 3 ;;")
		want := &Binop{
			Op:   "+",
			Left: &IntLit{Value: 1},
			Right: &Binop{
				Op:    "*",
				Left:  &IntLit{Value: 2},
				Right: &IntLit{Value: 3},
			},
		}
		if diff := cmp.Diff(Node(want), got, ignoreLocs); diff != "" {
			t.Errorf("phrase mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("application binds tighter than operators", func(t *testing.T) {
		got := parseOne(t, "f 1 + 2 ;;")
		binop, ok := got.(*Binop)
		require.True(t, ok)
		assert.Equal(t, "+", binop.Op)
		_, ok = binop.Left.(*Apply)
		assert.True(t, ok)
	})

	t.Run("cons is right associative", func(t *testing.T) {
		got := parseOne(t, "1 :: 2 :: [] ;;")
		outer, ok := got.(*Cons)
		require.True(t, ok)
		_, ok = outer.Tail.(*Cons)
		assert.True(t, ok)
	})

	t.Run("comparison is looser than arithmetic", func(t *testing.T) {
		got := parseOne(t, "a + 1 = b ;;")
		binop, ok := got.(*Binop)
		require.True(t, ok)
		assert.Equal(t, "=", binop.Op)
	})

	t.Run("pipe applies right to left operand", func(t *testing.T) {
		got := parseOne(t, "x |> f ;;")
		apply, ok := got.(*Apply)
		require.True(t, ok)
		if diff := cmp.Diff(Node(&Symbol{Name: "f"}), apply.Fn, ignoreLocs); diff != "" {
			t.Errorf("pipe target mismatch:\n%s", diff)
		}
	})
}

func TestParseApplicationChain(t *testing.T) {
	got := parseOne(t, "f a b ;;")
	want := &Apply{
		Fn: &Apply{
			Fn:  &Symbol{Name: "f"},
			Arg: &Symbol{Name: "a"},
		},
		Arg: &Symbol{Name: "b"},
	}
	if diff := cmp.Diff(Node(want), got, ignoreLocs); diff != "" {
		t.Errorf("phrase mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMatch(t *testing.T) {
	got := parseOne(t, "match xs with | [] -> 0 | x :: _ -> x ;;")
	m, ok := got.(*MatchExpr)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
	_, ok = m.Cases[0].Pattern.(*PList)
	assert.True(t, ok)
	cons, ok := m.Cases[1].Pattern.(*PCons)
	require.True(t, ok)
	_, ok = cons.Head.(*PVar)
	assert.True(t, ok)
	_, ok = cons.Tail.(*PWildcard)
	assert.True(t, ok)
}

func TestParseMatchGuard(t *testing.T) {
	got := parseOne(t, "match n with | x when x > 0 -> x | _ -> 0 ;;")
	m, ok := got.(*MatchExpr)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
	assert.NotNil(t, m.Cases[0].Guard)
	assert.Nil(t, m.Cases[1].Guard)
}

func TestParseOrPattern(t *testing.T) {
	got := parseOne(t, "match n with | 1 | 2 -> true | _ -> false ;;")
	m, ok := got.(*MatchExpr)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
	_, ok = m.Cases[0].Pattern.(*POr)
	assert.True(t, ok)
}

func TestParseFunctionSugar(t *testing.T) {
	got := parseOne(t, "function | 0 -> true | _ -> false ;;")
	fn, ok := got.(*FunExpr)
	require.True(t, ok)
	require.Len(t, fn.Params, 1)
	_, ok = fn.Body.(*MatchExpr)
	assert.True(t, ok)
}

func TestParsePrintf(t *testing.T) {
	t.Run("literal format", func(t *testing.T) {
		got := parseOne(t, `Printf.printf "%d-%s" 3 "a" ;;`)
		pf, ok := got.(*PrintfExpr)
		require.True(t, ok)
		assert.Equal(t, "%d-%s", pf.Format)
		assert.Len(t, pf.Args, 2)
	})

	t.Run("non-literal format rejected", func(t *testing.T) {
		requireParseErr(t, "Printf.printf fmt 3 ;;")
	})
}

func TestParseTypeDecl(t *testing.T) {
	t.Run("variant", func(t *testing.T) {
		got := parseOne(t, "type shape = Circle of float | Square of float | Point ;;")
		decl, ok := got.(*TypeDecl)
		require.True(t, ok)
		assert.Equal(t, "shape", decl.Name)
		require.Len(t, decl.Variants, 3)
		assert.Equal(t, "float", decl.Variants[0].ArgType)
		assert.Equal(t, "", decl.Variants[2].ArgType)
	})

	t.Run("record", func(t *testing.T) {
		got := parseOne(t, "type point = { x : int; mutable y : int } ;;")
		decl, ok := got.(*TypeDecl)
		require.True(t, ok)
		require.Len(t, decl.Fields, 2)
		assert.False(t, decl.Fields[0].Mutable)
		assert.True(t, decl.Fields[1].Mutable)
	})

	t.Run("parameterized", func(t *testing.T) {
		got := parseOne(t, "type 'a tree = Leaf | Node of 'a ;;")
		decl, ok := got.(*TypeDecl)
		require.True(t, ok)
		assert.Equal(t, []string{"'a"}, decl.Params)
	})
}

func TestParseRefSugar(t *testing.T) {
	got := parseOne(t, "let r = ref 0 in r := !r + 1; !r ;;")
	let, ok := got.(*Let)
	require.True(t, ok)
	_, ok = let.Bindings[0].Expr.(*RefNew)
	assert.True(t, ok)
	seq, ok := let.Body.(*Sequence)
	require.True(t, ok)
	require.Len(t, seq.Exprs, 2)
	_, ok = seq.Exprs[0].(*RefAssign)
	assert.True(t, ok)
	_, ok = seq.Exprs[1].(*Deref)
	assert.True(t, ok)
}

func TestParseArraySyntax(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		got := parseOne(t, "[| 1; 2; 3 |] ;;")
		lit, ok := got.(*ArrayLit)
		require.True(t, ok)
		assert.Len(t, lit.Elements, 3)
	})

	t.Run("index read", func(t *testing.T) {
		got := parseOne(t, "a.(0) ;;")
		_, ok := got.(*ArrayGet)
		assert.True(t, ok)
	})

	t.Run("index write", func(t *testing.T) {
		got := parseOne(t, "a.(0) <- 9 ;;")
		_, ok := got.(*ArraySet)
		assert.True(t, ok)
	})
}

func TestParseForLoop(t *testing.T) {
	got := parseOne(t, "for i = 1 to 3 do print_int i done ;;")
	loop, ok := got.(*ForLoop)
	require.True(t, ok)
	assert.Equal(t, "i", loop.Var)
	assert.False(t, loop.Down)
}

func TestParseMultiplePhrases(t *testing.T) {
	phrases := parseSource(t, "let x = 1 ;; let y = 2 ;; x + y ;;")
	assert.Len(t, phrases, 3)
}

func TestParseTrailingSemiSemiOptional(t *testing.T) {
	phrases := parseSource(t, "let x = 1 ;; x")
	assert.Len(t, phrases, 2)
}

func TestParseErrorPosition(t *testing.T) {
	serr := requireParseErr(t, "let = 3 ;;")
	assert.Equal(t, 1, serr.Line)
	assert.NotEmpty(t, serr.Message)
}

func TestParseRecordLiteral(t *testing.T) {
	got := parseOne(t, "{ x = 1; y = 2 } ;;")
	lit, ok := got.(*RecordLit)
	require.True(t, ok)
	require.Len(t, lit.Fields, 2)
	assert.Equal(t, "x", lit.Fields[0].Name)
}

func TestParseTuple(t *testing.T) {
	got := parseOne(t, "(1, \"two\", 3.0) ;;")
	lit, ok := got.(*TupleLit)
	require.True(t, ok)
	assert.Len(t, lit.Items, 3)
}
