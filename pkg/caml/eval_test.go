package caml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	assert.Equal(t, "7", evalResult(t, "1 + 2 * 3 ;;"))
	assert.Equal(t, "2", evalResult(t, "7 / 3 ;;"))
	assert.Equal(t, "1", evalResult(t, "7 mod 3 ;;"))
	assert.Equal(t, "-4", evalResult(t, "3 - 7 ;;"))
}

func TestDivisionByZero(t *testing.T) {
	for _, src := range []string{"1 / 0 ;;", "1 mod 0 ;;"} {
		res := runSource(t, src)
		require.Len(t, res.Errors, 1, src)
		assert.Contains(t, res.Errors[0].Message, "Division_by_zero", src)
	}
}

func TestFloatOperators(t *testing.T) {
	assert.Equal(t, "4.", evalResult(t, "1.5 +. 2.5 ;;"))
	assert.Equal(t, "3.75", evalResult(t, "1.5 *. 2.5 ;;"))
	assert.Equal(t, "0.6", evalResult(t, "1.5 /. 2.5 ;;"))
}

func TestIntFloatOperatorsDoNotMix(t *testing.T) {
	res := runSource(t, "1 + 2.0 ;;")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "integer operands")

	res = runSource(t, "1.0 +. 2 ;;")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "float operands")
}

func TestStringAndListOperators(t *testing.T) {
	assert.Equal(t, `"ab"`, evalResult(t, `"a" ^ "b" ;;`))
	assert.Equal(t, "[1; 2; 3; 4]", evalResult(t, "[1; 2] @ [3; 4] ;;"))
	assert.Equal(t, "[0; 1; 2]", evalResult(t, "0 :: [1; 2] ;;"))
}

func TestConsRequiresList(t *testing.T) {
	res := runSource(t, "1 :: 2 ;;")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "must be a list")
}

func TestShortCircuit(t *testing.T) {
	// the failing right operand must not be reached
	assert.Equal(t, "false", evalResult(t, "false && (1 / 0 = 0) ;;"))
	assert.Equal(t, "true", evalResult(t, "true || (1 / 0 = 0) ;;"))
}

func TestComparisonOperators(t *testing.T) {
	assert.Equal(t, "true", evalResult(t, "1 < 2 ;;"))
	assert.Equal(t, "true", evalResult(t, `"abc" < "abd" ;;`))
	assert.Equal(t, "true", evalResult(t, "[1; 2] = [1; 2] ;;"))
	assert.Equal(t, "true", evalResult(t, "(1, 2) <> (1, 3) ;;"))
	assert.Equal(t, "false", evalResult(t, "not true ;;"))
}

func TestPhysicalVsStructuralEquality(t *testing.T) {
	assert.Equal(t, "true", evalResult(t, "let r = ref 1 in r == r ;;"))
	assert.Equal(t, "false", evalResult(t, "ref 1 == ref 1 ;;"))
	assert.Equal(t, "true", evalResult(t, "ref 1 = ref 1 ;;"))
}

func TestIfWithoutElseIsUnit(t *testing.T) {
	res := runOK(t, "if false then print_int 1 ;;")
	assert.Empty(t, res.Values)
	assert.Equal(t, "", res.Output)
}

func TestSequenceYieldsLastValue(t *testing.T) {
	assert.Equal(t, "3", evalResult(t, "(1; 2; 3) ;;"))
}

func TestClosureCapturesDefiningScope(t *testing.T) {
	assert.Equal(t, "11",
		evalResult(t, "let n = 10 in let add = fun x -> x + n in let n = 99 in add 1 ;;"))
}

func TestLetRecMutualSiblings(t *testing.T) {
	src := `
let rec even n = if n = 0 then true else odd (n - 1)
and odd n = if n = 0 then false else even (n - 1) in
even 10 ;;`
	assert.Equal(t, "true", evalResult(t, src))
}

func TestUnboundValue(t *testing.T) {
	res := runSource(t, "nope ;;")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "Unbound value nope")
	assert.Equal(t, 1, res.Errors[0].Line)
}

func TestUnboundConstructor(t *testing.T) {
	res := runSource(t, "Whatever ;;")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "Unbound constructor Whatever")
}

func TestApplyNonFunction(t *testing.T) {
	res := runSource(t, "let x = 1 in x 2 ;;")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "cannot be applied")
}

func TestWhileLoopAccumulates(t *testing.T) {
	src := `
let r = ref 0 in
let i = ref 0 in
(while !i < 5 do r := !r + !i; i := !i + 1 done; !r) ;;`
	assert.Equal(t, "10", evalResult(t, src))
}

func TestOptionValues(t *testing.T) {
	res := runOK(t, "Some 3 ;;")
	assert.Equal(t, TopLevelValue{Name: "-", Type: "int option", Value: "Some 3"}, res.Values[0])

	res = runOK(t, "None ;;")
	assert.Equal(t, "'a option", res.Values[0].Type)
}

func TestMatchOnOption(t *testing.T) {
	src := "let get d o = match o with | Some v -> v | None -> d ;; get 0 (Some 9) ;; get 7 None ;;"
	res := runOK(t, src)
	require.Len(t, res.Values, 3)
	assert.Equal(t, "9", res.Values[1].Value)
	assert.Equal(t, "7", res.Values[2].Value)
}

func TestNestedExceptionHandling(t *testing.T) {
	src := `
exception Inner ;;
exception Outer ;;
try (try raise Inner with Outer -> 1) with Inner -> 2 ;;`
	res := runOK(t, src)
	assert.Equal(t, "2", res.Values[len(res.Values)-1].Value)
}

func TestRaiseInsideFunction(t *testing.T) {
	src := `
let check n = if n < 0 then invalid_arg "negative" else n ;;
try check (-1) with Invalid_argument _ -> 0 ;;`
	res := runOK(t, src)
	assert.Equal(t, "0", res.Values[len(res.Values)-1].Value)
}

func TestTupleDestructuringParams(t *testing.T) {
	assert.Equal(t, "3", evalResult(t, "let swapsum = fun (a, b) -> a + b in swapsum (1, 2) ;;"))
}

func TestFunctionKeyword(t *testing.T) {
	assert.Equal(t, "1", evalResult(t, "(function | [] -> 0 | x :: _ -> x) [1; 2] ;;"))
}

func TestHeapIdsMonotonic(t *testing.T) {
	res := runOK(t, "let a = ref 0 ;; let b = ref 0 ;; let c = [|1|] ;;")
	require.Len(t, res.Memory.Heap, 3)
	assert.Equal(t, 0, res.Memory.Heap[0].ID)
	assert.Equal(t, 1, res.Memory.Heap[1].ID)
	assert.Equal(t, 2, res.Memory.Heap[2].ID)
}
