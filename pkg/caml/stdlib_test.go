package caml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalResult(t *testing.T, src string) string {
	t.Helper()
	res := runOK(t, src)
	require.NotEmpty(t, res.Values)
	return res.Values[len(res.Values)-1].Value
}

func TestCoreConversions(t *testing.T) {
	assert.Equal(t, `"42"`, evalResult(t, "string_of_int 42 ;;"))
	assert.Equal(t, `"2."`, evalResult(t, "string_of_float 2.0 ;;"))
	assert.Equal(t, `"true"`, evalResult(t, "string_of_bool true ;;"))
	assert.Equal(t, "42", evalResult(t, `int_of_string "42" ;;`))
	assert.Equal(t, "2.5", evalResult(t, `float_of_string "2.5" ;;`))
	assert.Equal(t, "3", evalResult(t, "int_of_float 3.7 ;;"))
	assert.Equal(t, "3.", evalResult(t, "float_of_int 3 ;;"))
}

func TestIntOfStringRaisesFailure(t *testing.T) {
	res := runSource(t, `int_of_string "nope" ;;`)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "Failure")
}

func TestCoreNumeric(t *testing.T) {
	assert.Equal(t, "5", evalResult(t, "abs (-5) ;;"))
	assert.Equal(t, "4", evalResult(t, "succ 3 ;;"))
	assert.Equal(t, "2", evalResult(t, "pred 3 ;;"))
	assert.Equal(t, "1", evalResult(t, "min 1 2 ;;"))
	assert.Equal(t, "2", evalResult(t, "max 1 2 ;;"))
	assert.Equal(t, "-1", evalResult(t, "compare 1 2 ;;"))
	assert.Equal(t, "0", evalResult(t, "compare [1;2] [1;2] ;;"))
}

func TestCorePairs(t *testing.T) {
	assert.Equal(t, "1", evalResult(t, "fst (1, 2) ;;"))
	assert.Equal(t, "2", evalResult(t, "snd (1, 2) ;;"))
}

func TestFailwith(t *testing.T) {
	res := runSource(t, `failwith "oops" ;;`)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "Failure")
	assert.Contains(t, res.Errors[0].Message, "oops")
}

func TestListModule(t *testing.T) {
	assert.Equal(t, "3", evalResult(t, "List.length [1;2;3] ;;"))
	assert.Equal(t, "1", evalResult(t, "List.hd [1;2] ;;"))
	assert.Equal(t, "[2]", evalResult(t, "List.tl [1;2] ;;"))
	assert.Equal(t, "[3; 2; 1]", evalResult(t, "List.rev [1;2;3] ;;"))
	assert.Equal(t, "[1; 2; 3; 4]", evalResult(t, "List.append [1;2] [3;4] ;;"))
	assert.Equal(t, "[1; 2; 3]", evalResult(t, "List.concat [[1]; [2; 3]] ;;"))
	assert.Equal(t, "true", evalResult(t, "List.mem 2 [1;2;3] ;;"))
	assert.Equal(t, "2", evalResult(t, "List.nth [1;2;3] 1 ;;"))
	assert.Equal(t, "[2; 4; 6]", evalResult(t, "List.map (fun x -> x * 2) [1;2;3] ;;"))
	assert.Equal(t, "[2]", evalResult(t, "List.filter (fun x -> x mod 2 = 0) [1;2;3] ;;"))
	assert.Equal(t, "6", evalResult(t, "List.fold_left (fun acc x -> acc + x) 0 [1;2;3] ;;"))
	assert.Equal(t, "[1; 2; 3]", evalResult(t, "List.fold_right (fun x acc -> x :: acc) [1;2;3] [] ;;"))
	assert.Equal(t, "true", evalResult(t, "List.exists (fun x -> x > 2) [1;2;3] ;;"))
	assert.Equal(t, "false", evalResult(t, "List.for_all (fun x -> x > 2) [1;2;3] ;;"))
	assert.Equal(t, "[1; 2; 3]", evalResult(t, "List.sort compare [3;1;2] ;;"))
	assert.Equal(t, `"b"`, evalResult(t, `List.assoc 2 [(1, "a"); (2, "b")] ;;`))
}

func TestListHdEmptyRaises(t *testing.T) {
	res := runSource(t, "List.hd [] ;;")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "Failure")
}

func TestListAssocMissingRaisesNotFound(t *testing.T) {
	res := runSource(t, `List.assoc 3 [(1, "a")] ;;`)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "Not_found")

	// and the exception is catchable
	caught := runOK(t, `try List.assoc 3 [(1, "a")] with Not_found -> "missing" ;;`)
	assert.Equal(t, `"missing"`, caught.Values[0].Value)
}

func TestListIterPrints(t *testing.T) {
	res := runOK(t, "List.iter print_int [1;2;3] ;;")
	assert.Equal(t, "123", res.Output)
}

func TestStringModule(t *testing.T) {
	assert.Equal(t, "5", evalResult(t, `String.length "hello" ;;`))
	assert.Equal(t, "'e'", evalResult(t, `String.get "hello" 1 ;;`))
	assert.Equal(t, `"ell"`, evalResult(t, `String.sub "hello" 1 3 ;;`))
	assert.Equal(t, `"aaa"`, evalResult(t, "String.make 3 'a' ;;"))
	assert.Equal(t, `"a-b"`, evalResult(t, `String.concat "-" ["a"; "b"] ;;`))
	assert.Equal(t, `"HELLO"`, evalResult(t, `String.uppercase_ascii "Hello" ;;`))
	assert.Equal(t, `"hello"`, evalResult(t, `String.lowercase_ascii "HeLLo" ;;`))
	assert.Equal(t, "true", evalResult(t, `String.contains "abc" 'b' ;;`))
}

func TestStringGetOutOfRange(t *testing.T) {
	res := runSource(t, `String.get "ab" 5 ;;`)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "Invalid_argument")
}

func TestArrayModule(t *testing.T) {
	assert.Equal(t, "[|0; 0; 0|]", evalResult(t, "Array.make 3 0 ;;"))
	assert.Equal(t, "[|0; 1; 2|]", evalResult(t, "Array.init 3 (fun i -> i) ;;"))
	assert.Equal(t, "2", evalResult(t, "Array.length [|1; 2|] ;;"))
	assert.Equal(t, "[1; 2]", evalResult(t, "Array.to_list [|1; 2|] ;;"))
	assert.Equal(t, "[|1; 2|]", evalResult(t, "Array.of_list [1; 2] ;;"))
}

func TestArrayMakeRegistersHeapObject(t *testing.T) {
	res := runOK(t, "let a = Array.make 2 0 ;; a.(1) <- 7 ;;")
	require.Len(t, res.Memory.Heap, 1)
	assert.Equal(t, "array", res.Memory.Heap[0].Kind)
	assert.Equal(t, "[|0; 7|]", res.Memory.Heap[0].Value)
	assert.Equal(t, "int array", res.Memory.Heap[0].Type)
}

func TestArrayIndexing(t *testing.T) {
	assert.Equal(t, "2", evalResult(t, "let a = [|1; 2; 3|] in a.(1) ;;"))

	res := runSource(t, "let a = [|1|] in a.(5) ;;")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "index out of bounds")
}

func TestCharModule(t *testing.T) {
	assert.Equal(t, "97", evalResult(t, "Char.code 'a' ;;"))
	assert.Equal(t, "'a'", evalResult(t, "Char.chr 97 ;;"))
	assert.Equal(t, "'A'", evalResult(t, "Char.uppercase_ascii 'a' ;;"))
	assert.Equal(t, "'a'", evalResult(t, "Char.lowercase_ascii 'A' ;;"))
}

func TestCharChrOutOfRange(t *testing.T) {
	res := runSource(t, "Char.chr 300 ;;")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "Invalid_argument")
}

func TestBuiltinCurrying(t *testing.T) {
	assert.Equal(t, "[2; 3]", evalResult(t, "let double = List.map (fun x -> x + 1) in double [1; 2] ;;"))
	assert.Equal(t, "<fun>", evalResult(t, "min 1 ;;"))
}
