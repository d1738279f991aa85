package intrinsics_test

import (
	"testing"

	"github.com/mna/tin/lang/intrinsics"
	"github.com/mna/tin/lang/types"
	"github.com/stretchr/testify/require"
)

// call simulates the engine's dispatch order: args[0] is the value popped
// first, i.e. the top of the stack, matching spec.md §4.2.
func call(t *testing.T, glyph string, args ...types.Value) (types.Value, bool) {
	t.Helper()
	in, ok := intrinsics.Table[glyph]
	require.True(t, ok, "no intrinsic registered for %q", glyph)
	require.Equal(t, len(args), in.Arity)
	res, pushed, err := in.Fn(args)
	require.NoError(t, err)
	return res, pushed
}

func TestArithmeticOperandOrder(t *testing.T) {
	// source "A B -" pops B (top) then A (second); fn(top, second) = B - A.
	res, pushed := call(t, "-", types.Int(3) /* top = B */, types.Int(10) /* second = A */)
	require.True(t, pushed)
	require.Equal(t, types.Int(-7), res) // 3 - 10

	res, _ = call(t, "+", types.Int(3), types.Int(10))
	require.Equal(t, types.Int(13), res)

	res, _ = call(t, "·", types.Int(3), types.Int(10))
	require.Equal(t, types.Int(30), res)
}

func TestIncrementDecrement(t *testing.T) {
	res, _ := call(t, "⊳", types.Int(4))
	require.Equal(t, types.Int(5), res)

	res, _ = call(t, "⊲", types.Int(4))
	require.Equal(t, types.Int(3), res)
}

func TestComparisons(t *testing.T) {
	// "A B <" => fn(top=B, second=A) = B < A.
	res, _ := call(t, "<", types.Int(3), types.Int(10))
	require.Equal(t, types.True, res) // 3 < 10

	res, _ = call(t, ">", types.Int(3), types.Int(10))
	require.Equal(t, types.False, res)
}

func TestToBool(t *testing.T) {
	res, _ := call(t, "𝔹", types.Int(0))
	require.Equal(t, types.False, res)

	arr, err := types.FromValues([]types.Value{types.Int(0), types.Int(5)})
	require.NoError(t, err)
	res, _ = call(t, "𝔹", arr)
	require.Equal(t, "[false true]", res.(*types.Array).String())
}

func TestReductionIntrinsics(t *testing.T) {
	arr, err := types.Range(4)
	require.NoError(t, err)

	res, _ := call(t, "∑", arr)
	require.Equal(t, types.Int(6), res)

	res, _ = call(t, "∃", arr)
	require.Equal(t, types.True, res)

	zeros, err := types.Replicate(3, types.Int(0))
	require.NoError(t, err)
	res, _ = call(t, "∄", zeros)
	require.Equal(t, types.True, res)
}

func TestRangeWrapReplicate(t *testing.T) {
	res, _ := call(t, "ι", types.Int(3))
	require.Equal(t, "[0 1 2]", res.(*types.Array).String())

	res, _ = call(t, "□", types.Int(9))
	require.Equal(t, "[9]", res.(*types.Array).String())

	// R: (n, x) -> n copies of x; n = top = args[0], x = second = args[1].
	res, _ = call(t, "R", types.Int(3), types.Int(0))
	require.Equal(t, "[0 0 0]", res.(*types.Array).String())
}

func TestIndexAndAssign(t *testing.T) {
	arr, err := types.Range(3)
	require.NoError(t, err)

	// ↓: (i, arr) -> arr[i]; i = top = args[0], arr = second = args[1].
	res, _ := call(t, "↓", types.Int(1), arr)
	require.Equal(t, types.Int(1), res)

	// ↑: (idx, elem, arr); idx = args[0] (top), elem = args[1], arr = args[2] (bottom).
	res, _ = call(t, "↑", types.Int(1), types.Int(99), arr)
	require.Equal(t, "[0 99 2]", res.(*types.Array).String())
}

func TestDropFirstLast(t *testing.T) {
	arr, err := types.Range(4)
	require.NoError(t, err)

	res, _ := call(t, "`", arr)
	require.Equal(t, "[1 2 3]", res.(*types.Array).String())

	res, _ = call(t, "´", arr)
	require.Equal(t, "[0 1 2]", res.(*types.Array).String())
}

func TestShape(t *testing.T) {
	arr, err := types.Range(4)
	require.NoError(t, err)

	res, _ := call(t, "⍴", arr)
	require.Equal(t, types.Int(4), res)
}

func TestDivideAndModOperandOrder(t *testing.T) {
	// "A B /" => fn(top=B, second=A) = B / A, always float.
	res, _ := call(t, "/", types.Int(12), types.Int(3))
	require.Equal(t, types.Float(4), res) // 12 / 3

	res, _ = call(t, "%", types.Int(10), types.Int(3))
	require.Equal(t, types.Int(1), res) // 10 % 3
}
