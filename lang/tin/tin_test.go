package tin_test

import (
	"context"
	"testing"

	"github.com/mna/tin/internal/config"
	"github.com/mna/tin/lang/tin"
	"github.com/mna/tin/lang/types"
	"github.com/stretchr/testify/require"
)

func compileAndRun(t *testing.T, src string, stack ...types.Value) []types.Value {
	t.Helper()
	p, err := tin.Compile(src)
	require.NoError(t, err)
	p.MaxSteps = 100000
	got, err := p.Execute(context.Background(), stack)
	require.NoError(t, err)
	return got
}

// TestIterativeFactorial covers spec.md §8 scenario 1: ι⊳∏ matches n! for
// n in [0, 12].
func TestIterativeFactorial(t *testing.T) {
	want := []int64{1, 1, 2, 6, 24, 120, 720, 5040, 40320, 362880, 3628800, 39916800, 479001600}
	for n := int64(0); n <= 12; n++ {
		got := compileAndRun(t, "ι⊳∏", types.Int(n))
		require.Len(t, got, 1)
		require.Equal(t, types.Int(want[n]), got[0], "n=%d", n)
	}
}

// TestRecursiveFactorial covers scenario 2 and the self-reference fixed
// point law: the recursive definition matches the iterative one.
func TestRecursiveFactorial(t *testing.T) {
	const src = `|◊⟨!!⊲∇·→n⟩:⟨1→n⟩.n←n|→|F| F`

	cases := []struct {
		n    int64
		want int64
	}{
		{0, 1},
		{1, 1},
		{5, 120},
		{10, 3628800},
	}
	for _, tc := range cases {
		got := compileAndRun(t, src, types.Int(tc.n))
		require.Len(t, got, 1)
		require.Equal(t, types.Int(tc.want), got[0], "n=%d", tc.n)
	}
}

func TestRecursiveFactorialMatchesIterativeForAllInputs(t *testing.T) {
	for n := int64(0); n <= 12; n++ {
		iter := compileAndRun(t, "ι⊳∏", types.Int(n))
		rec := compileAndRun(t, `|◊⟨!!⊲∇·→n⟩:⟨1→n⟩.n←n|→|F| F`, types.Int(n))
		require.Equal(t, iter, rec, "n=%d", n)
	}
}

// TestNaivePrimality covers scenario 3: divisibility-by-range check, testing
// every divisor in [2, n).
func TestNaivePrimality(t *testing.T) {
	const src = `→n(.nι` + "``" + `.n%𝔹∀1.n>)∀←n`

	cases := []struct {
		n    int64
		want types.Bool
	}{
		{1, types.False},
		{2, types.True},
		{7, types.True},
		{9, types.False},
	}
	for _, tc := range cases {
		got := compileAndRun(t, src, types.Int(tc.n))
		require.Len(t, got, 1)
		require.Equal(t, tc.want, got[0], "n=%d", tc.n)
	}
}

// TestIdentityMatrix covers scenario 4: an n×n identity built row by row
// inside a foreach, each row itself built via replicate + assign-to-index.
func TestIdentityMatrix(t *testing.T) {
	got := compileAndRun(t, `→n(.nι{0.nR↶1↶↑})←n`, types.Int(3))
	require.Len(t, got, 1)
	arr, ok := got[0].(*types.Array)
	require.True(t, ok)
	require.Equal(t, "[[1 0 0] [0 1 0] [0 0 1]]", arr.String())
}

// TestMean covers scenario 5: sum over length, exercising ⍴ and the
// always-float division.
func TestMean(t *testing.T) {
	input, err := types.FromValues([]types.Value{types.Int(2), types.Int(4), types.Int(6), types.Int(8)})
	require.NoError(t, err)

	got := compileAndRun(t, `!⍴↶∑/`, input)
	require.Len(t, got, 1)
	require.Equal(t, types.Float(5), got[0])
}

// TestMeanWithinConfiguredTolerance covers a mean whose true value is not
// exactly representable in binary floating point, asserting within
// internal/config's DefaultFloatTolerance rather than requiring bit-exact
// equality.
func TestMeanWithinConfiguredTolerance(t *testing.T) {
	cfg := config.Default()

	input, err := types.FromValues([]types.Value{types.Int(1), types.Int(2), types.Int(4)})
	require.NoError(t, err)

	got := compileAndRun(t, `!⍴↶∑/`, input)
	require.Len(t, got, 1)
	f, ok := got[0].(types.Float)
	require.True(t, ok)
	require.True(t, types.FloatEqual(float64(f), 7.0/3.0, cfg.DefaultFloatTolerance),
		"got %v, want within %v of %v", f, cfg.DefaultFloatTolerance, 7.0/3.0)
}

// TestIterativeFibonacci covers scenario 6: the conditional-skip idiom
// returns n itself for n <= 1, otherwise an (n-1)-step loop folds a running
// pair [a, b] -> [b, a+b], starting from [0, 1].
func TestIterativeFibonacci(t *testing.T) {
	const src = `!!→n1<?⟨2ι→r ⊲ι{(.r1↓ .r∑)→r}.r1↓→n⟩.n←n`

	got := compileAndRun(t, src, types.Int(10))
	require.NotEmpty(t, got)
	require.Equal(t, types.Int(55), got[len(got)-1])
}

// TestDupLawEndToEnd exercises spec.md §8's dup law through the public API.
func TestDupLawEndToEnd(t *testing.T) {
	got := compileAndRun(t, `!`, types.Int(7))
	require.Equal(t, []types.Value{types.Int(7), types.Int(7)}, got)
}

// TestStorerRoundTripEndToEnd exercises the storer law through the public
// API, including the k=0 empty-array case.
func TestStorerRoundTripEndToEnd(t *testing.T) {
	got := compileAndRun(t, `(1 2 3)`)
	require.Len(t, got, 1)
	require.Equal(t, "[1 2 3]", got[0].(*types.Array).String())

	got = compileAndRun(t, `()`)
	require.Len(t, got, 1)
	require.Equal(t, 0, got[0].(*types.Array).Len())
}

func TestDefinitionIsScopedToOneProgram(t *testing.T) {
	p1, err := tin.Compile(`|1→n|→|F| F`)
	require.NoError(t, err)
	_, err = p1.Execute(context.Background(), nil)
	require.NoError(t, err)

	_, err = tin.Compile(`F`)
	require.Error(t, err)
}

func TestTokensReflectsCompiledSource(t *testing.T) {
	p, err := tin.Compile("1 + 2")
	require.NoError(t, err)
	require.Len(t, p.Tokens(), 3)
}

func TestMaxStepsBoundsDivergentSelfReference(t *testing.T) {
	// a top-level ∇ (no parent Program to recurse into) re-executes itself,
	// which would diverge without a bound.
	p, err := tin.Compile(`∇`)
	require.NoError(t, err)
	p.MaxSteps = 1000
	_, err = p.Execute(context.Background(), nil)
	require.Error(t, err)
}

func TestMaxRecursionDepthBoundsDivergentSelfReference(t *testing.T) {
	// same divergent program, but bounded by nesting depth rather than total
	// step count: a generous step budget must not mask the recursion bound.
	p, err := tin.Compile(`∇`)
	require.NoError(t, err)
	p.MaxSteps = 1_000_000
	p.MaxRecursionDepth = 10
	_, err = p.Execute(context.Background(), nil)
	require.Error(t, err)
}
