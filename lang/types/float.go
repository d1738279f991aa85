package types

import "fmt"

// Float is the type produced by division and by mixed-type arithmetic.
type Float float64

var _ Value = Float(0)

func (f Float) String() string { return fmt.Sprintf("%g", f) }
func (f Float) Type() string   { return "float" }
func (f Float) Truth() Bool    { return f != 0 }
func (f Float) Float() float64 { return float64(f) }

// FloatEqual reports whether a and b differ by no more than tol, used by
// the conformance suite's elementwise float comparisons in place of an
// exact require.Equal, which IEEE-754 rounding can legitimately break.
func FloatEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
