package types

import "math"

// Divide implements true division (spec.md §9: division always produces a
// float, never integer floor division). Division by zero surfaces as the
// host-native IEEE-754 +Inf/-Inf/NaN rather than an error, per spec.md §7's
// DivisionByZero policy.
func Divide(x, y Value) (Value, error) {
	res, err := ElementwiseOp(x, y, false, func(a, b float64) float64 { return a / b })
	if err != nil {
		return nil, err
	}
	if a, ok := res.(*Array); ok {
		return NewArray(append([]float64(nil), a.Data...), a.Shape, DFloat), nil
	}
	f, _ := scalarToFloat(res)
	return Float(f), nil
}

// Mod implements floored modulo (matching the sign-of-divisor convention
// the original Python source inherits from NumPy's %, rather than Go's
// truncated math.Mod).
func Mod(x, y Value) (Value, error) {
	return ElementwiseOp(x, y, false, func(a, b float64) float64 {
		if b == 0 {
			return math.NaN()
		}
		return a - b*math.Floor(a/b)
	})
}
