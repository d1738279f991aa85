package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// DType is the element kind carried by an Array. Tin has no third-party
// tensor library to reach for (the closest thing in the retrieved example
// pack is sentra's hand-rolled internal/dataframe.NDArray, itself built on
// a flat []float64 + shape + dtype tag), so Array follows that same shape:
// dense storage as float64, tagged with the dtype that governs printing,
// scalar extraction and reduction results.
type DType int

const (
	DInt DType = iota
	DFloat
	DBool
)

func (d DType) String() string {
	switch d {
	case DInt:
		return "int"
	case DFloat:
		return "float"
	case DBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Array is a dense n-dimensional numeric array: scalar-promotion and
// elementwise-broadcast rules are modeled directly rather than delegated to
// a host library, matching the corpus's own practice.
type Array struct {
	Data  []float64
	Shape []int
	DType DType
}

var _ Value = (*Array)(nil)

// ErrShape is returned whenever two arrays are combined elementwise with
// incompatible, non-broadcastable shapes.
var ErrShape = errors.New("shape mismatch")

func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// NewArray builds an array from flat data, a shape and a dtype. Callers must
// not mutate data afterwards.
func NewArray(data []float64, shape []int, dt DType) *Array {
	return &Array{Data: data, Shape: append([]int(nil), shape...), DType: dt}
}

// Range implements the ι intrinsic: [0, n) as a 1-D int array.
func Range(n int64) (*Array, error) {
	if n < 0 {
		return nil, fmt.Errorf("ι: negative length %d", n)
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i)
	}
	return NewArray(data, []int{int(n)}, DInt), nil
}

// Wrap implements the □ intrinsic: lift a scalar into a 1-element array.
func Wrap(v Value) (*Array, error) {
	switch x := v.(type) {
	case Int:
		return NewArray([]float64{float64(x)}, []int{1}, DInt), nil
	case Float:
		return NewArray([]float64{float64(x)}, []int{1}, DFloat), nil
	case Bool:
		return NewArray([]float64{b2f(bool(x))}, []int{1}, DBool), nil
	case *Array:
		data := append([]float64(nil), x.Data...)
		shape := append([]int{1}, x.Shape...)
		return NewArray(data, shape, x.DType), nil
	default:
		return nil, fmt.Errorf("□: cannot wrap %s", v.Type())
	}
}

// Replicate implements the R intrinsic: n stacked copies of x.
func Replicate(n int64, x Value) (*Array, error) {
	if n < 0 {
		return nil, fmt.Errorf("R: negative count %d", n)
	}
	switch v := x.(type) {
	case Int, Float, Bool:
		elem, dt := scalarToFloat(v)
		data := make([]float64, n)
		for i := range data {
			data[i] = elem
		}
		return NewArray(data, []int{int(n)}, dt), nil
	case *Array:
		sub := size(v.Shape)
		data := make([]float64, int(n)*sub)
		for i := 0; i < int(n); i++ {
			copy(data[i*sub:(i+1)*sub], v.Data)
		}
		shape := append([]int{int(n)}, v.Shape...)
		return NewArray(data, shape, v.DType), nil
	default:
		return nil, fmt.Errorf("R: cannot replicate %s", x.Type())
	}
}

// FromValues implements the storer ( ... ): capture a run of popped stack
// values into a single Array. If every value is itself an Array of the same
// shape, they are stacked along a new leading axis (this is what the
// identity-matrix scenario relies on: one row per foreach iteration). If
// every value is a scalar, they become a flat 1-D array with dtype promoted
// the way the host array library would: any Float operand makes the whole
// array Float, otherwise any non-Bool operand makes it Int, otherwise Bool.
func FromValues(vals []Value) (*Array, error) {
	if len(vals) == 0 {
		return NewArray(nil, []int{0}, DInt), nil
	}

	if sub, ok := vals[0].(*Array); ok {
		shape := sub.Shape
		elemSize := size(shape)
		data := make([]float64, 0, elemSize*len(vals))
		dt := sub.DType
		for _, v := range vals {
			a, ok := v.(*Array)
			if !ok || !slices.Equal(a.Shape, shape) {
				return nil, fmt.Errorf("%w: cannot stack mismatched array in storer", ErrShape)
			}
			data = append(data, a.Data...)
			dt = promote(dt, a.DType)
		}
		return NewArray(data, append([]int{len(vals)}, shape...), dt), nil
	}

	dt := DBool
	data := make([]float64, len(vals))
	for i, v := range vals {
		f, vdt := scalarToFloat(v)
		data[i] = f
		dt = promote(dt, vdt)
	}
	return NewArray(data, []int{len(vals)}, dt), nil
}

func scalarToFloat(v Value) (float64, DType) {
	switch x := v.(type) {
	case Int:
		return float64(x), DInt
	case Float:
		return float64(x), DFloat
	case Bool:
		return b2f(bool(x)), DBool
	default:
		return 0, DBool
	}
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// promote picks the widest dtype of two operands: float widens everything,
// otherwise int widens bool.
func promote(a, b DType) DType {
	if a == DFloat || b == DFloat {
		return DFloat
	}
	if a == DInt || b == DInt {
		return DInt
	}
	return DBool
}

func (a *Array) String() string {
	var sb strings.Builder
	a.writeTo(&sb, a.Shape, a.Data)
	return sb.String()
}

func (a *Array) writeTo(sb *strings.Builder, shape []int, data []float64) {
	if len(shape) == 0 {
		sb.WriteString(a.formatScalar(data[0]))
		return
	}
	if len(shape) == 1 {
		sb.WriteByte('[')
		for i, v := range data {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(a.formatScalar(v))
		}
		sb.WriteByte(']')
		return
	}
	n := shape[0]
	sub := size(shape[1:])
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		a.writeTo(sb, shape[1:], data[i*sub:(i+1)*sub])
	}
	sb.WriteByte(']')
}

func (a *Array) formatScalar(v float64) string {
	switch a.DType {
	case DInt:
		return strconv.FormatInt(int64(v), 10)
	case DBool:
		if v != 0 {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%g", v)
	}
}

func (a *Array) Type() string { return "array" }

func (a *Array) Truth() Bool { return len(a.Data) > 0 }

// Len returns the length of the leading axis.
func (a *Array) Len() int {
	if len(a.Shape) == 0 {
		return 0
	}
	return a.Shape[0]
}

// Index returns the value at position i along the leading axis: a scalar
// if the array is 1-D, a sub-array otherwise.
func (a *Array) Index(i int64) (Value, error) {
	n := a.Len()
	if i < 0 || int(i) >= n {
		return nil, fmt.Errorf("↓: index %d out of bounds for length %d", i, n)
	}
	sub := size(a.Shape[1:])
	chunk := a.Data[int(i)*sub : (int(i)+1)*sub]
	if len(a.Shape) == 1 {
		return scalarFromFloat(chunk[0], a.DType), nil
	}
	data := append([]float64(nil), chunk...)
	return NewArray(data, a.Shape[1:], a.DType), nil
}

// SetIndex mutates the array in place at position i; the ↑ intrinsic then
// returns this same array, matching the source implementation's aliasing
// behavior (aliasing is the caller's responsibility, same as
// assign_to_index in the original source).
func (a *Array) SetIndex(i int64, v Value) error {
	n := a.Len()
	if i < 0 || int(i) >= n {
		return fmt.Errorf("↑: index %d out of bounds for length %d", i, n)
	}
	sub := size(a.Shape[1:])
	if len(a.Shape) == 1 {
		f, dt := scalarToFloat(v)
		a.Data[i] = f
		a.DType = promote(a.DType, dt)
		return nil
	}
	sa, ok := v.(*Array)
	if !ok || !slices.Equal(sa.Shape, a.Shape[1:]) {
		return fmt.Errorf("%w: cannot assign mismatched element at index %d", ErrShape, i)
	}
	copy(a.Data[int(i)*sub:(int(i)+1)*sub], sa.Data)
	return nil
}

func scalarFromFloat(v float64, dt DType) Value {
	switch dt {
	case DInt:
		return Int(int64(v))
	case DBool:
		return Bool(v != 0)
	default:
		return Float(v)
	}
}

// Sum implements ∑.
func (a *Array) Sum() Value {
	var s float64
	for _, v := range a.Data {
		s += v
	}
	if a.DType == DFloat {
		return Float(s)
	}
	return Int(int64(s))
}

// Product implements ∏.
func (a *Array) Product() Value {
	p := 1.0
	for _, v := range a.Data {
		p *= v
	}
	if a.DType == DFloat {
		return Float(p)
	}
	return Int(int64(p))
}

// Any implements ∃.
func (a *Array) Any() Bool {
	for _, v := range a.Data {
		if v != 0 {
			return True
		}
	}
	return False
}

// All implements ∀.
func (a *Array) All() Bool {
	for _, v := range a.Data {
		if v == 0 {
			return False
		}
	}
	return True
}

// None implements ∄.
func (a *Array) None() Bool { return !a.Any() }

// ToBool implements 𝔹 applied to an array: elementwise truthiness.
func (a *Array) ToBool() *Array {
	data := make([]float64, len(a.Data))
	for i, v := range a.Data {
		data[i] = b2f(v != 0)
	}
	return NewArray(data, a.Shape, DBool)
}

// DropFirst implements ` (drop the first element along the leading axis).
func (a *Array) DropFirst() (*Array, error) {
	return a.dropAxis(1, a.Len())
}

// DropLast implements ´ (drop the last element along the leading axis).
func (a *Array) DropLast() (*Array, error) {
	return a.dropAxis(0, a.Len()-1)
}

func (a *Array) dropAxis(from, to int) (*Array, error) {
	if from > a.Len() {
		from = a.Len()
	}
	if to < from {
		// over-dropping an already-short (or empty) array is a no-op, matching
		// the host language's slice semantics rather than erroring.
		to = from
	}
	sub := size(a.Shape[1:])
	data := append([]float64(nil), a.Data[from*sub:to*sub]...)
	shape := append([]int{to - from}, a.Shape[1:]...)
	return NewArray(data, shape, a.DType), nil
}

// ElementwiseOp implements binary arithmetic/comparison between two Arrays,
// or between an Array and a broadcastable scalar. outBool selects whether
// the result dtype is forced to Bool (comparisons) rather than promoted
// from the operand dtypes (arithmetic).
func ElementwiseOp(x, y Value, outBool bool, fn func(a, b float64) float64) (Value, error) {
	xa, xIsArr := x.(*Array)
	ya, yIsArr := y.(*Array)

	switch {
	case xIsArr && yIsArr:
		if !slices.Equal(xa.Shape, ya.Shape) {
			return nil, fmt.Errorf("%w: %v vs %v", ErrShape, xa.Shape, ya.Shape)
		}
		data := make([]float64, len(xa.Data))
		for i := range data {
			data[i] = fn(xa.Data[i], ya.Data[i])
		}
		dt := DFloat
		if outBool {
			dt = DBool
		} else {
			dt = promote(xa.DType, ya.DType)
		}
		return NewArray(data, xa.Shape, dt), nil

	case xIsArr:
		yf, ydt := scalarToFloat(y)
		data := make([]float64, len(xa.Data))
		for i := range data {
			data[i] = fn(xa.Data[i], yf)
		}
		dt := DFloat
		if outBool {
			dt = DBool
		} else {
			dt = promote(xa.DType, ydt)
		}
		return NewArray(data, xa.Shape, dt), nil

	case yIsArr:
		xf, xdt := scalarToFloat(x)
		data := make([]float64, len(ya.Data))
		for i := range data {
			data[i] = fn(xf, ya.Data[i])
		}
		dt := DFloat
		if outBool {
			dt = DBool
		} else {
			dt = promote(xdt, ya.DType)
		}
		return NewArray(data, ya.Shape, dt), nil

	default:
		xf, xdt := scalarToFloat(x)
		yf, ydt := scalarToFloat(y)
		r := fn(xf, yf)
		if outBool {
			return Bool(r != 0), nil
		}
		return scalarFromFloat(r, promote(xdt, ydt)), nil
	}
}
