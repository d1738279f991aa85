// Package intrinsics implements the fixed-arity pure numeric/array
// operations of spec.md §4.10. Each intrinsic has the exact shape of
// machine.IntrinsicFunc (args []types.Value) (types.Value, bool, error) so
// that lang/token can drop them straight into the builtin pattern table
// without this package needing to import lang/machine.
package intrinsics

import (
	"fmt"

	"github.com/mna/tin/lang/types"
)

// Intrinsic pairs a pure function with its fixed arity.
type Intrinsic struct {
	Arity int
	Fn    func(args []types.Value) (types.Value, bool, error)
}

func binNumeric(name string, fn func(a, b float64) float64) Intrinsic {
	return Intrinsic{Arity: 2, Fn: func(args []types.Value) (types.Value, bool, error) {
		v, err := types.ElementwiseOp(args[0], args[1], false, fn)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", name, err)
		}
		return v, true, nil
	}}
}

func binCompare(name string, fn func(a, b float64) bool) Intrinsic {
	return Intrinsic{Arity: 2, Fn: func(args []types.Value) (types.Value, bool, error) {
		v, err := types.ElementwiseOp(args[0], args[1], true, func(a, b float64) float64 {
			if fn(a, b) {
				return 1
			}
			return 0
		})
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", name, err)
		}
		return v, true, nil
	}}
}

func unaryNumeric(name string, fn func(a float64) float64) Intrinsic {
	return Intrinsic{Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		v, err := types.ElementwiseOp(args[0], types.Int(0), false, func(a, _ float64) float64 { return fn(a) })
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", name, err)
		}
		return v, true, nil
	}}
}

func asInt(name string, v types.Value) (int64, error) {
	switch x := v.(type) {
	case types.Int:
		return int64(x), nil
	case types.Float:
		return int64(x), nil
	default:
		return 0, fmt.Errorf("%s: expected int, got %s", name, v.Type())
	}
}

// Table is the set of all Tin intrinsics, keyed by glyph.
var Table = map[string]Intrinsic{
	"+": binNumeric("+", func(a, b float64) float64 { return a + b }),
	"-": binNumeric("-", func(a, b float64) float64 { return a - b }),
	"·": binNumeric("·", func(a, b float64) float64 { return a * b }),
	"/": {Arity: 2, Fn: func(args []types.Value) (types.Value, bool, error) {
		v, err := types.Divide(args[0], args[1])
		if err != nil {
			return nil, false, fmt.Errorf("/: %w", err)
		}
		return v, true, nil
	}},
	"%": {Arity: 2, Fn: func(args []types.Value) (types.Value, bool, error) {
		v, err := types.Mod(args[0], args[1])
		if err != nil {
			return nil, false, fmt.Errorf("%%: %w", err)
		}
		return v, true, nil
	}},

	"⊳": unaryNumeric("⊳", func(a float64) float64 { return a + 1 }),
	"⊲": unaryNumeric("⊲", func(a float64) float64 { return a - 1 }),

	"𝔹": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		switch x := args[0].(type) {
		case *types.Array:
			return x.ToBool(), true, nil
		default:
			return x.Truth(), true, nil
		}
	}},

	"<": binCompare("<", func(a, b float64) bool { return a < b }),
	">": binCompare(">", func(a, b float64) bool { return a > b }),

	"∃": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		arr, err := requireArray("∃", args[0])
		if err != nil {
			return nil, false, err
		}
		return arr.Any(), true, nil
	}},
	"∄": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		arr, err := requireArray("∄", args[0])
		if err != nil {
			return nil, false, err
		}
		return arr.None(), true, nil
	}},
	"∀": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		arr, err := requireArray("∀", args[0])
		if err != nil {
			return nil, false, err
		}
		return arr.All(), true, nil
	}},

	"⍴": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		arr, err := requireArray("⍴", args[0])
		if err != nil {
			return nil, false, err
		}
		return types.Int(arr.Len()), true, nil
	}},

	"ι": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		n, err := asInt("ι", args[0])
		if err != nil {
			return nil, false, err
		}
		arr, err := types.Range(n)
		if err != nil {
			return nil, false, err
		}
		return arr, true, nil
	}},
	"□": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		arr, err := types.Wrap(args[0])
		if err != nil {
			return nil, false, err
		}
		return arr, true, nil
	}},
	"R": {Arity: 2, Fn: func(args []types.Value) (types.Value, bool, error) {
		n, err := asInt("R", args[0])
		if err != nil {
			return nil, false, err
		}
		arr, err := types.Replicate(n, args[1])
		if err != nil {
			return nil, false, err
		}
		return arr, true, nil
	}},
	"↓": {Arity: 2, Fn: func(args []types.Value) (types.Value, bool, error) {
		idx, err := asInt("↓", args[0])
		if err != nil {
			return nil, false, err
		}
		arr, err := requireArray("↓", args[1])
		if err != nil {
			return nil, false, err
		}
		v, err := arr.Index(idx)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}},
	"↑": {Arity: 3, Fn: func(args []types.Value) (types.Value, bool, error) {
		idx, err := asInt("↑", args[0])
		if err != nil {
			return nil, false, err
		}
		arr, err := requireArray("↑", args[2])
		if err != nil {
			return nil, false, err
		}
		if err := arr.SetIndex(idx, args[1]); err != nil {
			return nil, false, err
		}
		return arr, true, nil
	}},

	"∑": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		arr, err := requireArray("∑", args[0])
		if err != nil {
			return nil, false, err
		}
		return arr.Sum(), true, nil
	}},
	"∏": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		arr, err := requireArray("∏", args[0])
		if err != nil {
			return nil, false, err
		}
		return arr.Product(), true, nil
	}},

	"`": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		arr, err := requireArray("`", args[0])
		if err != nil {
			return nil, false, err
		}
		out, err := arr.DropFirst()
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}},
	"´": {Arity: 1, Fn: func(args []types.Value) (types.Value, bool, error) {
		arr, err := requireArray("´", args[0])
		if err != nil {
			return nil, false, err
		}
		out, err := arr.DropLast()
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}},
}

func requireArray(name string, v types.Value) (*types.Array, error) {
	arr, ok := v.(*types.Array)
	if !ok {
		return nil, fmt.Errorf("%s: expected array, got %s", name, v.Type())
	}
	return arr, nil
}

// Print is wired separately from Table because its effect (writing to an
// io.Writer) depends on the Runtime, not just the arguments; lang/token
// builds its Token directly against a Runtime-scoped writer.
