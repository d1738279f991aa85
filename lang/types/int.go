package types

import "strconv"

// Int is the type of integer literals and integer-producing intrinsics.
type Int int64

var _ Value = Int(0)

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Type() string   { return "int" }
func (i Int) Truth() Bool    { return i != 0 }
func (i Int) Float() float64 { return float64(i) }
