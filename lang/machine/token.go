package machine

import "github.com/mna/tin/lang/types"

// Kind discriminates the four token shapes named in spec.md §3: a literal
// value, a fixed-arity pure intrinsic, a meta operation that can read or
// mutate interpreter state, and a pre-compiled block.
type Kind int

const (
	KindLiteralToken Kind = iota
	KindIntrinsicToken
	KindMetaToken
	KindBlockToken
)

func (k Kind) String() string {
	switch k {
	case KindLiteralToken:
		return "literal"
	case KindIntrinsicToken:
		return "intrinsic"
	case KindMetaToken:
		return "meta"
	case KindBlockToken:
		return "block"
	default:
		return "unknown"
	}
}

// IntrinsicFunc is a pure, fixed-arity function over Values. args[0] is the
// first value popped (the top of the stack at dispatch time), matching the
// popping order spec.md §4.2 requires: for source "A B op", fn is called as
// fn(B, A). pushed reports whether result is meaningful; every builtin
// intrinsic pushes its result ($, which pushes nothing, is the MetaPrint
// meta op).
type IntrinsicFunc func(args []types.Value) (result types.Value, pushed bool, err error)

// MetaFunc implements a meta operation: it receives the running Program,
// the interpreter-wide Runtime state, the matched source substring (rep,
// needed by variable ops to recover the variable name), the current
// instruction pointer and the value stack, and returns the instruction
// pointer to resume from (the dispatch loop always adds 1 afterwards) along
// with the possibly-replaced stack.
type MetaFunc func(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (newIP int, newStack []types.Value, err error)

// Token is a single compiled instruction in a Program's token stream.
type Token struct {
	Kind Kind
	// Rep is the original source substring that produced this token; used
	// for error messages and by variable meta ops to extract the name.
	Rep string

	Literal types.Value // valid when Kind == KindLiteralToken

	Arity     int            // valid when Kind == KindIntrinsicToken
	Intrinsic IntrinsicFunc  // valid when Kind == KindIntrinsicToken

	Meta MetaFunc // valid when Kind == KindMetaToken

	Block *Program // valid when Kind == KindBlockToken
}
