package machine

import "github.com/mna/tin/lang/types"

// Program is the Machine of spec.md's glossary: a compiled token stream
// plus a non-owning parent pointer. The parent pointer is set immediately
// before a Block token recurses into its pre-compiled sub-program (see the
// KindBlockToken case in Execute), so that ∇ (self-reference) can find "the
// enclosing interpreter frame" per spec.md §4.9 and the Design Notes. No
// cycle is possible: a child Program never outlives the call that linked
// it, and the pointer is simply overwritten on the next invocation.
type Program struct {
	Tokens []Token
	Parent *Program
}

// NewProgram wraps an already-compiled token stream.
func NewProgram(tokens []Token) *Program {
	return &Program{Tokens: tokens}
}

// Execute runs the program's token stream against stack, returning the
// final stack. It implements the dispatch loop of spec.md §4.2.
func (p *Program) Execute(rt *Runtime, stack []types.Value) ([]types.Value, error) {
	ip := 0
	for ip < len(p.Tokens) {
		tok := p.Tokens[ip]
		if err := rt.step(tok.Rep); err != nil {
			return stack, err
		}
		if rt.Trace != nil {
			rt.Trace(ip, tok)
		}

		switch tok.Kind {
		case KindLiteralToken:
			stack = append(stack, tok.Literal)
			ip++

		case KindIntrinsicToken:
			if len(stack) < tok.Arity {
				return stack, newErr(KindStackUnderflow, tok.Rep, "need %d operand(s), have %d", tok.Arity, len(stack))
			}
			args := make([]types.Value, tok.Arity)
			for i := 0; i < tok.Arity; i++ {
				args[i] = stack[len(stack)-1-i]
			}
			stack = stack[:len(stack)-tok.Arity]

			res, pushed, err := tok.Intrinsic(args)
			if err != nil {
				return stack, wrapIntrinsicErr(tok.Rep, err)
			}
			if pushed {
				stack = append(stack, res)
			}
			ip++

		case KindMetaToken:
			newIP, newStack, err := tok.Meta(rt, p, tok.Rep, ip, stack)
			if err != nil {
				return newStack, err
			}
			stack = newStack
			ip = newIP + 1

		case KindBlockToken:
			tok.Block.Parent = p
			newStack, err := tok.Block.Execute(rt, stack)
			if err != nil {
				return newStack, err
			}
			stack = newStack
			ip++

		default:
			return stack, newErr(KindTypeError, tok.Rep, "unknown token kind %d", tok.Kind)
		}
	}
	return stack, nil
}

// wrapIntrinsicErr tags a raw intrinsic error (type mismatch, division,
// shape mismatch, etc.) with the rep that produced it if it is not already
// a *Error.
func wrapIntrinsicErr(rep string, err error) error {
	if _, ok := err.(*Error); ok {
		return err
	}
	return newErr(KindTypeError, rep, "%v", err)
}
