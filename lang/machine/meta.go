package machine

import (
	"fmt"
	"unicode/utf8"

	"github.com/mna/tin/lang/types"
)

// This file implements the meta/control-flow handlers of spec.md §4.3-§4.9:
// stack manipulation, conditionals, the three bracketed control structures,
// variable scoping and self-reference. Each handler has the MetaFunc shape
// and is exported so lang/token can wire it into the builtin token table.

func pop(stack []types.Value) (types.Value, []types.Value, bool) {
	if len(stack) == 0 {
		return nil, stack, false
	}
	n := len(stack) - 1
	return stack[n], stack[:n], true
}

func top(stack []types.Value) (types.Value, bool) {
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// MetaDup implements ! : duplicate the top of the stack.
func MetaDup(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	v, ok := top(stack)
	if !ok {
		return ip, stack, newErr(KindStackUnderflow, rep, "dup on empty stack")
	}
	return ip, append(stack, v), nil
}

// MetaCopy implements ↷ : the top of the stack is an integer k; it is
// replaced by a copy of the value k+1 positions from the top once k itself
// is set aside (stack[-(k+2)] counted with k still in the top slot), so
// k=0 behaves exactly like dup (see spec.md §9's Open Question).
func MetaCopy(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	v, ok := top(stack)
	if !ok {
		return ip, stack, newErr(KindStackUnderflow, rep, "copy on empty stack")
	}
	k, ok := v.(types.Int)
	if !ok {
		return ip, stack, newErr(KindTypeError, rep, "copy count must be int, got %s", v.Type())
	}
	n := len(stack)
	idx := n - int(k) - 2
	if idx < 0 || idx >= n-1 {
		return ip, stack, newErr(KindStackUnderflow, rep, "copy count %d out of range for stack of size %d", k, n)
	}
	stack[n-1] = stack[idx]
	return ip, stack, nil
}

// MetaSwap implements ↶ : exchange the top two values.
func MetaSwap(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	n := len(stack)
	if n < 2 {
		return ip, stack, newErr(KindStackUnderflow, rep, "swap needs 2 operands, have %d", n)
	}
	stack[n-1], stack[n-2] = stack[n-2], stack[n-1]
	return ip, stack, nil
}

// MetaSkip implements ? : pop; if falsy, skip the next token.
func MetaSkip(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	v, rest, ok := pop(stack)
	if !ok {
		return ip, stack, newErr(KindStackUnderflow, rep, "? on empty stack")
	}
	newIP := ip
	if !bool(v.Truth()) {
		newIP++
	}
	return newIP, rest, nil
}

// MetaSkipPeek implements ◊ : peek; if falsy, skip the next token.
func MetaSkipPeek(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	v, ok := top(stack)
	if !ok {
		return ip, stack, newErr(KindStackUnderflow, rep, "◊ on empty stack")
	}
	newIP := ip
	if !bool(v.Truth()) {
		newIP++
	}
	return newIP, stack, nil
}

// MetaSkipInv implements : : pop; if truthy, skip the next token.
func MetaSkipInv(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	v, rest, ok := pop(stack)
	if !ok {
		return ip, stack, newErr(KindStackUnderflow, rep, ": on empty stack")
	}
	newIP := ip
	if bool(v.Truth()) {
		newIP++
	}
	return newIP, rest, nil
}

// MetaBranchInit implements [ : remember this ip for the matching ].
func MetaBranchInit(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	rt.branchStack = append(rt.branchStack, ip)
	return ip, stack, nil
}

// MetaBranchEnd implements ] : pop the flag; loop back to the matching [
// if truthy.
func MetaBranchEnd(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	n := len(rt.branchStack)
	if n == 0 {
		return ip, stack, newErr(KindTypeError, rep, "] without matching [")
	}
	pos := rt.branchStack[n-1]
	rt.branchStack = rt.branchStack[:n-1]

	flag, rest, ok := pop(stack)
	if !ok {
		return ip, stack, newErr(KindStackUnderflow, rep, "] on empty stack")
	}
	newIP := ip
	if bool(flag.Truth()) {
		newIP = pos - 1
	}
	return newIP, rest, nil
}

// MetaForeachInit implements { : on first entry, pop the iterable array and
// push a new loop frame; on re-entry, advance the existing frame's index.
// Either way, push the current element.
func MetaForeachInit(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	n := len(rt.loopStack)
	if n > 0 && rt.loopStack[n-1].ip == ip {
		rt.loopStack[n-1].idx++
	} else {
		v, rest, ok := pop(stack)
		if !ok {
			return ip, stack, newErr(KindStackUnderflow, rep, "{ on empty stack")
		}
		arr, ok := v.(*types.Array)
		if !ok {
			return ip, stack, newErr(KindTypeError, rep, "{ requires an array, got %s", v.Type())
		}
		stack = rest
		rt.loopStack = append(rt.loopStack, loopFrame{ip: ip, arr: arr, idx: 0})
	}

	frame := &rt.loopStack[len(rt.loopStack)-1]
	elem, err := frame.arr.Index(int64(frame.idx))
	if err != nil {
		return ip, stack, newErr(KindShapeError, rep, "%v", err)
	}
	return ip, append(stack, elem), nil
}

// MetaForeachEnd implements } : loop back to the matching { while more
// elements remain, otherwise pop the loop frame.
func MetaForeachEnd(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	n := len(rt.loopStack)
	if n == 0 {
		return ip, stack, newErr(KindTypeError, rep, "} without matching {")
	}
	frame := rt.loopStack[n-1]
	newIP := ip
	if frame.idx < frame.arr.Len()-1 {
		newIP = frame.ip - 1
	} else {
		rt.loopStack = rt.loopStack[:n-1]
	}
	return newIP, stack, nil
}

// MetaStorerInit implements ( : remember the current stack length.
func MetaStorerInit(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	rt.storerStack = append(rt.storerStack, len(stack))
	return ip, stack, nil
}

// MetaStorerEnd implements ) : capture everything pushed since the matching
// ( into a single Array.
func MetaStorerEnd(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	n := len(rt.storerStack)
	if n == 0 {
		return ip, stack, newErr(KindTypeError, rep, ") without matching (")
	}
	pos := rt.storerStack[n-1]
	rt.storerStack = rt.storerStack[:n-1]
	if pos > len(stack) {
		return ip, stack, newErr(KindStackUnderflow, rep, "storer popped below its opening depth")
	}

	captured := append([]types.Value(nil), stack[pos:]...)
	arr, err := types.FromValues(captured)
	if err != nil {
		return ip, stack, newErr(KindShapeError, rep, "%v", err)
	}
	return ip, append(stack[:pos], arr), nil
}

// varName strips the leading sigil rune (→, ← or .) from rep to recover the
// variable name.
func varName(rep string) string {
	_, size := utf8.DecodeRuneInString(rep)
	return rep[size:]
}

// MetaDefineVar implements →x : pop a value, push it onto scope x.
func MetaDefineVar(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	v, rest, ok := pop(stack)
	if !ok {
		return ip, stack, newErr(KindStackUnderflow, rep, "%s on empty stack", rep)
	}
	rt.Scopes.Push(varName(rep), v)
	return ip, rest, nil
}

// MetaDeleteVar implements ←x : discard scope x's top binding. Unlike
// MetaGetVar, the value is not pushed back onto the data stack; ←x is pure
// cleanup for a binding that was already read via .x (or never needed on
// the stack at all).
func MetaDeleteVar(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	name := varName(rep)
	if _, ok := rt.Scopes.Pop(name); !ok {
		return ip, stack, newErr(KindUndefinedVar, rep, "variable %q is undefined", name)
	}
	return ip, stack, nil
}

// MetaGetVar implements .x : push scope x's current top binding without
// removing it.
func MetaGetVar(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	name := varName(rep)
	v, ok := rt.Scopes.Top(name)
	if !ok {
		return ip, stack, newErr(KindUndefinedVar, rep, "variable %q is undefined", name)
	}
	return ip, append(stack, v), nil
}

// MetaPrint implements $ : pop a value and write its string form to the
// Runtime's output writer. Unlike the other fixed-arity intrinsics, $ needs
// access to per-invocation state (the writer tests and the CLI each set
// differently), so it is wired as a Meta token rather than through
// lang/intrinsics.
func MetaPrint(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	v, rest, ok := pop(stack)
	if !ok {
		return ip, stack, newErr(KindStackUnderflow, rep, "$ on empty stack")
	}
	if rt.Out != nil {
		fmt.Fprintln(rt.Out, v.String())
	}
	return ip, rest, nil
}

// MetaSelfReference implements ∇ : re-execute the enclosing program if one
// is linked (the usual case, inside a definition's body block), otherwise
// re-execute the current program. Bounded two ways, per spec.md §9: the
// shared step counter (Runtime.step, checked on every dispatched token) and
// MaxRecursionDepth here, which catches a chain of ∇ calls that stays under
// the step budget but would otherwise recurse the Go call stack forever.
func MetaSelfReference(rt *Runtime, prog *Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	if err := rt.enterSelfReference(rep); err != nil {
		return ip, stack, err
	}
	defer rt.exitSelfReference()

	target := prog
	if prog.Parent != nil {
		target = prog.Parent
	}
	newStack, err := target.Execute(rt, stack)
	return ip, newStack, err
}
