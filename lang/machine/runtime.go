package machine

import (
	"context"
	"io"
	"os"
	"sync/atomic"

	"github.com/mna/tin/lang/types"
)

// loopFrame is a triple (ip of the opening '{', the iterable array, the
// current index) tracked by the foreach control stack, spec.md §4.6.
type loopFrame struct {
	ip  int
	arr *types.Array
	idx int
}

// Runtime is the interpreter-wide mutable state for a single top-level
// Execute call: the variable scope map and the three auxiliary control
// stacks (branch, loop, storer). spec.md's §5 design notes call these
// globals in the source implementation and recommend hanging them off the
// running instance instead, so that independent Execute calls (and,
// concurrently-safe or not, independent Program values) do not share state;
// Runtime is that instance.
type Runtime struct {
	Scopes *Scopes

	branchStack []int
	loopStack   []loopFrame
	storerStack []int

	// Out is where the $ intrinsic prints to. Defaults to os.Stdout.
	Out io.Writer

	// Trace, if non-nil, is invoked once per dispatched token; used by the
	// run -trace CLI surface, never by the default engine.
	Trace func(ip int, tok Token)

	steps    int
	MaxSteps int // 0 means unbounded

	recursionDepth    int
	MaxRecursionDepth int // 0 means unbounded; bounds ∇ nesting independent of MaxSteps

	ctx       context.Context
	cancelled atomic.Bool
}

// NewRuntime returns a fresh Runtime ready for one Execute call. ctx governs
// cancellation the same way spec.md §9's Open Question about a diverging
// top-level ∇ is resolved: MaxSteps is the primary bound, ctx is the
// caller's own escape hatch (e.g. the CLI's cancel-on-interrupt) mirroring the
// teacher's Thread.RunProgram, which watches ctx.Done() on a background
// goroutine rather than checking it inline on every opcode.
func NewRuntime(ctx context.Context, maxSteps int) *Runtime {
	if ctx == nil {
		ctx = context.Background()
	}
	rt := &Runtime{
		Scopes:   NewScopes(),
		Out:      os.Stdout,
		MaxSteps: maxSteps,
		ctx:      ctx,
	}
	go func() {
		<-rt.ctx.Done()
		rt.cancelled.Store(true)
	}()
	return rt
}

// step increments and bounds the global step counter; it is the resolution
// to spec.md §9's open question about top-level ∇ diverging: rather than
// looping forever, Execute now aborts with a StepLimitExceeded error. It
// also observes external cancellation signalled through the Runtime's ctx.
func (rt *Runtime) step(rep string) error {
	if rt.cancelled.Load() {
		return newErr(KindStepLimitExceeded, rep, "cancelled: %v", rt.ctx.Err())
	}
	rt.steps++
	if rt.MaxSteps > 0 && rt.steps > rt.MaxSteps {
		return newErr(KindStepLimitExceeded, rep, "exceeded %d steps", rt.MaxSteps)
	}
	return nil
}

// controlStacksEmpty reports the §8 invariant that branch, loop and storer
// stacks are empty once a top-level Execute call returns successfully.
func (rt *Runtime) controlStacksEmpty() bool {
	return len(rt.branchStack) == 0 && len(rt.loopStack) == 0 && len(rt.storerStack) == 0
}

// enterSelfReference bounds nested ∇ invocations independent of MaxSteps:
// internal/config's MaxRecursionDepth, wired through tin.Program's field of
// the same name, catches a self-reference chain that stays within the step
// budget (each recursive call dispatches few tokens) but still recurses the
// Go call stack arbitrarily deep.
func (rt *Runtime) enterSelfReference(rep string) error {
	rt.recursionDepth++
	if rt.MaxRecursionDepth > 0 && rt.recursionDepth > rt.MaxRecursionDepth {
		rt.recursionDepth--
		return newErr(KindRecursionLimitExceeded, rep, "exceeded %d nested self-references", rt.MaxRecursionDepth)
	}
	return nil
}

func (rt *Runtime) exitSelfReference() {
	rt.recursionDepth--
}
