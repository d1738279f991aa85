// Package tin is the single public entry point named in spec.md §6: one
// constructor that compiles source text, one method that executes it
// against a caller-supplied stack.
package tin

import (
	"context"
	"io"

	"github.com/mna/tin/lang/machine"
	"github.com/mna/tin/lang/scanner"
	"github.com/mna/tin/lang/token"
	"github.com/mna/tin/lang/types"
)

// Program is a compiled Tin source text, ready to run against any number of
// initial stacks. Each Program owns its own token table (builtins plus
// whatever |BODY|→|NAME| definitions its source installed), so distinct
// Programs never share mutable lexer state, per spec.md §9's Design Notes.
type Program struct {
	prog  *machine.Program
	table *token.Table

	// MaxSteps bounds a single Execute call; see machine.Runtime. Zero means
	// unbounded, matching spec.md's permissive reference behavior, but callers
	// running untrusted or generated programs should set this.
	MaxSteps int

	// MaxRecursionDepth bounds nested ∇ self-reference invocations
	// independent of MaxSteps; see machine.Runtime.enterSelfReference. Zero
	// means unbounded.
	MaxRecursionDepth int

	// Out receives $'s printed output; defaults to os.Stdout when nil.
	Out io.Writer

	// Trace, if set, is invoked once per dispatched token; wired by
	// internal/maincmd's run -trace surface.
	Trace func(ip int, tok machine.Token)
}

// Compile lexes src against a fresh builtin token table, returning a
// Program ready to Execute. A single Compile call may itself install new
// words via |BODY|→|NAME|; those words are visible to any Execute call on
// the returned Program, matching the source's own redefinition behavior
// scoped down to one Program instance instead of the whole process.
func Compile(src string) (*Program, error) {
	table := token.NewBuiltins()
	toks, err := scanner.Lex(table, src)
	if err != nil {
		return nil, err
	}
	return &Program{prog: machine.NewProgram(toks), table: table}, nil
}

// Execute runs the compiled program against stack, returning the resulting
// stack. ctx may be nil, in which case execution runs uncancellable (beyond
// MaxSteps). This is spec.md §6's execute(initial_stack) → final_stack,
// with ctx threaded through for the same reason the teacher's
// Thread.RunProgram takes one: an external caller may want to bound
// wall-clock time independently of the step counter.
func (p *Program) Execute(ctx context.Context, stack []types.Value) ([]types.Value, error) {
	rt := machine.NewRuntime(ctx, p.MaxSteps)
	rt.MaxRecursionDepth = p.MaxRecursionDepth
	if p.Out != nil {
		rt.Out = p.Out
	}
	rt.Trace = p.Trace
	return p.prog.Execute(rt, stack)
}

// Tokens returns the compiled top-level token stream, for the tokenize CLI
// surface and tests that assert on lexer output without running it.
func (p *Program) Tokens() []machine.Token {
	return p.prog.Tokens
}
