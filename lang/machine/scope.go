package machine

import (
	"github.com/dolthub/swiss"
	"github.com/mna/tin/lang/types"
)

// Scopes implements the variable-scope map of spec.md §3: a name to
// stack-of-values mapping, shadowing nested block bindings. The teacher
// repo backs its own *Map value type with a dolthub/swiss open-addressing
// table (see lang/machine/map.go in the teacher); Tin's variable scopes are
// exactly the same shape of problem (fast, allocation-light string-keyed
// lookup that is pushed/popped far more often than it is resized), so the
// same library does the job here instead of a bare Go map.
type Scopes struct {
	m *swiss.Map[string, []types.Value]
}

// NewScopes returns an empty scope map.
func NewScopes() *Scopes {
	return &Scopes{m: swiss.NewMap[string, []types.Value](8)}
}

// Push shadows name with v.
func (s *Scopes) Push(name string, v types.Value) {
	stack, _ := s.m.Get(name)
	s.m.Put(name, append(stack, v))
}

// Pop removes and returns the top binding of name, deleting the entry once
// it is emptied. It returns false if name has no binding; the caller turns
// that into an UndefinedVariable error.
func (s *Scopes) Pop(name string) (types.Value, bool) {
	stack, ok := s.m.Get(name)
	if !ok || len(stack) == 0 {
		return nil, false
	}
	v := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	if len(stack) == 0 {
		s.m.Delete(name)
	} else {
		s.m.Put(name, stack)
	}
	return v, true
}

// Top reads the current binding of name without removing it.
func (s *Scopes) Top(name string) (types.Value, bool) {
	stack, ok := s.m.Get(name)
	if !ok || len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// Empty reports whether no scope has an active binding, i.e. whether the §8
// invariant holds that scopes introduced and released within a program are
// absent once Execute returns. Execute itself does not call it.
func (s *Scopes) Empty() bool { return s.m.Count() == 0 }
