package scanner

import "fmt"

// Error is returned when no pattern-table entry matches at the lexer's
// current cursor: spec.md §7's LexError, the one error kind that
// lang/machine does not itself produce.
type Error struct {
	Pos int    // byte offset into the source where lexing stopped
	Src string // the full source text, for callers that want context
}

func (e *Error) Error() string {
	return fmt.Sprintf("LexError at byte %d: no token matches", e.Pos)
}
